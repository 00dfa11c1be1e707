package dispatchers

import (
	"errors"
	"fmt"
)

// Reason classifies why a descriptor was rejected at build time.
type Reason string

const (
	ReasonMissingUsage     Reason = "missing usage"
	ReasonMissingAction    Reason = "missing action reference"
	ReasonNotCallable      Reason = "action is not callable"
	ReasonNoChildren       Reason = "multiplexer has no children"
	ReasonDuplicateChild   Reason = "duplicate child name"
	ReasonInvalidChildName Reason = "invalid child name"
	ReasonMixedPolicy      Reason = "mixed policy fields"
	ReasonInvalidPolicy    Reason = "invalid policy parameters"
)

// DescriptorError reports a rejected descriptor. These are programmer
// errors surfaced at startup, before any command runs.
type DescriptorError struct {
	Command string
	Reason  Reason
	Detail  string
}

func (e *DescriptorError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("command %q: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf("command %q: %s: %s", e.Command, e.Reason, e.Detail)
}

// ErrActionResolution is wrapped by errors reported when a symbolic
// action reference has no entry in the registry.
var ErrActionResolution = errors.New("action resolution failed")

// ErrMixedPolicyFields is returned by policy Validate implementations
// when mutually exclusive parameters are set together. The builder
// translates it into ReasonMixedPolicy.
var ErrMixedPolicyFields = errors.New("mutually exclusive policy fields set together")
