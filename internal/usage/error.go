package usage

import "errors"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrUnknownCommand
	ErrInvalidFlag
	ErrMissingArgument
	ErrUnboundParameter
	ErrAmbiguousOption
	ErrUnrecognizedOption
	ErrInvalidGrammar
	ErrNoTargets
	ErrTransportUnavailable
	ErrInvalidConfigKey
)

// Exit codes:
//
//	Exit 1: Environment/system errors
//	  - Unknown errors
//	  - Unknown command
//	  - No configured targets
//	  - Transport unavailable
//	  - Invalid config key
//
//	Exit 2: User input errors
//	  - Invalid flag
//	  - Missing argument
//	  - Unbound parameter
//	  - Ambiguous option
//	  - Unrecognized option
//	  - Arguments rejected by the usage grammar
var exitCodes = map[ErrorKind]int{
	ErrUnknown:              1,
	ErrUnknownCommand:       1,
	ErrInvalidFlag:          2,
	ErrMissingArgument:      2,
	ErrUnboundParameter:     2,
	ErrAmbiguousOption:      2,
	ErrUnrecognizedOption:   2,
	ErrInvalidGrammar:       2,
	ErrNoTargets:            1,
	ErrTransportUnavailable: 1,
	ErrInvalidConfigKey:     1,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is
// derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return 1
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)

// ExitCodeFor returns the process exit code for any error: the typed
// code for a *Error, 1 otherwise, 0 for nil.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var uerr *Error
	if errors.As(err, &uerr) {
		return uerr.GetExitCode()
	}
	return 1
}
