// Package dispatchers turns declarative command descriptors into an
// immutable command tree, resolves argument vectors against it, and
// binds parsed grammar options to action parameters.
//
// Two descriptor kinds exist. A Multiplexer owns named children and
// routes to one of them based on the next argument token. An EndPoint
// binds options to an action and executes it, either locally or fanned
// out over a session by an aggregation policy.
package dispatchers

// Descriptor is the declarative, author-supplied description of one
// command. Implementations are the closed set {Multiplexer, EndPoint}.
type Descriptor interface {
	usageText() string
}

// Child pairs a command name with its descriptor. Children are
// declared as a slice so usage rendering and completions keep the
// author's ordering.
type Child struct {
	Name    string
	Command Descriptor
}

// Multiplexer routes to one of its named children. Usage may be empty
// when an ancestor owns the grammar scope; the multiplexer that begins
// a scope must carry the usage text. The {cmd} placeholder in usage
// text expands to the full command path at build time.
type Multiplexer struct {
	Usage    string
	Children []Child
}

func (m Multiplexer) usageText() string { return m.Usage }

// EndPoint binds grammar options to an action. Action is either an
// *Action value or a string resolved against the build registry.
// Policy selects the session aggregation discipline; a nil Policy
// makes a plain local endpoint that runs the action exactly once with
// no connection.
type EndPoint struct {
	Usage  string
	Action any
	Policy Policy
}

func (e EndPoint) usageText() string { return e.Usage }

// Policy is the aggregation discipline of a session endpoint. The
// three implementations (listing, instance rendering, result checking)
// live with the execution engine; the builder only validates shape.
type Policy interface {
	// PolicyName identifies the discipline in diagnostics.
	PolicyName() string

	// Validate checks policy parameters at build time. Mutually
	// exclusive fields set together must wrap ErrMixedPolicyFields.
	Validate() error
}
