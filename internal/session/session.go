// Package session models the set of remote targets one invocation
// operates against, and the narrow object-model interface commands use
// to query them.
package session

// Instance is one managed object on a remote target, exposed as an
// ordered property bag.
type Instance interface {
	// Class returns the object's class name (e.g. "StorageExtent").
	Class() string

	// Properties returns the property names in declaration order.
	Properties() []string

	// Get returns the named property value and whether it exists.
	Get(name string) (any, bool)
}

// Query is the narrow object-model interface a connection exposes to
// command actions.
type Query interface {
	// Instances returns all instances of the given class.
	Instances(class string) ([]Instance, error)

	// Invoke calls a management method on the given class.
	Invoke(class, method string, params map[string]any) (any, error)
}

// Connection is one reachable remote target within a session.
type Connection interface {
	// Hostname identifies the target.
	Hostname() string

	// Query returns the target's object-model interface.
	Query() Query
}

// UnconnectedTarget records a target whose connection attempt failed
// before execution began.
type UnconnectedTarget struct {
	Hostname string
	Err      error
}

// Session is an ordered collection of connections plus the targets
// that failed to connect. The execution engine only reads it.
type Session struct {
	connections []Connection
	unconnected []UnconnectedTarget
}

// New creates a session from already-established connections and the
// targets that could not be connected. Order is preserved.
func New(connections []Connection, unconnected []UnconnectedTarget) *Session {
	return &Session{connections: connections, unconnected: unconnected}
}

// Len returns the total number of targets in the session, whether
// their connection attempt succeeded or not.
func (s *Session) Len() int {
	return len(s.connections) + len(s.unconnected)
}

// Connections returns the usable connections in session order.
func (s *Session) Connections() []Connection {
	return s.connections
}

// Unconnected returns the targets that failed to connect, in the order
// they were attempted.
func (s *Session) Unconnected() []UnconnectedTarget {
	return s.unconnected
}
