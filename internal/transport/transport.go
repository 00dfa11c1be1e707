// Package transport provides the dialing seam between the CLI and its
// remote targets. The execution engine never dials; the application
// builds a session up front from a Dialer and a target list.
package transport

import (
	"fmt"

	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/session"
)

// Dialer establishes connections to named targets.
type Dialer interface {
	// Dial connects to the given hostname. A failed dial marks the
	// target unconnected for the rest of the invocation.
	Dial(hostname string) (session.Connection, error)
}

// BuildSession dials every target in order and partitions the results
// into connected and unconnected sets, preserving order in both. Dial
// failures are recorded, never returned: a session with unreachable
// members is still a usable session.
func BuildSession(dialer Dialer, targets []string, logger domain.Logger) *session.Session {
	var connections []session.Connection
	var unconnected []session.UnconnectedTarget

	for _, target := range targets {
		conn, err := dialer.Dial(target)
		if err != nil {
			logger.Warn("transport: failed to connect to %q: %v", target, err)
			unconnected = append(unconnected, session.UnconnectedTarget{Hostname: target, Err: err})
			continue
		}
		connections = append(connections, conn)
	}

	return session.New(connections, unconnected)
}

// New constructs the named dialer. The fixture transport is the only
// built-in; real remote transports plug in through the Dialer interface.
func New(name, fixturePath string) (Dialer, error) {
	switch name {
	case "fixture":
		if fixturePath == "" {
			return nil, fmt.Errorf("fixture transport requires a fixture path")
		}
		return LoadFixture(fixturePath)
	default:
		return nil, fmt.Errorf("unknown transport %q", name)
	}
}
