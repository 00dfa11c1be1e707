package dispatchers

import (
	"fmt"
	"sort"

	"github.com/rig-tools/cli/internal/session"
)

// ActionFunc is the callable behind an endpoint. The connection is
// supplied by the execution engine (nil for plain local endpoints) and
// is never part of option binding. args holds one value per declared
// parameter, in declaration order; extra carries surplus options when
// the action accepts them.
type ActionFunc func(conn session.Connection, args []any, extra map[string]any) (any, error)

// Action is a named callable with introspectable formal parameters.
type Action struct {
	// Name is the symbolic registry key, e.g. "storage.raid.create".
	Name string

	// Params are the normalized option identifiers bound positionally,
	// in order. The connection parameter is not listed here.
	Params []string

	// AcceptsExtra passes unmatched options through in the extra map
	// instead of dropping them.
	AcceptsExtra bool

	Func ActionFunc
}

// NewAction builds an Action with the given parameter order.
func NewAction(name string, fn ActionFunc, params ...string) *Action {
	return &Action{Name: name, Params: params, Func: fn}
}

// Registry maps symbolic names to actions. Descriptors may reference
// actions by name; the builder resolves them here, eagerly, so a
// dangling reference fails at startup rather than on first use.
type Registry struct {
	actions map[string]*Action
}

func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]*Action)}
}

// Register adds an action under its name. Re-registering a name is a
// programmer error.
func (r *Registry) Register(action *Action) error {
	if action == nil || action.Name == "" {
		return fmt.Errorf("register action: missing name")
	}
	if _, exists := r.actions[action.Name]; exists {
		return fmt.Errorf("register action: duplicate name %q", action.Name)
	}
	r.actions[action.Name] = action
	return nil
}

// MustRegister is Register for startup wiring, where a failure means
// the binary is miswired.
func (r *Registry) MustRegister(action *Action) {
	if err := r.Register(action); err != nil {
		panic(err)
	}
}

// Lookup resolves a symbolic action name.
func (r *Registry) Lookup(name string) (*Action, error) {
	action, ok := r.actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: no action registered as %q", ErrActionResolution, name)
	}
	return action, nil
}

// Names returns all registered action names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
