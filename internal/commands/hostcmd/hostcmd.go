// Package hostcmd defines the host command group: plain local
// endpoints managing the persistent target inventory.
package hostcmd

import (
	"fmt"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/render"
	"github.com/rig-tools/cli/internal/session"
)

const hostUsage = `Target inventory management.

Usage:
    {cmd} list
    {cmd} add <hostname> [--note=<text>]
    {cmd} remove <hostname>

Options:
    --note=<text>  Free-form note stored with the target.
`

// Deps are the capabilities the host commands need.
type Deps struct {
	Inventory domain.HostInventory
	Out       domain.OutputWriter
}

// Register adds the host actions to the registry.
func Register(registry *dispatchers.Registry, deps Deps) {
	registry.MustRegister(listAction(deps))
	registry.MustRegister(addAction(deps))
	registry.MustRegister(removeAction(deps))
}

// Descriptor returns the host command subtree. All endpoints are plain
// local commands; no session is involved.
func Descriptor() dispatchers.Multiplexer {
	return dispatchers.Multiplexer{
		Usage: hostUsage,
		Children: []dispatchers.Child{
			{Name: "list", Command: dispatchers.EndPoint{Action: "host.list"}},
			{Name: "add", Command: dispatchers.EndPoint{Action: "host.add"}},
			{Name: "remove", Command: dispatchers.EndPoint{Action: "host.remove"}},
		},
	}
}

func listAction(deps Deps) *dispatchers.Action {
	return dispatchers.NewAction("host.list",
		func(_ session.Connection, _ []any, _ map[string]any) (any, error) {
			targets, err := deps.Inventory.List()
			if err != nil {
				return nil, err
			}

			table := render.NewTable(deps.Out)
			if err := table.Header([]string{"Hostname", "Note", "Created"}); err != nil {
				return nil, err
			}
			for _, target := range targets {
				if err := table.Row([]any{target.Hostname, target.Note, target.Created}); err != nil {
					return nil, err
				}
			}
			return nil, table.Flush()
		})
}

func addAction(deps Deps) *dispatchers.Action {
	return dispatchers.NewAction("host.add",
		func(_ session.Connection, args []any, _ map[string]any) (any, error) {
			hostname, _ := args[0].(string)
			note, _ := args[1].(string)

			target, err := deps.Inventory.Add(hostname, note)
			if err != nil {
				return nil, err
			}

			_, _ = deps.Out.Printf("Added %s\n", target.Hostname)
			return 0, nil
		}, "hostname", "__note")
}

func removeAction(deps Deps) *dispatchers.Action {
	return dispatchers.NewAction("host.remove",
		func(_ session.Connection, args []any, _ map[string]any) (any, error) {
			hostname, _ := args[0].(string)

			removed, err := deps.Inventory.Remove(hostname)
			if err != nil {
				return nil, err
			}
			if removed == 0 {
				return nil, fmt.Errorf("no such target %q", hostname)
			}

			_, _ = deps.Out.Printf("Removed %s\n", hostname)
			return 0, nil
		}, "hostname")
}
