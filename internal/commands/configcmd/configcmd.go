// Package configcmd defines the config command group: plain local
// endpoints reading and editing the rig configuration file.
package configcmd

import (
	"github.com/rig-tools/cli/internal/config"
	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/render"
	"github.com/rig-tools/cli/internal/session"
	"github.com/rig-tools/cli/internal/usage"
)

const configUsage = `Configuration management.

Usage:
    {cmd} list
    {cmd} get <key>
    {cmd} set <key> <value>
    {cmd} unset <key>
`

// Deps are the capabilities the config commands need.
type Deps struct {
	Config domain.ConfigProvider
	Out    domain.OutputWriter
}

// Register adds the config actions to the registry.
func Register(registry *dispatchers.Registry, deps Deps) {
	registry.MustRegister(listAction(deps))
	registry.MustRegister(getAction(deps))
	registry.MustRegister(setAction(deps))
	registry.MustRegister(unsetAction(deps))
}

// Descriptor returns the config command subtree.
func Descriptor() dispatchers.Multiplexer {
	return dispatchers.Multiplexer{
		Usage: configUsage,
		Children: []dispatchers.Child{
			{Name: "list", Command: dispatchers.EndPoint{Action: "config.list"}},
			{Name: "get", Command: dispatchers.EndPoint{Action: "config.get"}},
			{Name: "set", Command: dispatchers.EndPoint{Action: "config.set"}},
			{Name: "unset", Command: dispatchers.EndPoint{Action: "config.unset"}},
		},
	}
}

func listAction(deps Deps) *dispatchers.Action {
	return dispatchers.NewAction("config.list",
		func(_ session.Connection, _ []any, _ map[string]any) (any, error) {
			values, err := deps.Config.GetAll()
			if err != nil {
				return nil, err
			}

			table := render.NewTable(deps.Out)
			if err := table.Header([]string{"Key", "Value"}); err != nil {
				return nil, err
			}
			for _, key := range config.Keys {
				if err := table.Row([]any{key.Name, values[key.Name]}); err != nil {
					return nil, err
				}
			}
			if err := table.Flush(); err != nil {
				return nil, err
			}
			return 0, nil
		})
}

func getAction(deps Deps) *dispatchers.Action {
	return dispatchers.NewAction("config.get",
		func(_ session.Connection, args []any, _ map[string]any) (any, error) {
			key, _ := args[0].(string)
			if !config.IsKnownKey(key) {
				return nil, usage.InvalidConfigKey(key)
			}

			value, _ := deps.Config.Get(key)
			if _, err := deps.Out.Println(value); err != nil {
				return nil, err
			}
			return 0, nil
		},
		"key")
}

func setAction(deps Deps) *dispatchers.Action {
	return dispatchers.NewAction("config.set",
		func(_ session.Connection, args []any, _ map[string]any) (any, error) {
			key, _ := args[0].(string)
			value, _ := args[1].(string)
			if !config.IsKnownKey(key) {
				return nil, usage.InvalidConfigKey(key)
			}

			if err := deps.Config.Set(key, value); err != nil {
				return nil, err
			}
			if _, err := deps.Out.Printf("Set %s=%s\n", key, value); err != nil {
				return nil, err
			}
			return 0, nil
		},
		"key", "value")
}

func unsetAction(deps Deps) *dispatchers.Action {
	return dispatchers.NewAction("config.unset",
		func(_ session.Connection, args []any, _ map[string]any) (any, error) {
			key, _ := args[0].(string)
			if !config.IsKnownKey(key) {
				return nil, usage.InvalidConfigKey(key)
			}

			if err := deps.Config.Unset(key); err != nil {
				return nil, err
			}
			if _, err := deps.Out.Printf("Unset %s\n", key); err != nil {
				return nil, err
			}
			return 0, nil
		},
		"key")
}
