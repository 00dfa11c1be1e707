// Package cli assembles the rig command tree: the domain command
// groups plus the local utility commands (help, version, completions).
package cli

import (
	"github.com/rig-tools/cli/internal/commands/configcmd"
	"github.com/rig-tools/cli/internal/commands/hostcmd"
	"github.com/rig-tools/cli/internal/commands/storage"
	"github.com/rig-tools/cli/internal/completions"
	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/domain"
	"github.com/rig-tools/cli/internal/session"
	"github.com/rig-tools/cli/internal/ui/browser"
	"github.com/rig-tools/cli/internal/usage"
)

// Version is the release version, overridden at build time.
var Version = "dev"

const rootUsage = `Declarative multi-host administration.

Usage:
    {cmd} <command> [<args>...]

Commands:
    storage      Storage device and RAID management.
    host         Target inventory management.
    config       Configuration management.
    help         Show usage for a command.
    version      Show the rig version.
    completions  Generate a shell completion script.
`

const helpUsage = `Show usage for a command, or browse the tree interactively.

Usage:
    {cmd} [--interactive] [<path>...]

Options:
    --interactive  Open the interactive command browser.
`

const versionUsage = `Show the rig version.

Usage:
    {cmd}
`

const completionsUsage = `Generate a completion script for bash or zsh.

Usage:
    {cmd} <shell>
`

// Build registers every action and freezes the full command tree.
// The help and completions actions close over the returned root, so
// they must not be invoked before Build returns.
func Build(app *domain.Application) (*dispatchers.Node, error) {
	registry := dispatchers.NewRegistry()
	storage.Register(registry)
	hostcmd.Register(registry, hostcmd.Deps{Inventory: app.Inventory, Out: app.Output})
	configcmd.Register(registry, configcmd.Deps{Config: app.Config, Out: app.Output})

	var root *dispatchers.Node
	registry.MustRegister(versionAction(app.Output))
	registry.MustRegister(helpAction(app.Output, &root))
	registry.MustRegister(completionsAction(app.Output, &root))

	node, err := dispatchers.Build("rig", descriptor(), registry)
	if err != nil {
		return nil, err
	}
	root = node
	return node, nil
}

func descriptor() dispatchers.Multiplexer {
	return dispatchers.Multiplexer{
		Usage: rootUsage,
		Children: []dispatchers.Child{
			{Name: "storage", Command: storage.Descriptor()},
			{Name: "host", Command: hostcmd.Descriptor()},
			{Name: "config", Command: configcmd.Descriptor()},
			{Name: "help", Command: dispatchers.EndPoint{Usage: helpUsage, Action: "rig.help"}},
			{Name: "version", Command: dispatchers.EndPoint{Usage: versionUsage, Action: "rig.version"}},
			{Name: "completions", Command: dispatchers.EndPoint{Usage: completionsUsage, Action: "rig.completions"}},
		},
	}
}

func versionAction(out domain.OutputWriter) *dispatchers.Action {
	return dispatchers.NewAction("rig.version",
		func(_ session.Connection, _ []any, _ map[string]any) (any, error) {
			_, err := out.Printf("rig version %s\n", Version)
			return 0, err
		})
}

func helpAction(out domain.OutputWriter, root **dispatchers.Node) *dispatchers.Action {
	return dispatchers.NewAction("rig.help",
		func(_ session.Connection, args []any, _ map[string]any) (any, error) {
			path := argStrings(args[0])
			if argBool(args[1]) {
				if err := browser.Run(*root, out); err != nil {
					return nil, err
				}
				return 0, nil
			}

			node := *root
			for _, token := range path {
				child, ok := node.Child(token)
				if !ok {
					suggestions := dispatchers.SimilarChildren(token, node, 3)
					return nil, usage.UnknownCommand(token, suggestions...)
				}
				node = child
			}
			out.Pager(node.UsageText())
			return 0, nil
		},
		"path", "__interactive")
}

func completionsAction(out domain.OutputWriter, root **dispatchers.Node) *dispatchers.Action {
	return dispatchers.NewAction("rig.completions",
		func(_ session.Connection, args []any, _ map[string]any) (any, error) {
			script, err := completions.Generate(*root, argString(args[0]))
			if err != nil {
				return nil, err
			}
			if _, err := out.Write([]byte(script)); err != nil {
				return nil, err
			}
			return 0, nil
		},
		"shell")
}

func argString(v any) string {
	s, _ := v.(string)
	return s
}

func argBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func argStrings(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if vv == "" {
			return nil
		}
		return []string{vv}
	default:
		return nil
	}
}
