package completions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/session"
)

func buildTestTree(t *testing.T) *dispatchers.Node {
	t.Helper()

	action := dispatchers.NewAction("noop", func(_ session.Connection, _ []any, _ map[string]any) (any, error) {
		return nil, nil
	})

	root, err := dispatchers.Build("rig", dispatchers.Multiplexer{
		Usage: "Usage:\n    {cmd} <command> [<args>...]\n",
		Children: []dispatchers.Child{
			{Name: "storage", Command: dispatchers.Multiplexer{
				Usage: "Usage:\n    {cmd} list\n",
				Children: []dispatchers.Child{
					{Name: "list", Command: dispatchers.EndPoint{Action: action}},
				},
			}},
			{Name: "version", Command: dispatchers.EndPoint{Action: action}},
		},
	}, nil)
	require.NoError(t, err)
	return root
}

func TestGenerateBash(t *testing.T) {
	root := buildTestTree(t)
	script := GenerateBash(root)

	require.True(t, strings.HasPrefix(script, "# rig bash completion script"))
	require.Contains(t, script, "_rig_completions()")
	require.Contains(t, script, "complete -F _rig_completions rig")
	require.Contains(t, script, `"") opts="storage version" ;;`)
	require.Contains(t, script, `"storage") opts="list" ;;`)
}

func TestGenerateZsh(t *testing.T) {
	root := buildTestTree(t)
	script := GenerateZsh(root)

	require.True(t, strings.HasPrefix(script, "#compdef rig"))
	require.Contains(t, script, "storage version")
}

func TestScriptMentionsEveryCommandPath(t *testing.T) {
	root := buildTestTree(t)
	script := GenerateBash(root)

	for _, path := range dispatchers.CommandPaths(root, "") {
		parts := strings.Split(path, " ")
		require.Contains(t, script, parts[len(parts)-1])
	}
}

func TestGenerateUnknownShell(t *testing.T) {
	root := buildTestTree(t)

	_, err := Generate(root, "fish")
	require.Error(t, err)
}
