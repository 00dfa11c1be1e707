package hostcmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/inventory"
	"github.com/rig-tools/cli/internal/ui"
)

func testDeps(t *testing.T) (Deps, *bytes.Buffer) {
	t.Helper()

	store, err := inventory.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	out := &bytes.Buffer{}
	return Deps{Inventory: store, Out: ui.NewWriterTo(out)}, out
}

func TestAddAndList(t *testing.T) {
	deps, out := testDeps(t)

	result, err := addAction(deps).Func(nil, []any{"alpha.example.net", "rack 4"}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result)
	require.Contains(t, out.String(), "Added alpha.example.net")

	out.Reset()
	_, err = listAction(deps).Func(nil, nil, nil)
	require.NoError(t, err)
	require.Contains(t, out.String(), "Hostname,Note,Created")
	require.Contains(t, out.String(), "alpha.example.net,rack 4,")
}

func TestRemove(t *testing.T) {
	deps, _ := testDeps(t)

	_, err := addAction(deps).Func(nil, []any{"alpha.example.net", nil}, nil)
	require.NoError(t, err)

	result, err := removeAction(deps).Func(nil, []any{"alpha.example.net"}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result)

	_, err = removeAction(deps).Func(nil, []any{"alpha.example.net"}, nil)
	require.Error(t, err)
}

func TestDescriptorBuilds(t *testing.T) {
	deps, _ := testDeps(t)
	registry := dispatchers.NewRegistry()
	Register(registry, deps)

	root, err := dispatchers.Build("rig", dispatchers.Multiplexer{
		Usage: "Usage:\n    {cmd} <command> [<args>...]\n",
		Children: []dispatchers.Child{
			{Name: "host", Command: Descriptor()},
		},
	}, registry)
	require.NoError(t, err)

	add, ok := dispatchers.ResolvePath(root, []string{"host", "add"})
	require.True(t, ok)
	require.Nil(t, add.Policy())
	require.Contains(t, add.UsageText(), "rig host add <hostname>")
}
