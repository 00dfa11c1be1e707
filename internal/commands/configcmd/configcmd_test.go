package configcmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rig-tools/cli/internal/config"
	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/ui"
	"github.com/rig-tools/cli/internal/usage"
)

type testDeps struct {
	deps   Deps
	output *bytes.Buffer
}

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))

	output := &bytes.Buffer{}
	return &testDeps{
		deps: Deps{
			Config: config.NewProvider(),
			Out:    ui.NewWriterTo(output, ui.WithPagerDisabled()),
		},
		output: output,
	}
}

func invoke(t *testing.T, action *dispatchers.Action, args ...any) (any, error) {
	t.Helper()
	return action.Func(nil, args, nil)
}

func TestList_AllKnownKeys(t *testing.T) {
	td := newTestDeps(t)

	result, err := invoke(t, listAction(td.deps))
	require.NoError(t, err)
	require.Equal(t, 0, result)

	out := td.output.String()
	require.Contains(t, out, "Key,Value")
	for _, key := range config.Keys {
		require.Contains(t, out, key.Name)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	td := newTestDeps(t)

	_, err := invoke(t, setAction(td.deps), "transport", "fixture")
	require.NoError(t, err)
	require.Contains(t, td.output.String(), "Set transport=fixture")

	td.output.Reset()
	_, err = invoke(t, getAction(td.deps), "transport")
	require.NoError(t, err)
	require.Equal(t, "fixture\n", td.output.String())
}

func TestUnset_RestoresDefault(t *testing.T) {
	td := newTestDeps(t)

	_, err := invoke(t, setAction(td.deps), "verbosity", "2")
	require.NoError(t, err)

	_, err = invoke(t, unsetAction(td.deps), "verbosity")
	require.NoError(t, err)

	td.output.Reset()
	_, err = invoke(t, getAction(td.deps), "verbosity")
	require.NoError(t, err)
	require.Equal(t, "0\n", td.output.String())
}

func TestUnknownKeyRejected(t *testing.T) {
	td := newTestDeps(t)

	for _, action := range []*dispatchers.Action{
		getAction(td.deps),
		unsetAction(td.deps),
	} {
		_, err := invoke(t, action, "bogus")
		var uerr *usage.Error
		require.True(t, errors.As(err, &uerr), "action %s", action.Name)
		require.Equal(t, 1, uerr.GetExitCode())
	}

	_, err := invoke(t, setAction(td.deps), "bogus", "x")
	var uerr *usage.Error
	require.True(t, errors.As(err, &uerr))
}

func TestDescriptorBuilds(t *testing.T) {
	td := newTestDeps(t)

	registry := dispatchers.NewRegistry()
	Register(registry, td.deps)

	root, err := dispatchers.Build("rig", dispatchers.Multiplexer{
		Usage: "Usage:\n    {cmd} <command> [<args>...]\n",
		Children: []dispatchers.Child{
			{Name: "config", Command: Descriptor()},
		},
	}, registry)
	require.NoError(t, err)

	node, ok := dispatchers.ResolvePath(root, []string{"config", "set"})
	require.True(t, ok)
	require.True(t, node.IsEndPoint())
	require.Nil(t, node.Policy())
	require.Contains(t, node.UsageText(), "rig config set <key> <value>")
}
