package dispatchers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rig-tools/cli/internal/session"
)

const rootUsage = `Usage:
    {cmd} <command> [<args>...]
`

const storageUsage = `Usage:
    {cmd} list
    {cmd} show [<devices>...]
`

func noopAction(name string, params ...string) *Action {
	return NewAction(name, func(_ session.Connection, _ []any, _ map[string]any) (any, error) {
		return nil, nil
	}, params...)
}

func testTree(t *testing.T) *Node {
	t.Helper()

	root, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "storage", Command: Multiplexer{
				Usage: storageUsage,
				Children: []Child{
					{Name: "list", Command: EndPoint{Action: noopAction("storage.list")}},
					{Name: "show", Command: EndPoint{Action: noopAction("storage.show", "devices")}},
				},
			}},
		},
	}, nil)
	require.NoError(t, err)
	return root
}

func TestBuildTree(t *testing.T) {
	root := testTree(t)

	require.False(t, root.IsEndPoint())
	require.Equal(t, []string{"storage"}, root.ChildNames())

	storage, ok := root.Child("storage")
	require.True(t, ok)
	require.Equal(t, []string{"rig", "storage"}, storage.Path())
	require.Equal(t, []string{"list", "show"}, storage.ChildNames())

	list, ok := storage.Child("list")
	require.True(t, ok)
	require.True(t, list.IsEndPoint())
	require.Equal(t, "storage.list", list.Action().Name)
}

func TestBuildExpandsPlaceholder(t *testing.T) {
	root := testTree(t)

	storage, _ := root.Child("storage")
	require.Contains(t, storage.UsageText(), "rig storage list")
	require.Contains(t, root.UsageText(), "rig <command>")
}

func TestBuildUsageInheritance(t *testing.T) {
	root := testTree(t)

	storage, _ := root.Child("storage")
	list, _ := storage.Child("list")

	require.True(t, storage.OwnsGrammar())
	require.False(t, list.OwnsGrammar())
	require.Same(t, storage, list.ScopeOwner())
	require.Equal(t, storage.UsageText(), list.UsageText())
}

func TestBuildRejectsMissingUsage(t *testing.T) {
	_, err := Build("rig", Multiplexer{
		Children: []Child{
			{Name: "list", Command: EndPoint{Action: noopAction("list")}},
		},
	}, nil)

	var derr *DescriptorError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ReasonMissingUsage, derr.Reason)
}

func TestBuildRejectsEmptyMultiplexer(t *testing.T) {
	_, err := Build("rig", Multiplexer{Usage: rootUsage}, nil)

	var derr *DescriptorError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ReasonNoChildren, derr.Reason)
}

func TestBuildRejectsDuplicateChild(t *testing.T) {
	_, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "list", Command: EndPoint{Action: noopAction("a")}},
			{Name: "list", Command: EndPoint{Action: noopAction("b")}},
		},
	}, nil)

	var derr *DescriptorError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ReasonDuplicateChild, derr.Reason)
}

func TestBuildRejectsInvalidChildName(t *testing.T) {
	for _, name := range []string{"List", "two words", "trailing-", "-leading", "under_score", ""} {
		_, err := Build("rig", Multiplexer{
			Usage: rootUsage,
			Children: []Child{
				{Name: name, Command: EndPoint{Action: noopAction("a")}},
			},
		}, nil)

		var derr *DescriptorError
		require.ErrorAs(t, err, &derr, "name %q", name)
		require.Equal(t, ReasonInvalidChildName, derr.Reason, "name %q", name)
	}
}

func TestBuildRejectsMissingAction(t *testing.T) {
	_, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "list", Command: EndPoint{}},
		},
	}, nil)

	var derr *DescriptorError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ReasonMissingAction, derr.Reason)
}

func TestBuildRejectsNilActionFunc(t *testing.T) {
	_, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "list", Command: EndPoint{Action: &Action{Name: "broken"}}},
		},
	}, nil)

	var derr *DescriptorError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ReasonNotCallable, derr.Reason)
}

func TestBuildResolvesSymbolicAction(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(noopAction("storage.list"))

	root, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "list", Command: EndPoint{Action: "storage.list"}},
		},
	}, registry)
	require.NoError(t, err)

	list, _ := root.Child("list")
	require.Equal(t, "storage.list", list.Action().Name)
}

func TestBuildSymbolicActionMissing(t *testing.T) {
	_, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "list", Command: EndPoint{Action: "no.such.action"}},
		},
	}, NewRegistry())

	require.ErrorIs(t, err, ErrActionResolution)
}

type fakePolicy struct {
	err error
}

func (fakePolicy) PolicyName() string  { return "fake" }
func (p fakePolicy) Validate() error   { return p.err }

func TestBuildValidatesPolicy(t *testing.T) {
	_, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "check", Command: EndPoint{
				Action: noopAction("check"),
				Policy: fakePolicy{err: errors.New("columns must be strings")},
			}},
		},
	}, nil)

	var derr *DescriptorError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ReasonInvalidPolicy, derr.Reason)
}

func TestBuildDetectsMixedPolicyFields(t *testing.T) {
	_, err := Build("rig", Multiplexer{
		Usage: rootUsage,
		Children: []Child{
			{Name: "check", Command: EndPoint{
				Action: noopAction("check"),
				Policy: fakePolicy{err: ErrMixedPolicyFields},
			}},
		},
	}, nil)

	var derr *DescriptorError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, ReasonMixedPolicy, derr.Reason)
}

func TestBuildDeterministic(t *testing.T) {
	first := testTree(t)
	second := testTree(t)

	require.Equal(t, CommandPaths(first, ""), CommandPaths(second, ""))
}

func TestRegistryDuplicate(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(noopAction("a")))
	require.Error(t, registry.Register(noopAction("a")))
	require.Equal(t, []string{"a"}, registry.Names())
}
