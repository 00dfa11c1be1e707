package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rig-tools/cli/internal/dispatchers"
	"github.com/rig-tools/cli/internal/executor"
	"github.com/rig-tools/cli/internal/session"
	"github.com/rig-tools/cli/internal/transport"
)

const testFixture = `
hosts:
  alpha.example.net:
    classes:
      StorageExtent:
        - DeviceID: /dev/sda
          Name: sda
          ElementName: disk-0
          Size: 1048576
          Format: ""
        - DeviceID: /dev/sdb
          Name: sdb
          ElementName: disk-1
          Size: 1048576
          Format: ""
        - DeviceID: /dev/lv0
          Name: lv0
          ElementName: volume-0
          Size: 524288
          Format: xfs
      MDRAID:
        - DeviceID: /dev/md0
          Name: md0
          Level: 1
          Members: [/dev/sda, /dev/sdb]
      BasedOn:
        - Antecedent: /dev/sda
          Dependent: /dev/md0
        - Antecedent: /dev/sdb
          Dependent: /dev/md0
        - Antecedent: /dev/md0
          Dependent: /dev/lv0
`

func testConn(t *testing.T) session.Connection {
	t.Helper()

	fixture, err := transport.ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	conn, err := fixture.Dial("alpha.example.net")
	require.NoError(t, err)
	return conn
}

func TestDeviceList(t *testing.T) {
	conn := testConn(t)

	result, err := deviceListAction().Func(conn, nil, nil)
	require.NoError(t, err)

	rows := result.([]executor.Row)
	require.Len(t, rows, 3)
	require.Equal(t, executor.Row{"/dev/sda", "sda", "disk-0", 1048576, ""}, rows[0])
}

func TestDeviceShow(t *testing.T) {
	conn := testConn(t)

	result, err := deviceShowAction().Func(conn, []any{[]string{"sdb"}}, nil)
	require.NoError(t, err)

	instance := result.(session.Instance)
	require.Equal(t, "sdb", propString(instance, "Name"))
}

func TestDeviceShowUnknown(t *testing.T) {
	conn := testConn(t)

	_, err := deviceShowAction().Func(conn, []any{[]string{"nope"}}, nil)
	require.Error(t, err)
}

func TestProvidesShallow(t *testing.T) {
	conn := testConn(t)

	result, err := deviceProvidesAction().Func(conn, []any{[]string{"/dev/sda"}, false}, nil)
	require.NoError(t, err)

	rows := result.([]executor.Row)
	require.Equal(t, []executor.Row{{"/dev/md0", "md0"}}, rows)
}

func TestProvidesDeep(t *testing.T) {
	conn := testConn(t)

	result, err := deviceProvidesAction().Func(conn, []any{[]string{"/dev/sda"}, true}, nil)
	require.NoError(t, err)

	rows := result.([]executor.Row)
	require.Equal(t, []executor.Row{
		{"/dev/md0", "md0"},
		{"/dev/lv0", "lv0"},
	}, rows)
}

func TestDependsDeep(t *testing.T) {
	conn := testConn(t)

	result, err := deviceDependsAction().Func(conn, []any{[]string{"/dev/lv0"}, true}, nil)
	require.NoError(t, err)

	rows := result.([]executor.Row)
	require.Equal(t, []executor.Row{
		{"/dev/md0", "md0"},
		{"/dev/sda", "sda"},
		{"/dev/sdb", "sdb"},
	}, rows)
}

func TestDeviceTreeAll(t *testing.T) {
	conn := testConn(t)

	result, err := deviceTreeAction().Func(conn, []any{nil}, nil)
	require.NoError(t, err)

	rows := result.([]executor.Row)
	require.Len(t, rows, 5)
	require.Equal(t, executor.Row{0, "/dev/sda", "sda", "disk-0", 1048576, ""}, rows[0])
	require.Equal(t, 1, rows[1][0])
	require.Equal(t, "/dev/md0", rows[1][1])
	require.Equal(t, executor.Row{2, "/dev/lv0", "lv0", "volume-0", 524288, "xfs"}, rows[2])
	require.Equal(t, 0, rows[3][0])
	require.Equal(t, "/dev/sdb", rows[3][1])
	// The array was already shown under sda, so under sdb it is only
	// marked, not expanded.
	require.Equal(t, executor.Row{1, "*** /dev/md0"}, rows[4])
}

func TestDeviceTreeFromDevice(t *testing.T) {
	conn := testConn(t)

	result, err := deviceTreeAction().Func(conn, []any{"md0"}, nil)
	require.NoError(t, err)

	rows := result.([]executor.Row)
	require.Len(t, rows, 2)
	require.Equal(t, 0, rows[0][0])
	require.Equal(t, "/dev/md0", rows[0][1])
	require.Equal(t, 1, rows[1][0])
	require.Equal(t, "/dev/lv0", rows[1][1])
}

func TestDeviceTreeUnknownDevice(t *testing.T) {
	conn := testConn(t)

	_, err := deviceTreeAction().Func(conn, []any{"nope"}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no such device")
}

func TestRaidList(t *testing.T) {
	conn := testConn(t)

	result, err := raidListAction().Func(conn, nil, nil)
	require.NoError(t, err)

	rows := result.([]executor.Row)
	require.Len(t, rows, 1)
	require.Equal(t, "/dev/md0", rows[0][0])
}

func TestRaidCreateAndDelete(t *testing.T) {
	conn := testConn(t)

	result, err := raidCreateAction().Func(conn, []any{"0", []string{"/dev/sda", "/dev/sdb"}, "scratch"}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result)

	listed, err := raidListAction().Func(conn, nil, nil)
	require.NoError(t, err)
	require.Len(t, listed.([]executor.Row), 2)

	result, err = raidDeleteAction().Func(conn, []any{[]string{"scratch"}}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, result)

	listed, err = raidListAction().Func(conn, nil, nil)
	require.NoError(t, err)
	require.Len(t, listed.([]executor.Row), 1)
}

func TestRaidCreateInvalidLevel(t *testing.T) {
	conn := testConn(t)

	_, err := raidCreateAction().Func(conn, []any{"mirror", []string{"/dev/sda"}, ""}, nil)
	require.Error(t, err)
}

func TestDescriptorBuilds(t *testing.T) {
	registry := dispatchers.NewRegistry()
	Register(registry)

	root, err := dispatchers.Build("rig", dispatchers.Multiplexer{
		Usage: "Usage:\n    {cmd} <command> [<args>...]\n",
		Children: []dispatchers.Child{
			{Name: "storage", Command: Descriptor()},
		},
	}, registry)
	require.NoError(t, err)

	create, ok := dispatchers.ResolvePath(root, []string{"storage", "raid", "create"})
	require.True(t, ok)
	require.Equal(t, "storage.raid.create", create.Action().Name)
	require.Contains(t, create.UsageText(), "rig storage raid create")
}
