package transport

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rig-tools/cli/internal/log"
	"github.com/rig-tools/cli/internal/session"
)

const testFixture = `
hosts:
  alpha.example.net:
    classes:
      StorageExtent:
        - DeviceID: /dev/sda
          Name: sda
          Size: 512000
        - DeviceID: /dev/sdb
          Name: sdb
          Size: 256000
      MDRAID:
        - DeviceID: /dev/md0
          Name: data
          Level: 1
  beta.example.net:
    unreachable: true
`

func TestParseFixture(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)
	require.Equal(t, []string{"alpha.example.net", "beta.example.net"}, fixture.Hostnames())
}

func TestDialUnreachable(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	_, err = fixture.Dial("beta.example.net")
	require.Error(t, err)

	_, err = fixture.Dial("missing.example.net")
	require.Error(t, err)
}

func TestInstancesPreserveOrder(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	conn, err := fixture.Dial("alpha.example.net")
	require.NoError(t, err)

	instances, err := conn.Query().Instances("StorageExtent")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	first := instances[0]
	require.Equal(t, "StorageExtent", first.Class())
	require.Equal(t, []string{"DeviceID", "Name", "Size"}, first.Properties())

	value, ok := first.Get("DeviceID")
	require.True(t, ok)
	require.Equal(t, "/dev/sda", value)
}

func TestInvokeCreateAndDelete(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	conn, err := fixture.Dial("alpha.example.net")
	require.NoError(t, err)
	query := conn.Query()

	created := session.NewInstance("MDRAID",
		session.Prop{Name: "DeviceID", Value: "/dev/md1"},
		session.Prop{Name: "Name", Value: "scratch"},
		session.Prop{Name: "Level", Value: 0},
	)

	result, err := query.Invoke("MDRAID", "CreateInstance", map[string]any{"instance": created})
	require.NoError(t, err)
	require.Equal(t, 0, result)

	instances, err := query.Instances("MDRAID")
	require.NoError(t, err)
	require.Len(t, instances, 2)

	result, err = query.Invoke("MDRAID", "DeleteInstance", map[string]any{
		"property": "Name",
		"value":    "scratch",
	})
	require.NoError(t, err)
	require.Equal(t, 0, result)

	instances, err = query.Instances("MDRAID")
	require.NoError(t, err)
	require.Len(t, instances, 1)

	_, err = query.Invoke("MDRAID", "DeleteInstance", map[string]any{
		"property": "Name",
		"value":    "scratch",
	})
	require.Error(t, err)
}

func TestInvokeUnknownMethod(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	conn, err := fixture.Dial("alpha.example.net")
	require.NoError(t, err)

	_, err = conn.Query().Invoke("MDRAID", "Reshape", nil)
	require.Error(t, err)
}

func TestMutationsAreConnectionLocal(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	first, err := fixture.Dial("alpha.example.net")
	require.NoError(t, err)

	_, err = first.Query().Invoke("MDRAID", "DeleteInstance", map[string]any{
		"property": "Name",
		"value":    "data",
	})
	require.NoError(t, err)

	second, err := fixture.Dial("alpha.example.net")
	require.NoError(t, err)

	instances, err := second.Query().Instances("MDRAID")
	require.NoError(t, err)
	require.Len(t, instances, 1)
}

func TestBuildSession(t *testing.T) {
	fixture, err := ParseFixture([]byte(testFixture))
	require.NoError(t, err)

	sess := BuildSession(fixture, []string{"alpha.example.net", "beta.example.net"}, log.NopLogger{})
	require.Equal(t, 2, sess.Len())
	require.Len(t, sess.Connections(), 1)
	require.Len(t, sess.Unconnected(), 1)
	require.Equal(t, "beta.example.net", sess.Unconnected()[0].Hostname)
}
