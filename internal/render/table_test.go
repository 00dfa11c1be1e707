package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)

	require.NoError(t, table.Header([]string{"DeviceID", "Name"}))
	require.NoError(t, table.Row([]any{"/dev/sda", "sda"}))
	require.NoError(t, table.Header([]string{"DeviceID", "Name"}))
	require.NoError(t, table.Row([]any{"/dev/sdb", "sdb"}))
	require.NoError(t, table.Flush())

	require.Equal(t, "DeviceID,Name\n/dev/sda,sda\n/dev/sdb,sdb\n", buf.String())
}

func TestTableNoHeader(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf)

	require.NoError(t, table.Header(nil))
	require.False(t, table.WroteHeader())
	require.NoError(t, table.Row([]any{1, true}))
	require.NoError(t, table.Flush())

	require.Equal(t, "1,true\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "", FormatValue(nil))
	require.Equal(t, "plain", FormatValue("plain"))
	require.Equal(t, "sda sdb", FormatValue([]string{"sda", "sdb"}))
	require.Equal(t, "1 two", FormatValue([]any{1, "two"}))
	require.Equal(t, "42", FormatValue(42))
}

func TestWriteFields(t *testing.T) {
	var buf bytes.Buffer

	err := WriteFields(&buf, []Field{
		{Label: "DeviceID", Value: "/dev/md0"},
		{Label: "Level", Value: 5},
	})
	require.NoError(t, err)
	require.Equal(t, "DeviceID=/dev/md0\nLevel=5\n", buf.String())
}
