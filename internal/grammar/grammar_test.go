package grammar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const raidUsage = `MD RAID management.

Usage:
    rig storage raid list
    rig storage raid create [--name=<name>] <level> <devices>...
    rig storage raid delete <devices>...
`

func TestParse_Subcommand(t *testing.T) {
	opts, err := Parse(raidUsage, []string{"storage", "raid", "list"})
	require.NoError(t, err)

	require.True(t, opts.Bool("list"))
	require.False(t, opts.Bool("create"))
	require.Empty(t, opts.Strings("<devices>"))
}

func TestParse_OptionsAndPositionals(t *testing.T) {
	opts, err := Parse(raidUsage, []string{
		"storage", "raid", "create", "--name=md0", "5", "/dev/sda", "/dev/sdb",
	})
	require.NoError(t, err)

	require.True(t, opts.Bool("create"))
	require.Equal(t, "md0", opts.String("--name"))
	require.Equal(t, "5", opts.String("<level>"))
	require.Equal(t, []string{"/dev/sda", "/dev/sdb"}, opts.Strings("<devices>"))
}

func TestParse_RejectsNonMatchingArgv(t *testing.T) {
	_, err := Parse(raidUsage, []string{"storage", "raid", "explode"})
	require.Error(t, err)
}

func TestOptions_MissingKeys(t *testing.T) {
	opts := Options{}
	require.False(t, opts.Bool("--deep"))
	require.Equal(t, "", opts.String("--name"))
	require.Nil(t, opts.Strings("<devices>"))
}
