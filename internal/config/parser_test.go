package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_KeyValue(t *testing.T) {
	lines := []string{
		"# rig configuration",
		"",
		"verbosity=1",
		"transport=fixture",
		"pager=\"less -FRSX\"",
	}

	cfg, err := Parse(lines)
	require.NoError(t, err)
	require.Equal(t, "1", cfg["verbosity"])
	require.Equal(t, "fixture", cfg["transport"])
	require.Equal(t, "less -FRSX", cfg["pager"])
}

func TestParse_InlineComments(t *testing.T) {
	cfg, err := Parse([]string{"enable_log=false # turned off"})
	require.NoError(t, err)
	require.Equal(t, "false", cfg["enable_log"])
}

func TestParse_MalformedLinesSkipped(t *testing.T) {
	cfg, err := Parse([]string{"no equals sign", "=", "key=value"})
	require.NoError(t, err)
	require.Equal(t, "value", cfg["key"])
	require.NotContains(t, cfg, "no equals sign")
}

func TestSet_UpdatesExistingKey(t *testing.T) {
	lines := []string{"verbosity=0"}

	lines, found := Set(lines, "verbosity", "2")
	require.True(t, found)
	require.Equal(t, []string{"verbosity=2"}, lines)
}

func TestSet_AppendsNewKey(t *testing.T) {
	lines, found := Set([]string{"verbosity=0"}, "transport", "fixture")
	require.False(t, found)
	require.Equal(t, []string{"verbosity=0", "transport=fixture"}, lines)
}

func TestSet_PreservesInlineComment(t *testing.T) {
	lines, found := Set([]string{"enable_log=true # keep"}, "enable_log", "false")
	require.True(t, found)
	require.Equal(t, []string{"enable_log=false # keep"}, lines)
}

func TestUnset_RemovesKey(t *testing.T) {
	lines := []string{"# header", "verbosity=1", "transport=fixture"}

	lines, removed := Unset(lines, "verbosity")
	require.True(t, removed)
	require.Equal(t, []string{"# header", "transport=fixture"}, lines)

	_, removed = Unset(lines, "missing")
	require.False(t, removed)
}

func TestIsKnownKey(t *testing.T) {
	require.True(t, IsKnownKey("verbosity"))
	require.True(t, IsKnownKey("transport"))
	require.False(t, IsKnownKey("bogus"))
}
