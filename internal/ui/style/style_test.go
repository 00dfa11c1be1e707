package style

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisabledReturnsInputUnchanged(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("RIG_NO_COLOR", "")

	Init(false)
	require.False(t, Enabled())
	require.Equal(t, "plain", Success("plain"))
	require.Equal(t, "plain", Error("plain"))
	require.Equal(t, "plain", Muted("plain"))
}

func TestNoColorEnvWins(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	Init(true)
	require.False(t, Enabled())
	require.Equal(t, "plain", Warning("plain"))
}

func TestRigNoColorEnvWins(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("RIG_NO_COLOR", "1")

	Init(true)
	require.False(t, Enabled())
}

func TestEnabledStylesText(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("RIG_NO_COLOR", "")

	Init(true)
	require.True(t, Enabled())
	require.Contains(t, Success("ok"), "ok")
	require.NotEqual(t, "ok", Success("ok"))

	Init(false)
}
