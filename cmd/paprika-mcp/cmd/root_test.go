package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at a temp dir and clears account env vars so
// tests never see real credentials.
func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PAPRIKA_EMAIL", "")
	t.Setenv("PAPRIKA_PASSWORD", "")
	t.Setenv("PAPRIKA_USER_AGENT", "")
	t.Setenv("PAPRIKA_BASE_URL", "")
}

func TestRootCmd_HasExpectedSubcommands(t *testing.T) {
	rootCmd := NewRootCmd()

	for _, name := range []string{"serve", "setup", "search", "doctor", "version"} {
		sub, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, "subcommand %s should resolve", name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestRootCmd_DefaultRunFailsWithoutCredentials(t *testing.T) {
	// With no credentials configured the smart default must fail fast
	// instead of starting a server that cannot sync anything.
	isolateHome(t)

	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestRootCmd_VersionFlag(t *testing.T) {
	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "paprika-mcp version")
}
