package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briantkatch/paprika-mcp/internal/config"
)

// loginStub serves a Paprika login endpoint that accepts any credentials.
func loginStub(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/login/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":{"token":"test-token"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSetupCmd_NonInteractiveSavesConfig(t *testing.T) {
	// Given: an isolated home and a stub login endpoint
	isolateHome(t)
	srv := loginStub(t)
	t.Setenv("PAPRIKA_BASE_URL", srv.URL)

	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"setup", "--email", "you@example.com", "--password", "secret"})

	// When: running non-interactive setup
	err := cmd.Execute()

	// Then: credentials are verified and written with owner-only mode
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Credentials verified")

	info, err := os.Stat(config.YAMLPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "you@example.com", cfg.Email)
	assert.Equal(t, "secret", cfg.Password)
}

func TestSetupCmd_RejectedLoginDoesNotSave(t *testing.T) {
	isolateHome(t)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /account/login/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Setenv("PAPRIKA_BASE_URL", srv.URL)

	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"setup", "--email", "you@example.com", "--password", "wrong"})

	err := cmd.Execute()

	require.Error(t, err)
	_, statErr := os.Stat(config.YAMLPath())
	assert.True(t, os.IsNotExist(statErr), "config must not be written after a rejected login")
}

func TestSetupCmd_CheckWithoutCredentialsFails(t *testing.T) {
	isolateHome(t)

	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"setup", "--check"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestSetupCmd_NonTerminalWithoutFlagsFails(t *testing.T) {
	// Tests run without a tty, so the interactive prompt must refuse
	// instead of hanging on stdin.
	isolateHome(t)

	cmd := NewRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(bytes.NewBufferString(""))
	cmd.SetArgs([]string{"setup"})

	err := cmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestSetupCmd_ConfigDirCreated(t *testing.T) {
	isolateHome(t)
	srv := loginStub(t)
	t.Setenv("PAPRIKA_BASE_URL", srv.URL)

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"setup", "--email", "you@example.com", "--password", "secret"})

	require.NoError(t, cmd.Execute())

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	info, err := os.Stat(filepath.Join(home, ".paprika-mcp"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
