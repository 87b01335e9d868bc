package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"client"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadConfig_Defaults(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	assert.Empty(t, cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.BrowseTimeout)
	assert.Empty(t, cfg.SharedSecret)
}

func TestLoadConfig_Flags(t *testing.T) {
	withArgs(t, "-a", "192.168.1.10:6161", "-w", "10", "-k", "s3cret")

	cfg := LoadConfig()

	assert.Equal(t, "192.168.1.10:6161", cfg.ServerEndpointAddr)
	assert.Equal(t, 10*time.Second, cfg.BrowseTimeout)
	assert.Equal(t, "s3cret", cfg.SharedSecret)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_addr": "10.0.0.5:6161",
		"browse_timeout": "5s",
		"shared_secret": "json-secret"
	}`), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, "10.0.0.5:6161", cfg.ServerEndpointAddr)
	assert.Equal(t, 5*time.Second, cfg.BrowseTimeout)
	assert.Equal(t, "json-secret", cfg.SharedSecret)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_endpoint_addr": "10.0.0.5:6161",
		"browse_timeout": "5s",
		"shared_secret": "json-secret"
	}`), 0o600))

	withArgs(t, "-c", path, "-a", "10.0.0.9:6161")

	cfg := LoadConfig()

	assert.Equal(t, "10.0.0.9:6161", cfg.ServerEndpointAddr, "flag must win over JSON")
	assert.Equal(t, "json-secret", cfg.SharedSecret)
}
