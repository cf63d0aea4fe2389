package httpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "server.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("full config", func(t *testing.T) {
		path := writeConfig(t, `
addr: ":8080"
read_header_timeout: 5s
shutdown_timeout: 1m30s
max_body_bytes: 1048576
enable_h2c: true
hostname: api-1
hostname_env: [POD_NAME, HOSTNAME]
`)

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
		assert.Equal(t, 90*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
		assert.True(t, cfg.EnableH2C)
		assert.Equal(t, "api-1", cfg.Hostname)
		assert.Equal(t, []string{"POD_NAME", "HOSTNAME"}, cfg.HostnameEnv)
	})

	t.Run("omitted durations stay zero", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, `addr: ":8080"`))
		require.NoError(t, err)
		assert.Zero(t, cfg.ReadHeaderTimeout)
		assert.Zero(t, cfg.ShutdownTimeout)
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "adrr: \":8080\"\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "adrr")
	})

	t.Run("rejects malformed durations", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "read_header_timeout: soon\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read_header_timeout")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Addr: ":0"}.withDefaults()
	assert.Equal(t, 10*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestConfigResolveHostname(t *testing.T) {
	t.Run("explicit hostname wins", func(t *testing.T) {
		name, err := Config{Hostname: "api-7"}.resolveHostname()
		require.NoError(t, err)
		assert.Equal(t, "api-7", name)
	})

	t.Run("first non-empty env var wins", func(t *testing.T) {
		t.Setenv("TREEMUX_TEST_POD", "pod-3")

		name, err := Config{HostnameEnv: []string{"TREEMUX_TEST_UNSET", "TREEMUX_TEST_POD"}}.resolveHostname()
		require.NoError(t, err)
		assert.Equal(t, "pod-3", name)
	})

	t.Run("falls back to os hostname", func(t *testing.T) {
		name, err := Config{}.resolveHostname()
		require.NoError(t, err)
		assert.NotEmpty(t, name)
	})
}
