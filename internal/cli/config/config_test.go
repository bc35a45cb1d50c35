package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, int64(64<<20), cfg.Cache.MaxCost)
	assert.Equal(t, int64(100000), cfg.Cache.NumCounters)
	assert.Equal(t, 100, cfg.Batch.MaxErrors)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoad_ConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	content := `
output:
  format: JSON
  color: false
log:
  level: debug
  development: true
cache:
  enabled: false
  max_cost: 1024
batch:
  max_errors: 5
server:
  addr: 127.0.0.1:9000
  shutdown_timeout: 5s
`
	require.NoError(t, os.WriteFile("sqlparse.yml", []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, int64(1024), cfg.Cache.MaxCost)
	assert.Equal(t, 5, cfg.Batch.MaxErrors)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: debug\n"), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatDebug, cfg.Output.Format)
}

func TestLoadFile_MissingExplicitPath(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SQLPARSE_OUTPUT_FORMAT", "json")
	t.Setenv("SQLPARSE_LOG_LEVEL", "info")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, cfg.Output.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"format typo", "output:\n  format: jsno\n", `did you mean "json"`},
		{"unknown format", "output:\n  format: xml-schema-v2\n", "must be one of: text, json, debug"},
		{"bad level", "log:\n  level: verbose\n", "invalid log.level"},
		{"zero cache", "cache:\n  max_cost: 0\n", "cache.max_cost must be positive"},
		{"negative max errors", "batch:\n  max_errors: -1\n", "batch.max_errors must not be negative"},
		{"empty addr", "server:\n  addr: \"\"\n", "server.addr must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			require.NoError(t, os.WriteFile("sqlparse.yml", []byte(tt.content), 0644))

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat("text"))
	assert.ErrorContains(t, ValidateFormat("txt"), `did you mean "text"`)
}
