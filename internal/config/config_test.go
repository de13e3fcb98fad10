package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "localhost"
port = 5432
user = "ers"
password = "secret"
dbname = "reservations"

[metrics]
enabled = true
service_name = "ers-test"

[pricing]
url = "http://pricing:8000"
timeout = 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "host=localhost port=5432 user=ers password=secret dbname=reservations sslmode=disable", cfg.Database.DSN())
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "ers-test", cfg.Metrics.ServiceName)
	assert.Equal(t, 3, cfg.Pricing.Timeout)

	// дефолты
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, 256, cfg.Events.Buffer)
}

func TestLoad_MissingRequired(t *testing.T) {
	path := writeConfig(t, `
[database]
port = 5432
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
