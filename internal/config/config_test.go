package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: "s3cret"
bootstrap_admin:
  email: "admin@example.com"
  password: "pw"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 120, cfg.JWT.ExpireMinutes)
	assert.Equal(t, "Administrator", cfg.BootstrapAdmin.Name)
	assert.Equal(t, 3, cfg.BootstrapAdmin.Role)
	assert.Equal(t, "news_articles", cfg.Elasticsearch.IndexName)
	assert.Equal(t, int64(5), cfg.Media.MaxUploadMB)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
jwt:
  secret: "s3cret"
`)
	t.Setenv("FUNEWS_SERVER_PORT", "9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoad_RequiresSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
