package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestLoadEnvOnly(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "env-provided-secret")
	t.Setenv("APP_DB_DSN", "taskuser:pw@tcp(db:3306)/tracker")
	t.Setenv("APP_LOG_FILE", "logs/app.log")
	t.Setenv("APP_APP_PORT", "9090")

	cfg := Load(missingFile(t))
	require.Equal(t, "env-provided-secret", cfg.JWT.Secret)
	require.Equal(t, "taskuser:pw@tcp(db:3306)/tracker", cfg.DB.DSN)
	require.Equal(t, "logs/app.log", cfg.Log.File)
	require.Equal(t, 9090, cfg.App.Port)
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load(missingFile(t))
	require.Equal(t, 8080, cfg.App.Port)
	require.Equal(t, "development", cfg.App.Env)
	require.Equal(t, "mysql", cfg.DB.Driver)
	require.Equal(t, 60, cfg.JWT.AccessTokenTTLMin)
	require.True(t, cfg.DB.AutoMigrate)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("jwt:\n  secret: file-secret\napp:\n  port: 8081\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	t.Setenv("APP_JWT_SECRET", "env-wins")

	cfg := Load(path)
	require.Equal(t, "env-wins", cfg.JWT.Secret)
	require.Equal(t, 8081, cfg.App.Port)
}

func TestLoadMissingFileStaysQuiet(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Load(missingFile(t))
	require.NotContains(t, buf.String(), "not readable")
}

func TestLoadBrokenFileIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [not: valid\n"), 0o644))

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	Load(path)
	require.Contains(t, buf.String(), "not readable")
}
