package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "from-env")

	path := writeConfig(t, `
env: local
http_server:
  address: "localhost:8080"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "localhost:8080", cfg.Address)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, "from-env", cfg.JWTSecret)
}

func TestLoadConfig_SecretRequired(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	os.Unsetenv("AUTH_JWT_SECRET")

	path := writeConfig(t, `
env: local
http_server:
  address: "localhost:8080"
`)

	_, err := loadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_TTLOverride(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s")
	t.Setenv("AUTH_TOKEN_TTL", "30m")

	path := writeConfig(t, `
env: prod
http_server:
  address: ":9090"
  read_timeout: 5s
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, 5*time.Second, cfg.ReadTimeout)
}
