package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"DOCUGEN_CONFIG_PATH",
		"DOCUGEN_SERVER_HOST",
		"DOCUGEN_SERVER_PORT",
		"DOCUGEN_DB_PATH",
		"DOCUGEN_LOG_LEVEL",
		"DOCUGEN_LOG_PATH",
		"DOCUGEN_MODEL_API_KEY",
		"DOCUGEN_MODEL_NAME",
		"DOCUGEN_MODEL_BASE_URL",
		"DOCUGEN_MODEL_TIMEOUT",
		"DOCUGEN_MODEL_MAX_ATTEMPTS",
		"DOCUGEN_BRIDGE_TOKEN",
		"DOCUGEN_MCP_ENABLED",
		"DOCUGEN_MCP_AUTH_TOKEN",
		"GEMINI_API_KEY",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 90*time.Second, cfg.Model.Timeout)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "docugen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
db:
  path: /var/lib/docugen/app.db
model:
  name: gemini-pro
  timeout: 30s
bridge:
  token: from-file
`), 0o600))

	t.Setenv("DOCUGEN_CONFIG_PATH", path)
	t.Setenv("DOCUGEN_BRIDGE_TOKEN", "from-env")
	t.Setenv("DOCUGEN_MODEL_MAX_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, "/var/lib/docugen/app.db", cfg.DB.Path)
	require.Equal(t, "gemini-pro", cfg.Model.Name)
	require.Equal(t, 30*time.Second, cfg.Model.Timeout)
	require.Equal(t, 5, cfg.Model.MaxAttempts)
	require.Equal(t, "from-env", cfg.Bridge.Token)
}

func TestLoad_InvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCUGEN_SERVER_PORT", "http")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCUGEN_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

func TestLoad_GeminiKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "g-key", cfg.Model.APIKey)

	t.Setenv("DOCUGEN_MODEL_API_KEY", "d-key")
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, "d-key", cfg.Model.APIKey)
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Model.APIKey = "key"
	valid.Bridge.Token = "secret"
	require.NoError(t, valid.Validate())

	missing := Default()
	err := missing.Validate()
	require.ErrorContains(t, err, "model API key is required")
	require.ErrorContains(t, err, "bridge token is required")

	badLevel := valid
	badLevel.Log.Level = "verbose"
	require.ErrorContains(t, badLevel.Validate(), "invalid log level")

	badPolicy := valid
	badPolicy.Model.MaxAttempts = 0
	badPolicy.Model.Timeout = 0
	err = badPolicy.Validate()
	require.ErrorContains(t, err, "max attempts")
	require.ErrorContains(t, err, "timeout")
}

func TestValidateStorage_IgnoresSecrets(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ValidateStorage())

	cfg.DB.Path = " "
	require.Error(t, cfg.ValidateStorage())
}
