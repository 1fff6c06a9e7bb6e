package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HOST", "PORT", "LOG_LEVEL", "LOG_FORMAT", "AUTH_TOKEN_TTL_SECONDS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	env, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", env.Host)
	assert.Equal(t, 8080, env.Port)
	assert.Equal(t, "INFO", env.LogLevel)
	assert.Equal(t, "pretty", env.LogFormat)
	assert.Equal(t, 43200, env.AuthTokenTTLSeconds)
	assert.Equal(t, "*", env.CORSAllowedOrigins)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("API_KEYS", "one, two")
	t.Setenv("AUTH_SECRET", "secret")
	t.Setenv("AUTH_TOKEN_TTL_SECONDS", "60")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://console.example.com")

	env, err := LoadFromEnv()
	require.NoError(t, err)
	cfg := env.ToAppConfig()

	assert.Equal(t, 9000, cfg.Port())
	assert.Equal(t, dir, cfg.DataDir())
	assert.Equal(t, DefaultDBURL(dir), cfg.DBURL())
	assert.Equal(t, LogFormatJSON, cfg.LogFormat())
	assert.Equal(t, []string{"one", "two"}, cfg.APIKeys())
	assert.Equal(t, "secret", cfg.AuthSecret())
	assert.Equal(t, time.Minute, cfg.TokenTTL())
	assert.Equal(t, []string{"https://console.example.com"}, cfg.AllowedOrigins())
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadFromEnv()

	assert.Error(t, err)
}

func TestLoadFromEnvWithPrefix(t *testing.T) {
	t.Setenv("WOOLDANJI_PORT", "7000")

	env, err := LoadFromEnvWithPrefix("WOOLDANJI")
	require.NoError(t, err)

	assert.Equal(t, 7000, env.Port)
}

func TestParseLogFormat(t *testing.T) {
	assert.Equal(t, LogFormatJSON, ParseLogFormat("json"))
	assert.Equal(t, LogFormatJSON, ParseLogFormat(" JSON "))
	assert.Equal(t, LogFormatPretty, ParseLogFormat("pretty"))
	assert.Equal(t, LogFormatPretty, ParseLogFormat("other"))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WOOLDANJI_TEST_DOTENV=from-file\nWOOLDANJI_TEST_PRESET=from-file\n"), 0o600))
	t.Setenv("WOOLDANJI_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("WOOLDANJI_TEST_DOTENV"))
	t.Setenv("WOOLDANJI_TEST_PRESET", "from-env")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { _ = os.Unsetenv("WOOLDANJI_TEST_DOTENV") })

	assert.Equal(t, "from-file", os.Getenv("WOOLDANJI_TEST_DOTENV"))
	assert.Equal(t, "from-env", os.Getenv("WOOLDANJI_TEST_PRESET"))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HOST=127.0.0.1\n"), 0o600))
	t.Setenv("HOST", "")
	require.NoError(t, os.Unsetenv("HOST"))
	t.Cleanup(func() { _ = os.Unsetenv("HOST") })

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host())
}
