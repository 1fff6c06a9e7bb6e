package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, DefaultDBURL(cfg.DataDir()), cfg.DBURL())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, DefaultTokenTTL, cfg.TokenTTL())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.Empty(t, cfg.APIKeys())
}

func TestWithDataDir_MovesDefaultDBURL(t *testing.T) {
	dir := t.TempDir()

	cfg := NewAppConfigWithOptions(WithDataDir(dir))

	assert.Equal(t, "sqlite:///"+filepath.Join(dir, DefaultDBFile), cfg.DBURL())
}

func TestWithDataDir_KeepsExplicitDBURL(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithDBURL("postgres://user:pass@db/wooldanji"),
		WithDataDir(t.TempDir()),
	)

	assert.Equal(t, "postgres://user:pass@db/wooldanji", cfg.DBURL())
}

func TestApply_DoesNotMutateReceiver(t *testing.T) {
	base := NewAppConfig()

	changed := base.Apply(WithPort(9090), WithAPIKeys([]string{"k1"}))

	assert.Equal(t, DefaultPort, base.Port())
	assert.Empty(t, base.APIKeys())
	assert.Equal(t, 9090, changed.Port())
	assert.Equal(t, []string{"k1"}, changed.APIKeys())
}

func TestAPIKeys_ReturnsCopy(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithAPIKeys([]string{"k1"}))

	keys := cfg.APIKeys()
	keys[0] = "changed"

	assert.Equal(t, []string{"k1"}, cfg.APIKeys())
}

func TestWithTokenTTL_IgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultTokenTTL, NewAppConfigWithOptions(WithTokenTTL(0)).TokenTTL())
	assert.Equal(t, time.Minute, NewAppConfigWithOptions(WithTokenTTL(time.Minute)).TokenTTL())
}

func TestLogAttrs_MasksSecrets(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithDBURL("postgres://user:pass@db/wooldanji"),
		WithAuthSecret("s3cret"),
		WithAPIKeys([]string{"a", "b"}),
	)

	values := map[string]string{}
	for _, attr := range cfg.LogAttrs() {
		values[attr.Key] = attr.Value.String()
	}

	assert.Equal(t, "postgres://***@***", values["db_url"])
	assert.Equal(t, "true", values["auth_secret_set"])
	assert.Equal(t, "2", values["api_keys_count"])
	for _, v := range values {
		assert.NotContains(t, v, "s3cret")
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{" , a,,", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseList(tt.input))
		})
	}
}
