package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.wooldanji
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/wooldanji.db
	DBURL string `envconfig:"DB_URL"`

	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of keys accepted in X-API-KEY.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// AuthSecret signs staff tokens.
	// Env: AUTH_SECRET
	AuthSecret string `envconfig:"AUTH_SECRET"`

	// Env: AUTH_TOKEN_TTL_SECONDS (default: 43200)
	AuthTokenTTLSeconds int `envconfig:"AUTH_TOKEN_TTL_SECONDS" default:"43200"`

	// CORSAllowedOrigins is a comma-separated list of browser origins.
	// Env: CORS_ALLOWED_ORIGINS (default: *)
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix("")
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "WOOLDANJI" would require WOOLDANJI_PORT instead of PORT.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = cfg.Apply(WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = cfg.Apply(WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = cfg.Apply(WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = cfg.Apply(WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = cfg.Apply(WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = cfg.Apply(WithLogFormat(ParseLogFormat(e.LogFormat)))
	}
	if e.APIKeys != "" {
		cfg = cfg.Apply(WithAPIKeys(ParseList(e.APIKeys)))
	}
	if e.AuthSecret != "" {
		cfg = cfg.Apply(WithAuthSecret(e.AuthSecret))
	}
	cfg = cfg.Apply(WithTokenTTL(time.Duration(e.AuthTokenTTLSeconds) * time.Second))
	if origins := ParseList(e.CORSAllowedOrigins); len(origins) > 0 {
		cfg = cfg.Apply(WithAllowedOrigins(origins))
	}

	return cfg
}

// ParseLogFormat parses a log format string. Anything but "json" is pretty.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
