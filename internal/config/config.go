// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultLogLevel       = "INFO"
	DefaultTokenTTL       = 12 * time.Hour
	DefaultRequestTimeout = 60 * time.Second
	DefaultDataSubdir     = ".wooldanji"
	DefaultDBFile         = "wooldanji.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the console configuration. It is immutable; use Apply to
// derive a modified copy.
type AppConfig struct {
	host           string
	port           int
	dataDir        string
	dbURL          string
	logLevel       string
	logFormat      LogFormat
	apiKeys        []string
	authSecret     string
	tokenTTL       time.Duration
	allowedOrigins []string
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataSubdir
	}
	return filepath.Join(home, DefaultDataSubdir)
}

// DefaultDBURL returns the SQLite URL inside dataDir.
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBFile)
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:           DefaultHost,
		port:           DefaultPort,
		dataDir:        dataDir,
		dbURL:          DefaultDBURL(dataDir),
		logLevel:       DefaultLogLevel,
		logFormat:      LogFormatPretty,
		apiKeys:        []string{},
		tokenTTL:       DefaultTokenTTL,
		allowedOrigins: []string{"*"},
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level name.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns a copy of the configured API keys.
func (c AppConfig) APIKeys() []string {
	keys := make([]string, len(c.apiKeys))
	copy(keys, c.apiKeys)
	return keys
}

// AuthSecret returns the token signing secret.
func (c AppConfig) AuthSecret() string { return c.authSecret }

// TokenTTL returns how long issued staff tokens stay valid.
func (c AppConfig) TokenTTL() time.Duration { return c.tokenTTL }

// AllowedOrigins returns a copy of the CORS origins.
func (c AppConfig) AllowedOrigins() []string {
	origins := make([]string, len(c.allowedOrigins))
	copy(origins, c.allowedOrigins)
	return origins
}

// EnsureDataDir creates the data directory if it does not exist.
func (c AppConfig) EnsureDataDir() error {
	_, err := PrepareDataDir(c.dataDir)
	return err
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the bind host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the listen port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory. A database URL still pointing at the
// previous default moves along with it.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		if c.dbURL == DefaultDBURL(c.dataDir) {
			c.dbURL = DefaultDBURL(dir)
		}
		c.dataDir = dir
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithAuthSecret sets the token signing secret.
func WithAuthSecret(secret string) AppConfigOption {
	return func(c *AppConfig) { c.authSecret = secret }
}

// WithTokenTTL sets the token lifetime. Non-positive values are ignored.
func WithTokenTTL(ttl time.Duration) AppConfigOption {
	return func(c *AppConfig) {
		if ttl > 0 {
			c.tokenTTL = ttl
		}
	}
}

// WithAllowedOrigins sets the CORS origins.
func WithAllowedOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		c.allowedOrigins = make([]string, len(origins))
		copy(c.allowedOrigins, origins)
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Secrets are shown as counts or flags.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.Int("api_keys_count", len(c.apiKeys)),
		slog.Bool("auth_secret_set", c.authSecret != ""),
		slog.Duration("token_ttl", c.tokenTTL),
		slog.String("cors_origins", strings.Join(c.allowedOrigins, ",")),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseList parses a comma-separated list, dropping blank entries.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
