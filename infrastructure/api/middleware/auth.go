package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/internal/log"
)

// APIKeyHeader carries a service API key.
const APIKeyHeader = "X-API-KEY"

// Authenticator resolves a bearer token to a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (access.Principal, error)
}

// AuthConfig holds the accepted API keys.
type AuthConfig struct {
	apiKeys []string
}

// NewAuthConfigWithKeys creates an AuthConfig. Empty keys are ignored.
func NewAuthConfigWithKeys(apiKeys []string) AuthConfig {
	keys := make([]string, 0, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys = append(keys, k)
		}
	}
	return AuthConfig{apiKeys: keys}
}

// Enabled returns true if at least one API key is configured.
func (c AuthConfig) Enabled() bool { return len(c.apiKeys) > 0 }

// Valid reports whether key matches a configured API key.
func (c AuthConfig) Valid(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range c.apiKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(key)) == 1 {
			return true
		}
	}
	return false
}

// Authenticate resolves the caller and stores the principal in the request
// context. A valid X-API-KEY yields the system principal; a Bearer token is
// checked by authenticator. Requests carrying neither pass through
// anonymously and are refused by the services that need a principal.
func Authenticate(config AuthConfig, authenticator Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if key := r.Header.Get(APIKeyHeader); key != "" {
				if !config.Valid(key) {
					WriteError(w, r, NewAuthenticationError("invalid API key"), logger)
					return
				}
				ctx = access.WithPrincipal(ctx, access.System())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(header)
			if !ok {
				WriteError(w, r, NewAuthenticationError("authorization header must use the Bearer scheme"), logger)
				return
			}

			principal, err := authenticator.Authenticate(ctx, token)
			if err != nil {
				WriteError(w, r, err, logger)
				return
			}

			ctx = access.WithPrincipal(ctx, principal)
			ctx = log.WithStaffID(ctx, principal.StaffID())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAPIKey refuses requests without a valid X-API-KEY and marks the
// rest as the system principal. With no keys configured every request is
// refused.
func RequireAPIKey(config AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() {
				WriteError(w, r, NewAuthenticationError("no API keys are configured"), logger)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			if key == "" {
				WriteError(w, r, NewAuthenticationError("X-API-KEY header is required"), logger)
				return
			}
			if !config.Valid(key) {
				WriteError(w, r, NewAuthenticationError("invalid API key"), logger)
				return
			}

			ctx := access.WithPrincipal(r.Context(), access.System())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
