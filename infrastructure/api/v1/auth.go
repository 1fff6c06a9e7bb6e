package v1

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/domain/access"
	"github.com/wooldanji/console/infrastructure/api/jsonapi"
	"github.com/wooldanji/console/infrastructure/api/middleware"
	"github.com/wooldanji/console/infrastructure/api/v1/dto"
)

// AuthRouter handles staff login and session endpoints.
type AuthRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewAuthRouter creates a new AuthRouter.
func NewAuthRouter(client *console.Client) *AuthRouter {
	return &AuthRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for auth endpoints.
func (r *AuthRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", r.Login)
	router.Get("/me", r.Me)

	return router
}

// Login handles POST /api/v1/auth/login. It returns a session resource
// carrying the signed bearer token.
func (r *AuthRouter) Login(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	attrs, err := decodeAttributes[dto.LoginAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	token, _, err := r.client.Staff.Login(ctx, attrs.Email, attrs.Password)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	principal, err := r.client.Staff.Authenticate(ctx, token.Value)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resource := r.serializer.SessionResource(principal, token.Value, token.ExpiresAt)
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(resource))
}

// Me handles GET /api/v1/auth/me.
func (r *AuthRouter) Me(w http.ResponseWriter, req *http.Request) {
	principal, err := access.MustFromContext(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resource := r.serializer.SessionResource(principal, "", time.Time{})
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(resource))
}
