package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mark3labs/mcp-go/server"

	console "github.com/wooldanji/console"
	apimiddleware "github.com/wooldanji/console/infrastructure/api/middleware"
	v1 "github.com/wooldanji/console/infrastructure/api/v1"
	"github.com/wooldanji/console/infrastructure/api/v1/dto"
	mcpinternal "github.com/wooldanji/console/internal/mcp"
)

// RequestTimeout bounds every /api/v1 request.
const RequestTimeout = 60 * time.Second

// APIServer provides an HTTP API backed by a console Client.
type APIServer struct {
	client         *console.Client
	version        string
	allowedOrigins []string
	server         *Server
	router         chi.Router
	routerCalled   bool
	logger         *slog.Logger
}

// NewAPIServer creates a new APIServer wired to the given console Client.
// allowedOrigins configures CORS for /api/v1; an empty list allows any origin.
//
// Staff authenticate with a bearer token from POST /api/v1/auth/login. A
// configured API key in X-API-KEY acts as the system administrator. The
// /mcp endpoint accepts API keys only.
func NewAPIServer(client *console.Client, version string, allowedOrigins []string) *APIServer {
	origins := make([]string, len(allowedOrigins))
	copy(origins, allowedOrigins)
	return &APIServer{
		client:         client,
		version:        version,
		allowedOrigins: origins,
		logger:         client.Logger(),
	}
}

// Router returns the chi router for customization before starting.
// Call this first, add custom middleware with router.Use(), then call MountRoutes().
// If not called, ListenAndServe creates a default router with all standard routes.
func (a *APIServer) Router() chi.Router {
	if a.router != nil {
		return a.router
	}

	a.router = chi.NewRouter()
	a.routerCalled = true
	return a.router
}

// MountRoutes wires up all routes on the router.
// Call this after adding any custom middleware via Router().Use().
func (a *APIServer) MountRoutes() {
	if a.router == nil {
		a.Router()
	}
	a.mountRoutes(a.router)
}

func (a *APIServer) mountRoutes(router chi.Router) {
	c := a.client
	authConfig := apimiddleware.NewAuthConfigWithKeys(c.APIKeys())

	router.Group(func(r chi.Router) {
		r.Use(apimiddleware.CorrelationID)
		r.Use(apimiddleware.Logging(a.logger))

		r.Get("/health", a.health)
		r.Get("/healthz", a.health)

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(cors.Handler(a.corsOptions()))
			r.Use(chimiddleware.Timeout(RequestTimeout))
			r.Use(apimiddleware.Authenticate(authConfig, c.Staff, a.logger))

			r.Mount("/auth", v1.NewAuthRouter(c).Routes())
			r.Mount("/dashboard", v1.NewDashboardRouter(c).Routes())
			r.Mount("/apartments", v1.NewApartmentsRouter(c).Routes())
			r.Mount("/buildings", v1.NewBuildingsRouter(c).Routes())
			r.Mount("/lines", v1.NewLinesRouter(c).Routes())
			r.Mount("/devices", v1.NewDevicesRouter(c).Routes())
			r.Mount("/residents", v1.NewResidentsRouter(c).Routes())
			r.Mount("/inquiries", v1.NewInquiriesRouter(c).Routes())
			r.Mount("/home", v1.NewHomeRouter(c).Routes())
			r.Mount("/staff", v1.NewStaffRouter(c).Routes())
		})

		// MCP streams responses and keeps session state in headers, so it
		// must stay outside the Timeout middleware.
		r.Group(func(r chi.Router) {
			r.Use(apimiddleware.RequireAPIKey(authConfig, a.logger))
			mcpSrv := mcpinternal.NewServer(c.Lines, c.Records.Apartments, c.Records.Inquiries, a.version, a.logger)
			r.Mount("/mcp", server.NewStreamableHTTPServer(mcpSrv.MCPServer()))
		})
	})
}

func (a *APIServer) corsOptions() cors.Options {
	origins := a.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept", "Authorization", "Content-Type",
			apimiddleware.APIKeyHeader, apimiddleware.CorrelationIDHeader,
		},
		ExposedHeaders: []string{apimiddleware.CorrelationIDHeader},
		MaxAge:         300,
	}
}

func (a *APIServer) health(w http.ResponseWriter, _ *http.Request) {
	apimiddleware.WriteJSON(w, http.StatusOK, dto.HealthResponse{Status: "healthy", Version: a.version})
}

// ListenAndServe starts the HTTP server on the given address and blocks
// until it stops.
func (a *APIServer) ListenAndServe(addr string) error {
	srv := a.newServer(addr)
	return srv.Start()
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (a *APIServer) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := a.newServer(addr)
	return srv.Run(ctx, shutdownTimeout)
}

func (a *APIServer) newServer(addr string) *Server {
	srv := NewServer(addr, a.logger)
	a.server = &srv

	if a.routerCalled && a.router != nil {
		srv.Router().Mount("/", a.router)
	} else {
		a.mountRoutes(srv.Router())
	}
	return a.server
}

// Shutdown gracefully shuts down the server.
func (a *APIServer) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// Handler returns the router as an http.Handler for use with custom servers.
func (a *APIServer) Handler() http.Handler {
	if a.router == nil {
		a.Router()
		a.MountRoutes()
	}
	return a.router
}
