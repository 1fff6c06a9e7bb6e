package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/infrastructure/api/jsonapi"
	"github.com/wooldanji/console/infrastructure/api/middleware"
)

// DashboardRouter serves the console overview counters.
type DashboardRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewDashboardRouter creates a new DashboardRouter.
func NewDashboardRouter(client *console.Client) *DashboardRouter {
	return &DashboardRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for dashboard endpoints.
func (r *DashboardRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.Get)
	return router
}

// Get handles GET /api/v1/dashboard.
func (r *DashboardRouter) Get(w http.ResponseWriter, req *http.Request) {
	summary, err := r.client.Dashboard.Summary(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resource := r.serializer.DashboardResource(jsonapi.DashboardAttributes{
		Apartments:       summary.Apartments,
		Devices:          summary.Devices,
		PendingResidents: summary.PendingResidents,
		OpenInquiries:    summary.OpenInquiries,
	})
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(resource))
}
