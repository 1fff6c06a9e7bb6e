package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/infrastructure/api/jsonapi"
	"github.com/wooldanji/console/infrastructure/api/middleware"
	"github.com/wooldanji/console/infrastructure/api/v1/dto"
)

// BuildingsRouter handles building and building-line endpoints.
type BuildingsRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewBuildingsRouter creates a new BuildingsRouter.
func NewBuildingsRouter(client *console.Client) *BuildingsRouter {
	return &BuildingsRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for building endpoints.
func (r *BuildingsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", r.Get)
	router.Patch("/{id}", r.Rename)
	router.Delete("/{id}", r.Delete)
	router.Get("/{id}/lines", r.ListLines)
	router.Post("/{id}/lines", r.AddLines)

	return router
}

// Get handles GET /api/v1/buildings/{id}.
func (r *BuildingsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	building, err := r.client.Buildings.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.BuildingResource(building)))
}

// Rename handles PATCH /api/v1/buildings/{id}.
func (r *BuildingsRouter) Rename(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs, err := decodeAttributes[dto.BuildingAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	building, err := r.client.Buildings.Rename(req.Context(), id, attrs.Name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.BuildingResource(building)))
}

// Delete handles DELETE /api/v1/buildings/{id}.
func (r *BuildingsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Buildings.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListLines handles GET /api/v1/buildings/{id}/lines.
func (r *BuildingsRouter) ListLines(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	lines, err := r.client.Lines.ListByBuilding(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(r.serializer.LineResources(lines)))
}

// AddLines handles POST /api/v1/buildings/{id}/lines. Every comma-separated
// token of the text becomes its own line group; tokens that do not parse are
// listed in meta.rejected.
func (r *BuildingsRouter) AddLines(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs, err := decodeAttributes[dto.LineTextAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	result, err := r.client.Lines.Add(req.Context(), id, attrs.Text)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	rejected := result.Rejected
	if rejected == nil {
		rejected = []string{}
	}
	middleware.WriteJSON(w, http.StatusCreated, dto.LineAddResponse{
		Data: r.serializer.LineResources(result.Lines),
		Meta: dto.LineAddMeta{Rejected: rejected},
	})
}
