package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/infrastructure/api/jsonapi"
	"github.com/wooldanji/console/infrastructure/api/middleware"
	"github.com/wooldanji/console/infrastructure/api/v1/dto"
)

// ApartmentsRouter handles apartment API endpoints.
type ApartmentsRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewApartmentsRouter creates a new ApartmentsRouter.
func NewApartmentsRouter(client *console.Client) *ApartmentsRouter {
	return &ApartmentsRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for apartment endpoints.
func (r *ApartmentsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Patch("/{id}", r.Update)
	router.Delete("/{id}", r.Delete)
	router.Get("/{id}/buildings", r.ListBuildings)
	router.Post("/{id}/buildings", r.CreateBuilding)

	return router
}

// List handles GET /api/v1/apartments.
// Supports query parameters: q (name, address or code contains), page, page_size.
func (r *ApartmentsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	search := strings.TrimSpace(req.URL.Query().Get("q"))
	pagination := ParsePagination(req)

	options := append([]repository.Option{repository.WithOrderAsc("name")}, pagination.Options()...)
	apartments, err := r.client.Apartments.List(ctx, search, options...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Apartments.Count(ctx, search)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, pagedResponse(req, pagination, r.serializer.ApartmentResources(apartments), total))
}

// Create handles POST /api/v1/apartments.
func (r *ApartmentsRouter) Create(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.ApartmentAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	apt, err := r.client.Apartments.Create(req.Context(), apartmentParams(attrs))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(r.serializer.ApartmentResource(apt)))
}

// Get handles GET /api/v1/apartments/{id}.
func (r *ApartmentsRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	apt, err := r.client.Apartments.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.ApartmentResource(apt)))
}

// Update handles PATCH /api/v1/apartments/{id}.
func (r *ApartmentsRouter) Update(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs, err := decodeAttributes[dto.ApartmentAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	apt, err := r.client.Apartments.Update(req.Context(), id, apartmentParams(attrs))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.ApartmentResource(apt)))
}

// Delete handles DELETE /api/v1/apartments/{id}.
func (r *ApartmentsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Apartments.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListBuildings handles GET /api/v1/apartments/{id}/buildings.
func (r *ApartmentsRouter) ListBuildings(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	buildings, err := r.client.Buildings.ListByApartment(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(r.serializer.BuildingResources(buildings)))
}

// CreateBuilding handles POST /api/v1/apartments/{id}/buildings.
func (r *ApartmentsRouter) CreateBuilding(w http.ResponseWriter, req *http.Request) {
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

	building, err := r.client.Buildings.Create(req.Context(), id, attrs.Name)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(r.serializer.BuildingResource(building)))
}

func apartmentParams(attrs dto.ApartmentAttributes) service.ApartmentParams {
	return service.ApartmentParams{
		Name:    attrs.Name,
		Address: attrs.Address,
		Code:    attrs.Code,
		Memo:    attrs.Memo,
	}
}
