package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/infrastructure/api/jsonapi"
	"github.com/wooldanji/console/infrastructure/api/middleware"
	"github.com/wooldanji/console/infrastructure/api/v1/dto"
)

// DevicesRouter handles access device endpoints.
type DevicesRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewDevicesRouter creates a new DevicesRouter.
func NewDevicesRouter(client *console.Client) *DevicesRouter {
	return &DevicesRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for device endpoints.
func (r *DevicesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Patch("/{id}", r.Update)
	router.Delete("/{id}", r.Delete)

	return router
}

// List handles GET /api/v1/devices.
// Supports query parameters: apartment_id, building_id, page, page_size.
func (r *DevicesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	apartmentID, err := queryID(req, "apartment_id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	buildingID, err := queryID(req, "building_id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	filter := service.DeviceFilter{ApartmentID: apartmentID, BuildingID: buildingID}
	pagination := ParsePagination(req)

	options := append([]repository.Option{repository.WithOrderAsc("id")}, pagination.Options()...)
	devices, err := r.client.Devices.List(ctx, filter, options...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Devices.Count(ctx, filter)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, pagedResponse(req, pagination, r.serializer.DeviceResources(devices), total))
}

// Create handles POST /api/v1/devices.
func (r *DevicesRouter) Create(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.DeviceCreateAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	device, err := r.client.Devices.Create(req.Context(), service.DeviceParams{
		ApartmentID: attrs.ApartmentID,
		BuildingID:  attrs.BuildingID,
		LineID:      attrs.LineID,
		Name:        attrs.Name,
		Serial:      attrs.Serial,
		Kind:        attrs.Kind,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(r.serializer.DeviceResource(device)))
}

// Get handles GET /api/v1/devices/{id}.
func (r *DevicesRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	device, err := r.client.Devices.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.DeviceResource(device)))
}

// Update handles PATCH /api/v1/devices/{id}.
func (r *DevicesRouter) Update(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs, err := decodeAttributes[dto.DeviceUpdateAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	enabled := true
	if attrs.Enabled != nil {
		enabled = *attrs.Enabled
	}

	device, err := r.client.Devices.Update(req.Context(), id, service.DeviceUpdate{
		Name:    attrs.Name,
		Kind:    attrs.Kind,
		Enabled: enabled,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.DeviceResource(device)))
}

// Delete handles DELETE /api/v1/devices/{id}.
func (r *DevicesRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Devices.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
