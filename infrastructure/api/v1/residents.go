package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/account"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/infrastructure/api/jsonapi"
	"github.com/wooldanji/console/infrastructure/api/middleware"
	"github.com/wooldanji/console/infrastructure/api/v1/dto"
)

// ResidentsRouter handles resident sign-up review endpoints.
type ResidentsRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewResidentsRouter creates a new ResidentsRouter.
func NewResidentsRouter(client *console.Client) *ResidentsRouter {
	return &ResidentsRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for resident endpoints.
func (r *ResidentsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Post("/{id}/approve", r.Approve)
	router.Post("/{id}/reject", r.Reject)
	router.Post("/{id}/reconfirm", r.Reconfirm)

	return router
}

// List handles GET /api/v1/residents.
// Supports query parameters: status, apartment_id, page, page_size.
func (r *ResidentsRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var filter service.ResidentFilter
	if raw := req.URL.Query().Get("status"); raw != "" {
		status, err := account.ParseStatus(raw)
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
		filter.Status = status
	}
	apartmentID, err := queryID(req, "apartment_id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	filter.ApartmentID = apartmentID
	pagination := ParsePagination(req)

	options := append([]repository.Option{
		repository.WithOrderDesc("created_at"),
		repository.WithOrderDesc("id"),
	}, pagination.Options()...)
	residents, err := r.client.Residents.List(ctx, filter, options...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Residents.Count(ctx, filter)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, pagedResponse(req, pagination, r.serializer.ResidentResources(residents), total))
}

// Create handles POST /api/v1/residents.
func (r *ResidentsRouter) Create(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.ResidentCreateAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resident, err := r.client.Residents.Create(req.Context(), service.ResidentParams{
		Name:        attrs.Name,
		Phone:       attrs.Phone,
		ApartmentID: attrs.ApartmentID,
		BuildingID:  attrs.BuildingID,
		Unit:        attrs.Unit,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(r.serializer.ResidentResource(resident)))
}

// Get handles GET /api/v1/residents/{id}.
func (r *ResidentsRouter) Get(w http.ResponseWriter, req *http.Request) {
	r.review(w, req, r.client.Residents.Get)
}

// Approve handles POST /api/v1/residents/{id}/approve.
func (r *ResidentsRouter) Approve(w http.ResponseWriter, req *http.Request) {
	r.review(w, req, r.client.Residents.Approve)
}

// Reconfirm handles POST /api/v1/residents/{id}/reconfirm.
func (r *ResidentsRouter) Reconfirm(w http.ResponseWriter, req *http.Request) {
	r.review(w, req, r.client.Residents.RequestReconfirm)
}

// Reject handles POST /api/v1/residents/{id}/reject. A reason is required.
func (r *ResidentsRouter) Reject(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.RejectAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	r.review(w, req, func(ctx context.Context, id int64) (account.Resident, error) {
		return r.client.Residents.Reject(ctx, id, attrs.Reason)
	})
}

func (r *ResidentsRouter) review(w http.ResponseWriter, req *http.Request, fn func(context.Context, int64) (account.Resident, error)) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resident, err := fn(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.ResidentResource(resident)))
}
