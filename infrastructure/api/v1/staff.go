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

// StaffRouter handles staff account administration.
type StaffRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewStaffRouter creates a new StaffRouter.
func NewStaffRouter(client *console.Client) *StaffRouter {
	return &StaffRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for staff endpoints.
func (r *StaffRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Delete("/{id}", r.Deactivate)
	router.Get("/{id}/apartments", r.Assignments)
	router.Put("/{id}/apartments", r.Assign)

	return router
}

// List handles GET /api/v1/staff.
func (r *StaffRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	pagination := ParsePagination(req)

	options := append([]repository.Option{repository.WithOrderAsc("email")}, pagination.Options()...)
	staff, err := r.client.Staff.List(ctx, options...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Staff.Count(ctx)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, pagedResponse(req, pagination, r.serializer.StaffResources(staff), total))
}

// Create handles POST /api/v1/staff.
func (r *StaffRouter) Create(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.StaffCreateAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	st, err := r.client.Staff.Create(req.Context(), service.StaffParams{
		Email:    attrs.Email,
		Name:     attrs.Name,
		Password: attrs.Password,
		Role:     attrs.Role,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(r.serializer.StaffResource(st, nil)))
}

// Get handles GET /api/v1/staff/{id}. The response includes the apartment
// assignments.
func (r *StaffRouter) Get(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	st, err := r.client.Staff.Get(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	assigned, err := r.client.Staff.Assignments(ctx, id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.StaffResource(st, assigned)))
}

// Deactivate handles DELETE /api/v1/staff/{id}. Accounts are deactivated,
// never removed.
func (r *StaffRouter) Deactivate(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	st, err := r.client.Staff.Deactivate(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.StaffResource(st, nil)))
}

// Assignments handles GET /api/v1/staff/{id}/apartments.
func (r *StaffRouter) Assignments(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	ids, err := r.client.Staff.Assignments(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, assignmentResponse(ids))
}

// Assign handles PUT /api/v1/staff/{id}/apartments. The given list replaces
// the current assignments.
func (r *StaffRouter) Assign(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs, err := decodeAttributes[dto.AssignmentAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	ids, err := r.client.Staff.Assign(req.Context(), id, attrs.ApartmentIDs)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, assignmentResponse(ids))
}

func assignmentResponse(ids []int64) dto.AssignmentResponse {
	if ids == nil {
		ids = []int64{}
	}
	return dto.AssignmentResponse{Data: dto.AssignmentAttributes{ApartmentIDs: ids}}
}
