package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/application/service"
	"github.com/wooldanji/console/domain/inquiry"
	"github.com/wooldanji/console/domain/repository"
	"github.com/wooldanji/console/infrastructure/api/jsonapi"
	"github.com/wooldanji/console/infrastructure/api/middleware"
	"github.com/wooldanji/console/infrastructure/api/v1/dto"
)

// InquiriesRouter handles resident inquiry endpoints.
type InquiriesRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewInquiriesRouter creates a new InquiriesRouter.
func NewInquiriesRouter(client *console.Client) *InquiriesRouter {
	return &InquiriesRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for inquiry endpoints.
func (r *InquiriesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Post("/", r.Create)
	router.Get("/{id}", r.Get)
	router.Post("/{id}/answer", r.Answer)
	router.Post("/{id}/close", r.Close)

	return router
}

// List handles GET /api/v1/inquiries.
// Supports query parameters: status, apartment_id, page, page_size.
func (r *InquiriesRouter) List(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var filter service.InquiryFilter
	if raw := req.URL.Query().Get("status"); raw != "" {
		status, err := inquiry.ParseStatus(raw)
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
	inquiries, err := r.client.Inquiries.List(ctx, filter, options...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Inquiries.Count(ctx, filter)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, pagedResponse(req, pagination, r.serializer.InquiryResources(inquiries), total))
}

// Create handles POST /api/v1/inquiries.
func (r *InquiriesRouter) Create(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.InquiryCreateAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	created, err := r.client.Inquiries.Create(req.Context(), service.InquiryParams{
		ResidentID: attrs.ResidentID,
		Title:      attrs.Title,
		Content:    attrs.Content,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(r.serializer.InquiryResource(created)))
}

// Get handles GET /api/v1/inquiries/{id}.
func (r *InquiriesRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	found, err := r.client.Inquiries.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.InquiryResource(found)))
}

// Answer handles POST /api/v1/inquiries/{id}/answer.
func (r *InquiriesRouter) Answer(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs, err := decodeAttributes[dto.AnswerAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	answered, err := r.client.Inquiries.Answer(req.Context(), id, attrs.Answer)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.InquiryResource(answered)))
}

// Close handles POST /api/v1/inquiries/{id}/close.
func (r *InquiriesRouter) Close(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	closed, err := r.client.Inquiries.Close(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.InquiryResource(closed)))
}
