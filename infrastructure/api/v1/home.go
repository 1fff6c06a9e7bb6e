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

// HomeRouter handles resident app home screen content: the header text,
// notices and dialog messages.
type HomeRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewHomeRouter creates a new HomeRouter.
func NewHomeRouter(client *console.Client) *HomeRouter {
	return &HomeRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for home screen endpoints.
func (r *HomeRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/header", r.GetHeader)
	router.Put("/header", r.PutHeader)

	router.Get("/notices", r.ListNotices)
	router.Post("/notices", r.CreateNotice)
	router.Patch("/notices/{id}", r.UpdateNotice)
	router.Delete("/notices/{id}", r.DeleteNotice)

	router.Get("/dialogs", r.ListDialogs)
	router.Get("/dialogs/{key}", r.GetDialog)
	router.Put("/dialogs/{key}", r.PutDialog)
	router.Delete("/dialogs/{key}", r.DeleteDialog)

	return router
}

// GetHeader handles GET /api/v1/home/header?apartment_id=. Without an
// apartment the global header is returned.
func (r *HomeRouter) GetHeader(w http.ResponseWriter, req *http.Request) {
	apartmentID, err := queryID(req, "apartment_id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	header, err := r.client.Home.Header(req.Context(), apartmentID)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.HeaderResource(header)))
}

// PutHeader handles PUT /api/v1/home/header.
func (r *HomeRouter) PutHeader(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.HeaderAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	header, err := r.client.Home.SetHeader(req.Context(), attrs.ApartmentID, attrs.Text)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.HeaderResource(header)))
}

// ListNotices handles GET /api/v1/home/notices.
// Supports query parameters: apartment_id, global, published, page, page_size.
func (r *HomeRouter) ListNotices(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	apartmentID, err := queryID(req, "apartment_id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	globalOnly, err := queryBool(req, "global")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	publishedOnly, err := queryBool(req, "published")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	filter := service.NoticeFilter{
		ApartmentID:   apartmentID,
		GlobalOnly:    globalOnly,
		PublishedOnly: publishedOnly,
	}
	pagination := ParsePagination(req)

	options := append([]repository.Option{
		repository.WithOrderDesc("pinned"),
		repository.WithOrderDesc("created_at"),
		repository.WithOrderDesc("id"),
	}, pagination.Options()...)
	notices, err := r.client.Home.Notices(ctx, filter, options...)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	total, err := r.client.Home.CountNotices(ctx, filter)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, pagedResponse(req, pagination, r.serializer.NoticeResources(notices), total))
}

// CreateNotice handles POST /api/v1/home/notices.
func (r *HomeRouter) CreateNotice(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.NoticeAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	notice, err := r.client.Home.CreateNotice(req.Context(), noticeParams(attrs))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(r.serializer.NoticeResource(notice)))
}

// UpdateNotice handles PATCH /api/v1/home/notices/{id}. The apartment of a
// notice cannot change.
func (r *HomeRouter) UpdateNotice(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	attrs, err := decodeAttributes[dto.NoticeAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	notice, err := r.client.Home.UpdateNotice(req.Context(), id, noticeParams(attrs))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.NoticeResource(notice)))
}

// DeleteNotice handles DELETE /api/v1/home/notices/{id}.
func (r *HomeRouter) DeleteNotice(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Home.DeleteNotice(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListDialogs handles GET /api/v1/home/dialogs.
func (r *HomeRouter) ListDialogs(w http.ResponseWriter, req *http.Request) {
	dialogs, err := r.client.Home.Dialogs(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(r.serializer.DialogResources(dialogs)))
}

// GetDialog handles GET /api/v1/home/dialogs/{key}.
func (r *HomeRouter) GetDialog(w http.ResponseWriter, req *http.Request) {
	dialog, err := r.client.Home.Dialog(req.Context(), chi.URLParam(req, "key"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.DialogResource(dialog)))
}

// PutDialog handles PUT /api/v1/home/dialogs/{key}.
func (r *HomeRouter) PutDialog(w http.ResponseWriter, req *http.Request) {
	attrs, err := decodeAttributes[dto.DialogAttributes](w, req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	dialog, err := r.client.Home.PutDialog(req.Context(), service.DialogParams{
		Key:     chi.URLParam(req, "key"),
		Title:   attrs.Title,
		Message: attrs.Message,
		Active:  attrs.Active,
	})
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.DialogResource(dialog)))
}

// DeleteDialog handles DELETE /api/v1/home/dialogs/{key}.
func (r *HomeRouter) DeleteDialog(w http.ResponseWriter, req *http.Request) {
	if err := r.client.Home.DeleteDialog(req.Context(), chi.URLParam(req, "key")); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func noticeParams(attrs dto.NoticeAttributes) service.NoticeParams {
	return service.NoticeParams{
		ApartmentID: attrs.ApartmentID,
		Title:       attrs.Title,
		Body:        attrs.Body,
		Published:   attrs.Published,
		Pinned:      attrs.Pinned,
	}
}
