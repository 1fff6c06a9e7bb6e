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

// LinesRouter handles individual line groups and the parse preview.
type LinesRouter struct {
	client     *console.Client
	logger     *slog.Logger
	serializer *jsonapi.Serializer
}

// NewLinesRouter creates a new LinesRouter.
func NewLinesRouter(client *console.Client) *LinesRouter {
	return &LinesRouter{
		client:     client,
		logger:     client.Logger(),
		serializer: jsonapi.NewSerializer(),
	}
}

// Routes returns the chi router for line endpoints.
func (r *LinesRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/preview", r.Preview)
	router.Get("/{id}", r.Get)
	router.Put("/{id}", r.Replace)
	router.Delete("/{id}", r.Delete)

	return router
}

// Preview handles GET /api/v1/lines/preview?text=1~2,3~4. Nothing is stored.
func (r *LinesRouter) Preview(w http.ResponseWriter, req *http.Request) {
	text := req.URL.Query().Get("text")
	preview := r.client.Lines.Preview(text)

	attrs := jsonapi.PreviewAttributes{
		Text:     text,
		Groups:   preview.Groups,
		Labels:   preview.Labels,
		Rejected: preview.Rejected,
		Set:      preview.Set,
	}
	if attrs.Groups == nil {
		attrs.Groups = [][]int{}
	}
	if attrs.Rejected == nil {
		attrs.Rejected = []string{}
	}
	if attrs.Set == nil {
		attrs.Set = []int{}
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.PreviewResource(attrs)))
}

// Get handles GET /api/v1/lines/{id}.
func (r *LinesRouter) Get(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	l, err := r.client.Lines.Get(req.Context(), id)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.LineResource(l)))
}

// Replace handles PUT /api/v1/lines/{id}. The text is read as one merged set.
func (r *LinesRouter) Replace(w http.ResponseWriter, req *http.Request) {
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

	l, err := r.client.Lines.Replace(req.Context(), id, attrs.Text)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(r.serializer.LineResource(l)))
}

// Delete handles DELETE /api/v1/lines/{id}.
func (r *LinesRouter) Delete(w http.ResponseWriter, req *http.Request) {
	id, err := urlID(req, "id")
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	if err := r.client.Lines.Delete(req.Context(), id); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
