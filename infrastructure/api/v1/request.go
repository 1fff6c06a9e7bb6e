// Package v1 implements the /api/v1 routes of the console API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wooldanji/console/infrastructure/api/v1/dto"
	"github.com/wooldanji/console/internal/domain"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// urlID parses a numeric chi URL parameter.
func urlID(req *http.Request, name string) (int64, error) {
	raw := chi.URLParam(req, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return id, nil
}

// queryID parses an optional numeric query parameter; absent means zero.
func queryID(req *http.Request, name string) (int64, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return id, nil
}

// queryBool parses an optional boolean query parameter; absent means false.
func queryBool(req *http.Request, name string) (bool, error) {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return v, nil
}

// decodeAttributes reads a JSON:API request document and returns its
// attributes.
func decodeAttributes[T any](w http.ResponseWriter, req *http.Request) (T, error) {
	var body dto.Request[T]
	decoder := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxBodyBytes))
	if err := decoder.Decode(&body); err != nil {
		var zero T
		if errors.Is(err, io.EOF) {
			return zero, fmt.Errorf("%w: request body is empty", domain.ErrValidation)
		}
		return zero, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
	}
	return body.Data.Attributes, nil
}
