package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wooldanji/console/internal/database"
	"github.com/wooldanji/console/internal/domain"
)

// Base API errors as sentinels.
var (
	// ErrAuthentication indicates authentication failure.
	ErrAuthentication = errors.New("authentication failed")

	// ErrServer indicates the server returned an error response.
	ErrServer = errors.New("server error")
)

// APIError represents a structured API error with an explicit status code.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{
		code:    code,
		message: message,
		cause:   cause,
	}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.cause
}

// Code returns the error code.
func (e *APIError) Code() int {
	return e.code
}

// Message returns the error message.
func (e *APIError) Message() string {
	return e.message
}

// AuthenticationError represents an authentication failure.
type AuthenticationError struct {
	message string
}

// NewAuthenticationError creates a new AuthenticationError.
func NewAuthenticationError(message string) *AuthenticationError {
	return &AuthenticationError{message: message}
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.message)
}

// Unwrap returns the base authentication error for errors.Is compatibility.
func (e *AuthenticationError) Unwrap() error {
	return ErrAuthentication
}

// ServerError represents a server-side error with a status code.
type ServerError struct {
	statusCode int
	message    string
}

// NewServerError creates a new ServerError.
func NewServerError(statusCode int, message string) *ServerError {
	return &ServerError{
		statusCode: statusCode,
		message:    message,
	}
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.statusCode, e.message)
}

// Unwrap returns the base server error for errors.Is compatibility.
func (e *ServerError) Unwrap() error {
	return ErrServer
}

// StatusCode returns the HTTP status code.
func (e *ServerError) StatusCode() int {
	return e.statusCode
}

// Message returns the error message.
func (e *ServerError) Message() string {
	return e.message
}

// JSONAPIError represents a JSON:API error object.
type JSONAPIError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// JSONAPIErrorResponse represents a JSON:API error response wrapper.
type JSONAPIErrorResponse struct {
	Errors []JSONAPIError `json:"errors"`
}

// StatusFor maps an error to its HTTP status code and title.
func StatusFor(err error) (int, string) {
	var apiErr *APIError
	var serverErr *ServerError

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Code(), http.StatusText(apiErr.Code())
	case errors.As(err, &serverErr):
		return serverErr.StatusCode(), "Server Error"
	case errors.Is(err, ErrAuthentication), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "Validation Error"
	case errors.Is(err, domain.ErrConflict), errors.Is(err, database.ErrDuplicate):
		return http.StatusConflict, "Conflict"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// WriteError writes a JSON:API formatted error response.
// Internal errors are logged with their cause and reported without detail.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, title := StatusFor(err)
	detail := err.Error()

	var apiErr *APIError
	var serverErr *ServerError
	switch {
	case errors.As(err, &apiErr):
		detail = apiErr.Message()
	case errors.As(err, &serverErr):
		detail = serverErr.Message()
	case status == http.StatusInternalServerError:
		detail = "an internal error occurred"
	}

	correlationID := GetCorrelationID(r.Context())

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request error",
			"correlation_id", correlationID,
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	resp := JSONAPIErrorResponse{
		Errors: []JSONAPIError{
			{
				Status: fmt.Sprintf("%d", status),
				Title:  title,
				Detail: detail,
				ID:     correlationID,
			},
		},
	}

	w.Header().Set("Content-Type", "application/vnd.api+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
