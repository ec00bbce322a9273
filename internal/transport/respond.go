package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
	"github.com/rpggio/docugen/internal/generation"
	"github.com/rpggio/docugen/internal/repository"
)

var (
	// errInvalidID is returned for a path id that is not a positive integer.
	errInvalidID = errors.New("invalid id")
	// errPayloadTooLarge is returned when a request body exceeds its limit.
	errPayloadTooLarge = errors.New("payload too large")
)

type errorBody struct {
	Error string `json:"error"`
}

type statusBody struct {
	Status string `json:"status"`
}

// statusFor maps a domain error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, version.ErrVersionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errInvalidID),
		errors.Is(err, project.ErrInvalidPayload),
		errors.Is(err, version.ErrInvalidInput),
		errors.Is(err, rule.ErrInvalidInput),
		errors.Is(err, generation.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
