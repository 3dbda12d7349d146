package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"log/slog"

	"github.com/skillsphere/backend/pkg/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

// writeError maps the service error taxonomy onto HTTP statuses. Client
// errors carry the full message; server-side failures return only the
// category so internals never leak to the caller.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		writeJSON(w, errorResponse{Error: err.Error()}, http.StatusBadRequest)
	case errors.Is(err, apperr.ErrForbidden):
		writeJSON(w, errorResponse{Error: apperr.ErrForbidden.Error()}, http.StatusForbidden)
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, errorResponse{Error: apperr.ErrNotFound.Error()}, http.StatusNotFound)
	case errors.Is(err, apperr.ErrGateway):
		logger.Error("gateway failure", slog.Any("err", err))
		writeJSON(w, errorResponse{Error: apperr.ErrGateway.Error()}, http.StatusBadGateway)
	case errors.Is(err, apperr.ErrValidation):
		logger.Error("model response rejected", slog.Any("err", err))
		writeJSON(w, errorResponse{Error: apperr.ErrValidation.Error()}, http.StatusBadGateway)
	case errors.Is(err, apperr.ErrStorage):
		logger.Error("storage failure", slog.Any("err", err))
		writeJSON(w, errorResponse{Error: apperr.ErrStorage.Error()}, http.StatusInternalServerError)
	default:
		logger.Error("unexpected error", slog.Any("err", err))
		writeJSON(w, errorResponse{Error: "internal error"}, http.StatusInternalServerError)
	}
}
