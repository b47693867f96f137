package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"gastos/internal/core"
	"gastos/internal/middleware/trace"
	"gastos/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps service errors onto HTTP statuses: the not-found
// sentinel becomes 404, validation sentinels become 422, the rest 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "expense not found")
	case isValidationError(err):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", trace.GetRequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrEmptyTitle,
		core.ErrTitleTooLong,
		core.ErrInvalidAmount,
		core.ErrInvalidDate,
		core.ErrUnknownCategory,
		core.ErrInvalidPeriod,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
