package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/evanhooper/trolley/internal/apperr"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its transport status. This is the only place
// apperr kinds are translated to HTTP codes.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Internal("unexpected error", err)
	}

	switch e.Kind {
	case apperr.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: e.Message, Fields: e.Fields})
	case apperr.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: e.Message})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: e.Message})
	}
}

// parseIDParam reads a numeric path value. Non-numeric identifiers are
// rejected before any storage access.
func parseIDParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(r.PathValue(name), 10, 64)
}
