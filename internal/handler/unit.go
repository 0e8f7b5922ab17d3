package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/evanhooper/trolley/internal/apperr"
	"github.com/evanhooper/trolley/internal/model"
)

// UnitStore is the slice of the unit store used by UnitHandler.
type UnitStore interface {
	List(ctx context.Context) ([]model.Unit, error)
}

type UnitHandler struct {
	units  UnitStore
	logger *slog.Logger
}

func NewUnitHandler(units UnitStore, logger *slog.Logger) *UnitHandler {
	return &UnitHandler{units: units, logger: logger}
}

func (h *UnitHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.units.List(r.Context())
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to list units", err))
		return
	}
	if units == nil {
		units = []model.Unit{}
	}
	writeJSON(w, http.StatusOK, units)
}
