package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/evanhooper/trolley/internal/apperr"
	"github.com/evanhooper/trolley/internal/model"
)

// StatsService computes the derived statistics views.
type StatsService interface {
	Monthly(ctx context.Context, month string) ([]model.ListStatistics, error)
	ForList(ctx context.Context, id int64) (*model.ListStatistics, error)
}

type StatsHandler struct {
	stats  StatsService
	logger *slog.Logger
}

func NewStatsHandler(stats StatsService, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{stats: stats, logger: logger}
}

func (h *StatsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, h.logger, apperr.Validation("month query parameter is required"))
		return
	}

	results, err := h.stats.Monthly(r.Context(), month)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (h *StatsHandler) ForList(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid id"))
		return
	}

	stat, err := h.stats.ForList(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}
