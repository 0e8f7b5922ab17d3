package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evanhooper/trolley/internal/apperr"
	"github.com/evanhooper/trolley/internal/model"
	ws "github.com/evanhooper/trolley/internal/websocket"
)

// CategoryStore is the slice of the category store used by CategoryHandler.
type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	NameExists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name, iconName string) (*model.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryHandler struct {
	categories CategoryStore
	hub        Broadcaster
	logger     *slog.Logger
}

func NewCategoryHandler(categories CategoryStore, hub Broadcaster, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{categories: categories, hub: hub, logger: logger}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to list categories", err))
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		IconName string `json:"icon_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperr.Validation("invalid JSON"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, h.logger, apperr.Validation("name is required"))
		return
	}

	exists, err := h.categories.NameExists(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to check category name", err))
		return
	}
	if exists {
		writeError(w, h.logger, apperr.ValidationFields(map[string]string{"name": "a category with that name already exists"}))
		return
	}

	category, err := h.categories.Create(r.Context(), req.Name, req.IconName)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to create category", err))
		return
	}

	h.hub.Broadcast(ws.NewEvent(ws.EntityCategory, ws.ActionCreated, category.ID, category))
	writeJSON(w, http.StatusCreated, category)
}

func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid id"))
		return
	}

	existing, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to get category", err))
		return
	}
	if existing == nil {
		writeError(w, h.logger, apperr.NotFound("category not found"))
		return
	}

	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, apperr.Internal("failed to delete category", err))
		return
	}

	h.hub.Broadcast(ws.NewEvent(ws.EntityCategory, ws.ActionDeleted, id, nil))
	w.WriteHeader(http.StatusNoContent)
}
