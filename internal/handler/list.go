package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evanhooper/trolley/internal/apperr"
	"github.com/evanhooper/trolley/internal/model"
	"github.com/evanhooper/trolley/internal/validate"
	ws "github.com/evanhooper/trolley/internal/websocket"
)

// ListStore is the slice of the list store used by ListHandler.
type ListStore interface {
	Create(ctx context.Context, name string) (*model.List, error)
	List(ctx context.Context) ([]model.List, error)
	GetByID(ctx context.Context, id int64) (*model.List, error)
	Rename(ctx context.Context, id int64, name string) (*model.List, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// Broadcaster publishes change events to connected subscribers.
type Broadcaster interface {
	Broadcast(ev ws.Event)
}

type ListHandler struct {
	lists  ListStore
	hub    Broadcaster
	logger *slog.Logger
}

func NewListHandler(lists ListStore, hub Broadcaster, logger *slog.Logger) *ListHandler {
	return &ListHandler{lists: lists, hub: hub, logger: logger}
}

type listRequest struct {
	Name string `json:"name"`
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperr.Validation("invalid JSON"))
		return
	}

	// Name is required here; validate.List itself accepts an empty one
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, h.logger, apperr.Validation("name is required"))
		return
	}
	if fields := validate.List(req.Name); len(fields) > 0 {
		writeError(w, h.logger, apperr.ValidationFields(fields))
		return
	}

	list, err := h.lists.Create(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to create list", err))
		return
	}

	h.hub.Broadcast(ws.NewEvent(ws.EntityList, ws.ActionCreated, list.ID, list))
	writeJSON(w, http.StatusCreated, list)
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.List(r.Context())
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to list lists", err))
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ListHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid id"))
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperr.Validation("invalid JSON"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, h.logger, apperr.Validation("name is required"))
		return
	}
	if fields := validate.List(req.Name); len(fields) > 0 {
		writeError(w, h.logger, apperr.ValidationFields(fields))
		return
	}

	list, err := h.lists.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to rename list", err))
		return
	}
	if list == nil {
		writeError(w, h.logger, apperr.NotFound("list not found"))
		return
	}

	h.hub.Broadcast(ws.NewEvent(ws.EntityList, ws.ActionUpdated, list.ID, list))
	writeJSON(w, http.StatusOK, list)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid id"))
		return
	}

	existing, err := h.lists.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to get list", err))
		return
	}
	if existing == nil {
		writeError(w, h.logger, apperr.NotFound("list not found"))
		return
	}

	removed, err := h.lists.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to delete list", err))
		return
	}
	h.logger.Info("list deleted", "id", id, "items_removed", removed)

	h.hub.Broadcast(ws.NewEvent(ws.EntityList, ws.ActionDeleted, id, nil))
	w.WriteHeader(http.StatusNoContent)
}
