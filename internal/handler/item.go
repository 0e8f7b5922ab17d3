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

// ItemStore is the slice of the item store used by ItemHandler.
type ItemStore interface {
	Create(ctx context.Context, listID, categoryID, unitID int64, name string, quantity float64, brand, comments string) (*model.Item, error)
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	ListByListAndCategory(ctx context.Context, listID, categoryID int64) ([]model.Item, error)
	Update(ctx context.Context, id, categoryID, unitID int64, name string, quantity float64, brand, comments string) (*model.Item, error)
	SetBought(ctx context.Context, id int64, bought bool) (*model.Item, error)
	Delete(ctx context.Context, id int64) error
}

// ListGetter resolves the list referenced by an item route.
type ListGetter interface {
	GetByID(ctx context.Context, id int64) (*model.List, error)
}

// CategoryGetter resolves the category referenced by an item route.
type CategoryGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Category, error)
}

// UnitGetter resolves the unit referenced by an item payload.
type UnitGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Unit, error)
}

type ItemHandler struct {
	items      ItemStore
	lists      ListGetter
	categories CategoryGetter
	units      UnitGetter
	hub        Broadcaster
	logger     *slog.Logger
}

func NewItemHandler(items ItemStore, lists ListGetter, categories CategoryGetter, units UnitGetter, hub Broadcaster, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: items, lists: lists, categories: categories, units: units, hub: hub, logger: logger}
}

type itemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	UnitID   int64   `json:"unit_id"`
	Brand    string  `json:"brand"`
	Comments string  `json:"comments"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID, err := parseIDParam(r, "list_id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid list_id"))
		return
	}
	categoryID, err := parseIDParam(r, "category_id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid category_id"))
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperr.Validation("invalid JSON"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if fields := validate.Item(req.Name, req.Quantity, req.Brand, req.Comments); len(fields) > 0 {
		writeError(w, h.logger, apperr.ValidationFields(fields))
		return
	}

	list, err := h.lists.GetByID(r.Context(), listID)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to get list", err))
		return
	}
	if list == nil {
		writeError(w, h.logger, apperr.NotFound("list not found"))
		return
	}

	category, err := h.categories.GetByID(r.Context(), categoryID)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to get category", err))
		return
	}
	if category == nil {
		writeError(w, h.logger, apperr.NotFound("category not found"))
		return
	}

	unit, err := h.units.GetByID(r.Context(), req.UnitID)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to get unit", err))
		return
	}
	if unit == nil {
		writeError(w, h.logger, apperr.ValidationFields(map[string]string{"unit_id": "unknown unit"}))
		return
	}

	item, err := h.items.Create(r.Context(), listID, categoryID, req.UnitID, req.Name, req.Quantity, req.Brand, req.Comments)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to create item", err))
		return
	}

	h.broadcast(ws.ActionCreated, item)
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	listID, err := parseIDParam(r, "list_id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid list_id"))
		return
	}
	categoryID, err := parseIDParam(r, "category_id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid category_id"))
		return
	}

	items, err := h.items.ListByListAndCategory(r.Context(), listID, categoryID)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to list items", err))
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// itemPatch distinguishes absent fields from zero values so a partial
// update touches only what the caller sent.
type itemPatch struct {
	Name       *string  `json:"name"`
	Quantity   *float64 `json:"quantity"`
	Brand      *string  `json:"brand"`
	Comments   *string  `json:"comments"`
	CategoryID *int64   `json:"category_id"`
	UnitID     *int64   `json:"unit_id"`
}

func (p itemPatch) empty() bool {
	return p.Name == nil && p.Quantity == nil && p.Brand == nil &&
		p.Comments == nil && p.CategoryID == nil && p.UnitID == nil
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid id"))
		return
	}

	existing, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to get item", err))
		return
	}
	if existing == nil {
		writeError(w, h.logger, apperr.NotFound("item not found"))
		return
	}

	var patch itemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, h.logger, apperr.Validation("invalid JSON"))
		return
	}
	if patch.empty() {
		writeError(w, h.logger, apperr.Validation("no recognized fields to update"))
		return
	}

	next := *existing
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Quantity != nil {
		next.Quantity = *patch.Quantity
	}
	if patch.Brand != nil {
		next.Brand = *patch.Brand
	}
	if patch.Comments != nil {
		next.Comments = *patch.Comments
	}
	if patch.CategoryID != nil {
		next.CategoryID = *patch.CategoryID
	}
	if patch.UnitID != nil {
		next.UnitID = *patch.UnitID
	}

	if fields := validate.Item(next.Name, next.Quantity, next.Brand, next.Comments); len(fields) > 0 {
		writeError(w, h.logger, apperr.ValidationFields(fields))
		return
	}

	if patch.CategoryID != nil {
		category, err := h.categories.GetByID(r.Context(), next.CategoryID)
		if err != nil {
			writeError(w, h.logger, apperr.Internal("failed to get category", err))
			return
		}
		if category == nil {
			writeError(w, h.logger, apperr.ValidationFields(map[string]string{"category_id": "unknown category"}))
			return
		}
	}
	if patch.UnitID != nil {
		unit, err := h.units.GetByID(r.Context(), next.UnitID)
		if err != nil {
			writeError(w, h.logger, apperr.Internal("failed to get unit", err))
			return
		}
		if unit == nil {
			writeError(w, h.logger, apperr.ValidationFields(map[string]string{"unit_id": "unknown unit"}))
			return
		}
	}

	item, err := h.items.Update(r.Context(), id, next.CategoryID, next.UnitID, next.Name, next.Quantity, next.Brand, next.Comments)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to update item", err))
		return
	}

	h.broadcast(ws.ActionUpdated, item)
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) SetBought(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid id"))
		return
	}

	var req struct {
		Bought *bool `json:"bought"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, apperr.Validation("invalid JSON"))
		return
	}
	if req.Bought == nil {
		writeError(w, h.logger, apperr.Validation("bought boolean is required"))
		return
	}

	item, err := h.items.SetBought(r.Context(), id, *req.Bought)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to update item", err))
		return
	}
	if item == nil {
		writeError(w, h.logger, apperr.NotFound("item not found"))
		return
	}

	h.broadcast(ws.ActionUpdated, item)
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		writeError(w, h.logger, apperr.Validation("invalid id"))
		return
	}

	existing, err := h.items.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, apperr.Internal("failed to get item", err))
		return
	}
	if existing == nil {
		writeError(w, h.logger, apperr.NotFound("item not found"))
		return
	}

	if err := h.items.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, apperr.Internal("failed to delete item", err))
		return
	}

	ev := ws.NewEvent(ws.EntityItem, ws.ActionDeleted, id, nil)
	ev.ListID = existing.ListID
	ev.CategoryID = existing.CategoryID
	h.hub.Broadcast(ev)
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) broadcast(action string, item *model.Item) {
	ev := ws.NewEvent(ws.EntityItem, action, item.ID, item)
	ev.ListID = item.ListID
	ev.CategoryID = item.CategoryID
	h.hub.Broadcast(ev)
}
