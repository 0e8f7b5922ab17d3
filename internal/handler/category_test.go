package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evanhooper/trolley/internal/model"
)

func newCategoryHandler(seed ...model.Category) (*CategoryHandler, *fakeCategoryStore, *fakeHub) {
	store := newFakeCategoryStore(seed...)
	hub := &fakeHub{}
	return NewCategoryHandler(store, hub, testLogger()), store, hub
}

func TestListCategories(t *testing.T) {
	h, _, _ := newCategoryHandler(
		model.Category{ID: 1, Name: "Produce", IconName: "apple"},
		model.Category{ID: 2, Name: "Dairy", IconName: "milk"},
	)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var categories []model.Category
	decodeBody(t, rr, &categories)
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].Name != "Dairy" {
		t.Errorf("expected name-sorted categories, got %s first", categories[0].Name)
	}
}

func TestListCategoriesEmpty(t *testing.T) {
	h, _, _ := newCategoryHandler()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	var categories []model.Category
	decodeBody(t, rr, &categories)
	if categories == nil || len(categories) != 0 {
		t.Errorf("categories = %v, want []", categories)
	}
}

func TestCreateCategory(t *testing.T) {
	h, _, hub := newCategoryHandler()

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/categories", `{"name":"Snacks","icon_name":"cookie"}`))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	var category model.Category
	decodeBody(t, rr, &category)
	if category.Name != "Snacks" || category.IconName != "cookie" {
		t.Errorf("category = %+v", category)
	}
	if ev := hub.last(t); ev.Type != "category_created" || ev.ID != category.ID {
		t.Errorf("event = %+v", ev)
	}
}

func TestCreateCategoryMissingName(t *testing.T) {
	h, _, _ := newCategoryHandler()

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/categories", `{"icon_name":"cookie"}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	h, _, hub := newCategoryHandler(model.Category{ID: 1, Name: "Snacks"})

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/categories", `{"name":"Snacks"}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Fields["name"] == "" {
		t.Errorf("expected name field error, got %+v", resp)
	}
	if len(hub.events) != 0 {
		t.Error("no event should be broadcast on rejection")
	}
}

func TestDeleteCategory(t *testing.T) {
	h, store, hub := newCategoryHandler(model.Category{ID: 3, Name: "Seasonal"})

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/3", nil)
	req.SetPathValue("id", "3")
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if _, ok := store.categories[3]; ok {
		t.Error("category still present after delete")
	}
	if ev := hub.last(t); ev.Type != "category_deleted" || ev.ID != 3 {
		t.Errorf("event = %+v", ev)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	h, _, _ := newCategoryHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/categories/9", nil)
	req.SetPathValue("id", "9")
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}
