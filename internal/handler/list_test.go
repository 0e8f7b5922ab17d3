package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evanhooper/trolley/internal/model"
)

func newListHandler() (*ListHandler, *fakeListStore, *fakeHub) {
	store := newFakeListStore()
	hub := &fakeHub{}
	return NewListHandler(store, hub, testLogger()), store, hub
}

func TestCreateList(t *testing.T) {
	h, _, hub := newListHandler()

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/lists", `{"name":"Weekend shopping"}`))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	var list model.List
	decodeBody(t, rr, &list)
	if list.Name != "Weekend shopping" || list.ID == 0 {
		t.Errorf("list = %+v", list)
	}

	ev := hub.last(t)
	if ev.Type != "list_created" || ev.ID != list.ID {
		t.Errorf("event = %+v", ev)
	}
}

func TestCreateListTrimsName(t *testing.T) {
	h, _, _ := newListHandler()

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/lists", `{"name":"  Groceries  "}`))

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	var list model.List
	decodeBody(t, rr, &list)
	if list.Name != "Groceries" {
		t.Errorf("name = %q, want trimmed", list.Name)
	}
}

func TestCreateListMissingName(t *testing.T) {
	h, _, hub := newListHandler()

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/lists", `{}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Error != "name is required" {
		t.Errorf("error = %q", resp.Error)
	}
	if len(hub.events) != 0 {
		t.Error("no event should be broadcast on rejection")
	}
}

func TestCreateListShortName(t *testing.T) {
	h, _, _ := newListHandler()

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/lists", `{"name":"AB"}`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decodeError(t, rr); resp.Fields["name"] == "" {
		t.Errorf("expected name field error, got %+v", resp)
	}
}

func TestCreateListInvalidJSON(t *testing.T) {
	h, _, _ := newListHandler()

	rr := httptest.NewRecorder()
	h.Create(rr, jsonRequest(http.MethodPost, "/api/lists", `{"name":`))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestListListsEmpty(t *testing.T) {
	h, _, _ := newListHandler()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/api/lists", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var lists []model.List
	decodeBody(t, rr, &lists)
	if lists == nil || len(lists) != 0 {
		t.Errorf("lists = %v, want []", lists)
	}
}

func TestRenameList(t *testing.T) {
	h, store, hub := newListHandler()
	created, _ := store.Create(context.Background(), "Old name")

	req := jsonRequest(http.MethodPut, "/api/lists/1", `{"name":"New name"}`)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.Rename(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var list model.List
	decodeBody(t, rr, &list)
	if list.ID != created.ID || list.Name != "New name" {
		t.Errorf("list = %+v", list)
	}
	if ev := hub.last(t); ev.Type != "list_updated" {
		t.Errorf("event = %+v", ev)
	}
}

func TestRenameListNotFound(t *testing.T) {
	h, _, _ := newListHandler()

	req := jsonRequest(http.MethodPut, "/api/lists/99", `{"name":"New name"}`)
	req.SetPathValue("id", "99")
	rr := httptest.NewRecorder()
	h.Rename(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestDeleteList(t *testing.T) {
	h, store, hub := newListHandler()
	store.Create(context.Background(), "Doomed")
	store.removed = 3

	req := httptest.NewRequest(http.MethodDelete, "/api/lists/1", nil)
	req.SetPathValue("id", "1")
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if ev := hub.last(t); ev.Type != "list_deleted" || ev.ID != 1 {
		t.Errorf("event = %+v", ev)
	}

	// A second delete finds nothing
	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/lists/1", nil)
	req.SetPathValue("id", "1")
	h.Delete(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rr.Code)
	}
}

func TestDeleteListInvalidID(t *testing.T) {
	h, _, _ := newListHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/lists/abc", nil)
	req.SetPathValue("id", "abc")
	rr := httptest.NewRecorder()
	h.Delete(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
