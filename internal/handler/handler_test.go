package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/evanhooper/trolley/internal/model"
	ws "github.com/evanhooper/trolley/internal/websocket"
)

// testLogger discards output so failing-path tests stay quiet.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeHub records broadcast events for assertions.
type fakeHub struct {
	events []ws.Event
}

func (f *fakeHub) Broadcast(ev ws.Event) {
	f.events = append(f.events, ev)
}

func (f *fakeHub) last(t *testing.T) ws.Event {
	t.Helper()
	if len(f.events) == 0 {
		t.Fatal("no events broadcast")
	}
	return f.events[len(f.events)-1]
}

// --- in-memory stores ---

type fakeListStore struct {
	lists   map[int64]model.List
	nextID  int64
	removed int64
}

func newFakeListStore() *fakeListStore {
	return &fakeListStore{lists: make(map[int64]model.List)}
}

func (f *fakeListStore) Create(_ context.Context, name string) (*model.List, error) {
	f.nextID++
	l := model.List{ID: f.nextID, Name: name, CreatedAt: time.Now().UTC()}
	f.lists[l.ID] = l
	return &l, nil
}

func (f *fakeListStore) List(_ context.Context) ([]model.List, error) {
	var out []model.List
	for _, l := range f.lists {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeListStore) GetByID(_ context.Context, id int64) (*model.List, error) {
	if l, ok := f.lists[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (f *fakeListStore) Rename(_ context.Context, id int64, name string) (*model.List, error) {
	l, ok := f.lists[id]
	if !ok {
		return nil, nil
	}
	l.Name = name
	f.lists[id] = l
	return &l, nil
}

func (f *fakeListStore) Delete(_ context.Context, id int64) (int64, error) {
	delete(f.lists, id)
	return f.removed, nil
}

type fakeItemStore struct {
	items  map[int64]model.Item
	nextID int64
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[int64]model.Item)}
}

func (f *fakeItemStore) Create(_ context.Context, listID, categoryID, unitID int64, name string, quantity float64, brand, comments string) (*model.Item, error) {
	f.nextID++
	item := model.Item{
		ID: f.nextID, ListID: listID, CategoryID: categoryID, UnitID: unitID,
		Name: name, Quantity: quantity, Brand: brand, Comments: comments,
		AddedAt: time.Now().UTC(),
	}
	f.items[item.ID] = item
	return &item, nil
}

func (f *fakeItemStore) GetByID(_ context.Context, id int64) (*model.Item, error) {
	if item, ok := f.items[id]; ok {
		return &item, nil
	}
	return nil, nil
}

func (f *fakeItemStore) ListByListAndCategory(_ context.Context, listID, categoryID int64) ([]model.Item, error) {
	var out []model.Item
	for _, item := range f.items {
		if item.ListID == listID && item.CategoryID == categoryID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (f *fakeItemStore) Update(_ context.Context, id, categoryID, unitID int64, name string, quantity float64, brand, comments string) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	item.CategoryID = categoryID
	item.UnitID = unitID
	item.Name = name
	item.Quantity = quantity
	item.Brand = brand
	item.Comments = comments
	f.items[id] = item
	return &item, nil
}

func (f *fakeItemStore) SetBought(_ context.Context, id int64, bought bool) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	item.Bought = bought
	f.items[id] = item
	return &item, nil
}

func (f *fakeItemStore) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

type fakeCategoryStore struct {
	categories map[int64]model.Category
	nextID     int64
}

func newFakeCategoryStore(categories ...model.Category) *fakeCategoryStore {
	f := &fakeCategoryStore{categories: make(map[int64]model.Category)}
	for _, c := range categories {
		f.categories[c.ID] = c
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeCategoryStore) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryStore) GetByID(_ context.Context, id int64) (*model.Category, error) {
	if c, ok := f.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCategoryStore) NameExists(_ context.Context, name string) (bool, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryStore) Create(_ context.Context, name, iconName string) (*model.Category, error) {
	f.nextID++
	c := model.Category{ID: f.nextID, Name: name, IconName: iconName}
	f.categories[c.ID] = c
	return &c, nil
}

func (f *fakeCategoryStore) Delete(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

type fakeUnitStore struct {
	units map[int64]model.Unit
}

func newFakeUnitStore(units ...model.Unit) *fakeUnitStore {
	f := &fakeUnitStore{units: make(map[int64]model.Unit)}
	for _, u := range units {
		f.units[u.ID] = u
	}
	return f
}

func (f *fakeUnitStore) List(_ context.Context) ([]model.Unit, error) {
	var out []model.Unit
	for _, u := range f.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeUnitStore) GetByID(_ context.Context, id int64) (*model.Unit, error) {
	if u, ok := f.units[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// --- request helpers ---

func jsonRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	decodeBody(t, rr, &resp)
	return resp
}
