package client

import (
	"context"
	"math"
	"sort"
	"sync"
)

// StatsView mirrors one list's category breakdown and adjusts it
// incrementally as item events arrive: counts move, percentages are
// recomputed locally. An event referencing a category the view does not
// track marks it stale instead of guessing the delta; the caller then
// reloads from the API.
type StatsView struct {
	mu     sync.Mutex
	api    *Client
	listID int64

	counts      map[int64]int
	names       map[int64]string
	order       []int64
	itemCats    map[int64]int64
	total       int
	needsReload bool
}

func NewStatsView(api *Client, listID int64) *StatsView {
	return &StatsView{
		api:      api,
		listID:   listID,
		counts:   make(map[int64]int),
		names:    make(map[int64]string),
		itemCats: make(map[int64]int64),
	}
}

// Reload replaces the view's state with a fresh fetch from the API and
// clears the stale flag. Item→category memory is rebuilt from the items
// endpoint events that follow; until then updates to unseen items mark the
// view stale again rather than drifting.
func (v *StatsView) Reload(ctx context.Context) error {
	stat, err := v.api.ListStatistics(ctx, v.listID)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.counts = make(map[int64]int, len(stat.Categories))
	v.names = make(map[int64]string, len(stat.Categories))
	v.order = v.order[:0]
	v.itemCats = make(map[int64]int64)
	v.total = stat.TotalQuantity
	for _, row := range stat.Categories {
		v.counts[row.CategoryID] = row.Count
		v.names[row.CategoryID] = row.Category
		v.order = append(v.order, row.CategoryID)
	}
	v.needsReload = false
	return nil
}

// NeedsReload reports whether an event could not be applied incrementally.
func (v *StatsView) NeedsReload() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.needsReload
}

// Apply folds an item change event into the counts. Events for other
// lists or other entities are ignored.
func (v *StatsView) Apply(ev Event) {
	if ev.Entity != EntityItem {
		return
	}
	if ev.ListID != 0 && ev.ListID != v.listID {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.needsReload {
		return
	}

	switch ev.Action {
	case ActionCreated:
		if !v.trackedLocked(ev.CategoryID) {
			v.needsReload = true
			return
		}
		v.itemCats[ev.ID] = ev.CategoryID
		v.counts[ev.CategoryID]++
		v.total++
	case ActionUpdated:
		old, seen := v.itemCats[ev.ID]
		if !seen {
			// First sight of this item since the last reload; its
			// previous category is unknown, so the delta cannot be
			// derived.
			v.needsReload = true
			return
		}
		if ev.CategoryID == old {
			return
		}
		if !v.trackedLocked(ev.CategoryID) {
			v.needsReload = true
			return
		}
		v.counts[old]--
		v.counts[ev.CategoryID]++
		v.itemCats[ev.ID] = ev.CategoryID
	case ActionDeleted:
		old, seen := v.itemCats[ev.ID]
		if !seen {
			v.needsReload = true
			return
		}
		delete(v.itemCats, ev.ID)
		v.counts[old]--
		v.total--
	}
}

// trackedLocked reports whether the category is part of the view's state.
func (v *StatsView) trackedLocked(categoryID int64) bool {
	_, ok := v.names[categoryID]
	return ok
}

// Track registers a category so that later events referencing it can be
// applied incrementally, typically after fetching the category list.
func (v *StatsView) Track(categoryID int64, name string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.names[categoryID]; ok {
		return
	}
	v.names[categoryID] = name
	v.counts[categoryID] = 0
	v.order = append(v.order, categoryID)
}

// Breakdown returns the current distribution: categories with a non-zero
// count, percent of total rounded to two decimals, sorted count
// descending with ties keeping first-seen order.
func (v *StatsView) Breakdown() (total int, rows []CategoryCount) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows = []CategoryCount{}
	for _, id := range v.order {
		count := v.counts[id]
		if count <= 0 {
			continue
		}
		rows = append(rows, CategoryCount{
			CategoryID: id,
			Category:   v.names[id],
			Count:      count,
			Percent:    math.Round(float64(count)/float64(v.total)*100*100) / 100,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Count > rows[j].Count
	})
	return v.total, rows
}
