package client

import (
	"encoding/json"
	"sort"
	"sync"
)

// ListView holds one list's items grouped by category and keeps them
// consistent with the server by folding change events into the groupings:
// inserts are placed into the right category keeping name order, updates
// replace the matching row in place by id, deletes remove the row from
// every grouping it could appear in.
type ListView struct {
	mu     sync.RWMutex
	listID int64
	groups map[int64][]Item
}

func NewListView(listID int64) *ListView {
	return &ListView{
		listID: listID,
		groups: make(map[int64][]Item),
	}
}

// SetItems seeds one category's grouping, typically from an initial REST
// fetch. The server returns items name-ascending; the order is kept as
// given.
func (v *ListView) SetItems(categoryID int64, items []Item) {
	v.mu.Lock()
	v.groups[categoryID] = append([]Item(nil), items...)
	v.mu.Unlock()
}

// Items returns a copy of one category's grouping.
func (v *ListView) Items(categoryID int64) []Item {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return append([]Item(nil), v.groups[categoryID]...)
}

// Len returns the total number of items across all groupings.
func (v *ListView) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	n := 0
	for _, items := range v.groups {
		n += len(items)
	}
	return n
}

// Apply folds a change event into the view. Events for other lists or
// other entities are ignored.
func (v *ListView) Apply(ev Event) {
	if ev.Entity != EntityItem {
		return
	}
	if ev.ListID != 0 && ev.ListID != v.listID {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	switch ev.Action {
	case ActionCreated:
		var item Item
		if err := json.Unmarshal(ev.Data, &item); err != nil || item.ListID != v.listID {
			return
		}
		v.removeLocked(item.ID)
		v.insertLocked(item)
	case ActionUpdated:
		var item Item
		if err := json.Unmarshal(ev.Data, &item); err != nil || item.ListID != v.listID {
			return
		}
		v.replaceLocked(item)
	case ActionDeleted:
		v.removeLocked(ev.ID)
	}
}

// insertLocked places an item into its category grouping at the position
// that preserves name-ascending order.
func (v *ListView) insertLocked(item Item) {
	items := v.groups[item.CategoryID]
	i := sort.Search(len(items), func(i int) bool {
		return items[i].Name >= item.Name
	})
	items = append(items, Item{})
	copy(items[i+1:], items[i:])
	items[i] = item
	v.groups[item.CategoryID] = items
}

// replaceLocked swaps the row with the same id in place. An update that
// moved the item to another category removes it from the old grouping and
// inserts it into the new one.
func (v *ListView) replaceLocked(item Item) {
	if items, ok := v.groups[item.CategoryID]; ok {
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = item
				return
			}
		}
	}
	v.removeLocked(item.ID)
	v.insertLocked(item)
}

func (v *ListView) removeLocked(id int64) {
	for categoryID, items := range v.groups {
		for i := range items {
			if items[i].ID == id {
				v.groups[categoryID] = append(items[:i], items[i+1:]...)
				return
			}
		}
	}
}
