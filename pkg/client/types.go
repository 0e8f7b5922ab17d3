// Package client is the consumer-side library for the trolley service: a
// typed REST client, a managed WebSocket subscription, and in-memory views
// that merge row-level change events into local state instead of reloading
// on every change.
package client

import (
	"encoding/json"
	"time"
)

type List struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"icon_name"`
}

type Unit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Item struct {
	ID         int64     `json:"id"`
	ListID     int64     `json:"list_id"`
	CategoryID int64     `json:"category_id"`
	UnitID     int64     `json:"unit_id"`
	Name       string    `json:"name"`
	Quantity   float64   `json:"quantity"`
	Brand      string    `json:"brand"`
	Comments   string    `json:"comments"`
	Bought     bool      `json:"bought"`
	AddedAt    time.Time `json:"added_at"`
}

type CategoryCount struct {
	CategoryID int64   `json:"category_id"`
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
}

type ListStatistics struct {
	ListID        int64           `json:"list_id"`
	Name          string          `json:"name"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalQuantity int             `json:"total_quantity"`
	Categories    []CategoryCount `json:"categories"`
}

// Event is a row-level change notification from the server's change feed.
type Event struct {
	Type       string          `json:"type"`
	Entity     string          `json:"entity"`
	Action     string          `json:"action"`
	ID         int64           `json:"id"`
	ListID     int64           `json:"list_id,omitempty"`
	CategoryID int64           `json:"category_id,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

const (
	EntityList     = "list"
	EntityItem     = "item"
	EntityCategory = "category"

	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)
