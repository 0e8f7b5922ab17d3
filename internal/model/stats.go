package model

import "time"

// CategoryCount is one row of a category breakdown: how many items in a
// list (or time window) belong to the category, and what share of the
// total that is.
type CategoryCount struct {
	CategoryID int64   `json:"category_id"`
	Category   string  `json:"category"`
	Count      int     `json:"count"`
	Percent    float64 `json:"percent"`
}

// ListStatistics is the derived statistics view for a single list.
// TotalQuantity counts item rows, not the sum of their quantity fields.
type ListStatistics struct {
	ListID        int64           `json:"list_id"`
	Name          string          `json:"name"`
	CreatedAt     time.Time       `json:"created_at"`
	TotalQuantity int             `json:"total_quantity"`
	Categories    []CategoryCount `json:"categories"`
}
