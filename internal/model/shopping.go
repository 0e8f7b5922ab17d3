package model

import "time"

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
