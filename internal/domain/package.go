package domain

import "time"

// Package is a purchasable pilgrimage itinerary from the catalog.
type Package struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       *int64    `json:"price,omitempty"` // rupiah, optional
	Description string    `json:"description,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Includes    []string  `json:"includes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
