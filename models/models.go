package models

import (
	"time"
)

// WatchItem represents a user's request to monitor a product's price across
// one or more storefronts. Written by the watch-list API; the monitoring
// pipeline only reads it.
type WatchItem struct {
	ID        int               `json:"id" db:"id"`
	Name      string            `json:"name" db:"name"`
	Threshold *int              `json:"threshold" db:"threshold"` // nil disables alerting
	URLs      map[string]string `json:"urls" db:"urls"`           // site identifier -> product URL
	Contact   string            `json:"contact" db:"contact"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
	IsActive  bool              `json:"is_active" db:"is_active"`
}

// HasThreshold returns true if alerting is enabled for this item
func (w *WatchItem) HasThreshold() bool {
	return w.Threshold != nil && *w.Threshold > 0
}

// Observation is one recorded price reading for a product at a site.
// Append-only; never updated or deleted.
type Observation struct {
	ID        int       `json:"id" db:"id"`
	Product   string    `json:"product" db:"product"`
	Site      string    `json:"site" db:"site"`
	Price     int       `json:"price" db:"price"`
	URL       string    `json:"url" db:"url"`
	ScrapedAt time.Time `json:"scraped_at" db:"scraped_at"`
}

// CrossingEvent is the transient record of a downward threshold crossing.
// It is handed straight to the alert dispatcher and never persisted.
type CrossingEvent struct {
	Product    string    `json:"product"`
	Site       string    `json:"site"`
	NewPrice   int       `json:"new_price"`
	PriorPrice int       `json:"prior_price"`
	Threshold  int       `json:"threshold"`
	URL        string    `json:"url"`
	Time       time.Time `json:"time"`
}

// RunReport aggregates the outcome of one monitoring cycle.
type RunReport struct {
	StartedAt time.Time `json:"started_at"`
	Pairs     int       `json:"pairs"`   // (product, site) pairs attempted
	Errors    int       `json:"errors"`  // hard failures (fetch/storage)
	Missing   int       `json:"missing"` // pages fetched but no price found
	Alerts    int       `json:"alerts"`  // crossings detected
}

// Failed reports whether at least one pair failed hard during the cycle.
func (r *RunReport) Failed() bool {
	return r.Errors > 0
}

// AddWatchRequest represents the request to add a new watch item
type AddWatchRequest struct {
	Name      string            `json:"name" validate:"required"`
	Threshold *int              `json:"threshold" validate:"omitempty,gt=0"`
	URLs      map[string]string `json:"urls" validate:"required,min=1"`
	Contact   string            `json:"contact" validate:"omitempty,email"`
}
