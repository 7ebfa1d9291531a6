package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"pricewatch/database"
	"pricewatch/models"
)

type WatchRepository struct{}

func NewWatchRepository() *WatchRepository {
	return &WatchRepository{}
}

// AddWatchItem adds a new watch item
func (r *WatchRepository) AddWatchItem(req *models.AddWatchRequest) (*models.WatchItem, error) {
	urlsJSON, err := json.Marshal(req.URLs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode site URLs: %v", err)
	}

	query := `
		INSERT INTO watch_items (name, threshold, urls, contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id, name, threshold, urls, contact, created_at, updated_at, is_active
	`

	now := time.Now()
	row := database.DB.QueryRow(query, req.Name, thresholdValue(req.Threshold), urlsJSON, req.Contact, now)
	return scanWatchItem(row)
}

// GetWatchItems returns all active watch items
func (r *WatchRepository) GetWatchItems() ([]models.WatchItem, error) {
	query := `
		SELECT id, name, threshold, urls, contact, created_at, updated_at, is_active
		FROM watch_items
		WHERE is_active = true
		ORDER BY created_at ASC
	`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get watch items: %v", err)
	}
	defer rows.Close()

	var items []models.WatchItem
	for rows.Next() {
		item, err := scanWatchItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, nil
}

// GetWatchItemByID returns a watch item by ID
func (r *WatchRepository) GetWatchItemByID(id int) (*models.WatchItem, error) {
	query := `
		SELECT id, name, threshold, urls, contact, created_at, updated_at, is_active
		FROM watch_items
		WHERE id = $1 AND is_active = true
	`

	item, err := scanWatchItem(database.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("watch item not found")
		}
		return nil, err
	}
	return item, nil
}

// DeleteWatchItem deactivates a watch item
func (r *WatchRepository) DeleteWatchItem(id int) error {
	query := `UPDATE watch_items SET is_active = false, updated_at = $2 WHERE id = $1`
	_, err := database.DB.Exec(query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete watch item: %v", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWatchItem(row rowScanner) (*models.WatchItem, error) {
	var item models.WatchItem
	var threshold sql.NullInt64
	var urlsJSON []byte

	err := row.Scan(
		&item.ID, &item.Name, &threshold, &urlsJSON,
		&item.Contact, &item.CreatedAt, &item.UpdatedAt, &item.IsActive,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan watch item: %v", err)
	}

	if threshold.Valid {
		t := int(threshold.Int64)
		item.Threshold = &t
	}
	if err := json.Unmarshal(urlsJSON, &item.URLs); err != nil {
		return nil, fmt.Errorf("failed to decode site URLs: %v", err)
	}

	return &item, nil
}

func thresholdValue(t *int) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
