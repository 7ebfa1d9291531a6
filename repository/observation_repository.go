package repository

import (
	"database/sql"
	"fmt"

	"pricewatch/database"
	"pricewatch/models"
)

type ObservationRepository struct{}

func NewObservationRepository() *ObservationRepository {
	return &ObservationRepository{}
}

// Add appends a price observation. Observations are append-only; nothing
// updates or deletes them afterwards.
func (r *ObservationRepository) Add(obs *models.Observation) error {
	query := `
		INSERT INTO price_observations (product, site, price, url, scraped_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := database.DB.QueryRow(query, obs.Product, obs.Site, obs.Price, obs.URL, obs.ScrapedAt).Scan(&obs.ID)
	if err != nil {
		return fmt.Errorf("failed to add observation: %v", err)
	}

	return nil
}

// LastPrice returns the latest-timestamped observed price for the exact
// (product, site) pair, or ok=false when the pair has never been observed.
func (r *ObservationRepository) LastPrice(product, site string) (int, bool, error) {
	query := `
		SELECT price
		FROM price_observations
		WHERE product = $1 AND site = $2
		ORDER BY scraped_at DESC
		LIMIT 1
	`

	var price int
	err := database.DB.QueryRow(query, product, site).Scan(&price)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to get last price: %v", err)
	}

	return price, true, nil
}

// Recent returns the most recent observations across all products
func (r *ObservationRepository) Recent(limit int) ([]models.Observation, error) {
	if limit <= 0 {
		limit = 50 // default limit
	}

	query := `
		SELECT id, product, site, price, url, scraped_at
		FROM price_observations
		ORDER BY scraped_at DESC
		LIMIT $1
	`

	rows, err := database.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent observations: %v", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

// History returns the most recent observations, optionally filtered by product
func (r *ObservationRepository) History(product string, limit int) ([]models.Observation, error) {
	if limit <= 0 {
		limit = 200 // default limit
	}

	var rows *sql.Rows
	var err error
	if product != "" {
		query := `
			SELECT id, product, site, price, url, scraped_at
			FROM price_observations
			WHERE product = $1
			ORDER BY scraped_at DESC
			LIMIT $2
		`
		rows, err = database.DB.Query(query, product, limit)
	} else {
		query := `
			SELECT id, product, site, price, url, scraped_at
			FROM price_observations
			ORDER BY scraped_at DESC
			LIMIT $1
		`
		rows, err = database.DB.Query(query, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get observation history: %v", err)
	}
	defer rows.Close()

	return scanObservations(rows)
}

func scanObservations(rows *sql.Rows) ([]models.Observation, error) {
	var observations []models.Observation
	for rows.Next() {
		var obs models.Observation
		err := rows.Scan(&obs.ID, &obs.Product, &obs.Site, &obs.Price, &obs.URL, &obs.ScrapedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan observation: %v", err)
		}
		observations = append(observations, obs)
	}
	return observations, nil
}
