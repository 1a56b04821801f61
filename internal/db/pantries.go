package db

import (
	"fmt"
	"time"

	"pantry-finder/internal/models"
)

// PantryFilter contains filter parameters for pantry queries
type PantryFilter struct {
	Name   *string
	Limit  int
	Offset int
}

// ListPantries returns stored pantries matching the given filter.
// Rows come back in insertion order so downstream distance ties break
// deterministically.
func (db *DB) ListPantries(f PantryFilter) ([]models.Pantry, error) {
	query := `
		SELECT id, name, address, latitude, longitude, created_at
		FROM pantries
	`

	args := make([]interface{}, 0)

	if f.Name != nil {
		query += " WHERE name LIKE ?"
		args = append(args, "%"+*f.Name+"%")
	}

	query += " ORDER BY id"

	// Apply limit
	limit := f.Limit
	if limit <= 0 {
		limit = 500
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	if f.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", f.Offset)
	}

	var pantries []models.Pantry
	err := db.Select(&pantries, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pantries: %w", err)
	}

	return pantries, nil
}

// GetPantry returns a single pantry by ID
func (db *DB) GetPantry(id int64) (*models.Pantry, error) {
	query := `
		SELECT id, name, address, latitude, longitude, created_at
		FROM pantries WHERE id = ?
	`

	var p models.Pantry
	err := db.Get(&p, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get pantry: %w", err)
	}

	return &p, nil
}

// UpsertPantry inserts or updates a pantry keyed by name and address
func (db *DB) UpsertPantry(p *models.Pantry) error {
	query := `
		INSERT INTO pantries (name, address, latitude, longitude, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name, address) DO UPDATE SET
			latitude = excluded.latitude,
			longitude = excluded.longitude
	`

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := db.Exec(query, p.Name, p.Address, p.Latitude, p.Longitude, createdAt)

	return err
}

// CountPantries returns the total number of stored pantries
func (db *DB) CountPantries() (int, error) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM pantries")
	return count, err
}
