package database

import (
	"database/sql"
	"errors"

	"github.com/nbmtravel/booking-backend/internal/models"
)

// DestinationRepository handles database operations for the destinations table
type DestinationRepository struct {
	db DB
}

// NewDestinationRepository creates a new DestinationRepository
func NewDestinationRepository(db DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

// List retrieves all destinations ordered by name
func (r *DestinationRepository) List() ([]models.Destination, error) {
	query := `
		SELECT id, slug, name, description, created_at, updated_at
		FROM destinations
		ORDER BY name
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var destinations []models.Destination
	for rows.Next() {
		d := models.Destination{}
		if err := rows.Scan(&d.ID, &d.Slug, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		destinations = append(destinations, d)
	}

	return destinations, rows.Err()
}

// GetBySlug retrieves a destination by its unique slug
func (r *DestinationRepository) GetBySlug(slug string) (*models.Destination, error) {
	query := `
		SELECT id, slug, name, description, created_at, updated_at
		FROM destinations
		WHERE slug = $1
	`

	d := &models.Destination{}
	err := r.db.QueryRow(query, slug).Scan(
		&d.ID, &d.Slug, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("destination")
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}
