package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nbmtravel/booking-backend/internal/models"
)

// ContactRepository handles database operations for the contact_messages table
type ContactRepository struct {
	db DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create persists a contact form submission
func (r *ContactRepository) Create(msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}

	err := r.db.QueryRow(query, msg.ID, msg.Name, msg.Email, msg.Message).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}
