package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// PaymentEventRepository handles the immutable payment event audit log
type PaymentEventRepository struct {
	db     DB
	logger *logrus.Logger
}

// NewPaymentEventRepository creates a new payment event repository
func NewPaymentEventRepository(db DB, logger *logrus.Logger) *PaymentEventRepository {
	return &PaymentEventRepository{
		db:     db,
		logger: logger,
	}
}

// Log creates a new payment event entry.
// Payment events must not fail silently.
func (r *PaymentEventRepository) Log(event *models.PaymentEvent) error {
	if event == nil {
		return fmt.Errorf("payment event cannot be nil")
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO payment_events (
			id, booking_id, event_type, stripe_event_id,
			session_id, payment_intent_id, raw_body,
			is_duplicate, error_message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		event.ID, event.BookingID, event.EventType, event.StripeEventID,
		event.SessionID, event.PaymentIntentID, event.RawBody,
		event.IsDuplicate, event.ErrorMessage, event.CreatedAt,
	)

	if err != nil {
		r.logger.WithError(err).WithFields(logrus.Fields{
			"event_type":      event.EventType,
			"stripe_event_id": event.StripeEventID,
		}).Error("Failed to log payment event")
		return fmt.Errorf("failed to log payment event: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.EventType,
	}).Debug("Payment event logged")

	return nil
}

// HasProcessedEvent reports whether a webhook delivery with the given
// provider event id has already been applied. Backs webhook idempotency:
// replays are acknowledged without re-applying side effects.
func (r *PaymentEventRepository) HasProcessedEvent(stripeEventID string) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM payment_events
		WHERE stripe_event_id = $1
		  AND is_duplicate = FALSE
		  AND error_message IS NULL
	`

	var count int
	if err := r.db.QueryRow(query, stripeEventID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check event: %w", err)
	}

	return count > 0, nil
}
