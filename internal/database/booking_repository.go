package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nbmtravel/booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking and joins the package title for
// confirmation messaging. Payment fields start out NULL.
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, package_id, name, email, phone, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at,
			(SELECT title FROM packages WHERE packages.id = $2)
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.PackageID, booking.Name, booking.Email,
		booking.Phone, booking.Message,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt, &booking.PackageTitle)

	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `
		SELECT id, package_id, name, email, phone, message,
			   stripe_session_id, stripe_payment_intent_id, amount, payment_status,
			   created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	return r.scanBooking(r.db.QueryRow(query, bookingID))
}

// GetByPaymentIntentID retrieves a booking by its stored payment intent
// identifier. Used by the webhook reconciler for failure/refund events,
// which do not carry booking metadata.
func (r *BookingRepository) GetByPaymentIntentID(paymentIntentID string) (*models.Booking, error) {
	query := `
		SELECT id, package_id, name, email, phone, message,
			   stripe_session_id, stripe_payment_intent_id, amount, payment_status,
			   created_at, updated_at
		FROM bookings
		WHERE stripe_payment_intent_id = $1
	`

	return r.scanBooking(r.db.QueryRow(query, paymentIntentID))
}

// UpdateCheckoutSession records the external checkout session id and the
// snapshotted package price on the booking. Never touches payment_status.
func (r *BookingRepository) UpdateCheckoutSession(bookingID, sessionID string, amount float64) error {
	query := `
		UPDATE bookings
		SET stripe_session_id = $2, amount = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, sessionID, amount)
	if err != nil {
		return fmt.Errorf("failed to update checkout session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundError("booking")
	}

	return nil
}

// SetPaymentStatus applies a terminal payment status as a single atomic
// row update. paymentIntentID, when non-nil, is stored alongside (the
// paid transition records it for later failure/refund correlation).
func (r *BookingRepository) SetPaymentStatus(bookingID string, status models.PaymentStatus, paymentIntentID *string) error {
	query := `
		UPDATE bookings
		SET payment_status = $2,
			stripe_payment_intent_id = COALESCE($3, stripe_payment_intent_id),
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, status, paymentIntentID)
	if err != nil {
		return fmt.Errorf("failed to set payment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return models.NewNotFoundError("booking")
	}

	return nil
}

// scanBooking scans a single booking row
func (r *BookingRepository) scanBooking(row *sql.Row) (*models.Booking, error) {
	booking := &models.Booking{}
	var phone sql.NullString
	var message sql.NullString
	var sessionID sql.NullString
	var paymentIntentID sql.NullString
	var amount sql.NullFloat64
	var paymentStatus sql.NullString

	err := row.Scan(
		&booking.ID, &booking.PackageID, &booking.Name, &booking.Email,
		&phone, &message,
		&sessionID, &paymentIntentID, &amount, &paymentStatus,
		&booking.CreatedAt, &booking.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.NewNotFoundError("booking")
	}
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		booking.Phone = &phone.String
	}
	if message.Valid {
		booking.Message = &message.String
	}
	if sessionID.Valid {
		booking.StripeSessionID = &sessionID.String
	}
	if paymentIntentID.Valid {
		booking.StripePaymentIntentID = &paymentIntentID.String
	}
	if amount.Valid {
		booking.Amount = &amount.Float64
	}
	if paymentStatus.Valid {
		status := models.PaymentStatus(paymentStatus.String)
		booking.PaymentStatus = &status
	}

	return booking, nil
}
