package models

import "time"

// PaymentStatus represents the terminal payment state of a booking.
// A new booking carries no status until the webhook reconciler applies one.
type PaymentStatus string

const (
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Booking represents a user's request to purchase a travel package.
//
// The identity fields are fixed at creation. The payment fields are written
// only by the checkout initiator (session id + amount snapshot) and the
// webhook reconciler (payment status + payment intent id); no other path
// may touch them.
type Booking struct {
	ID        string  `json:"id" db:"id"`
	PackageID string  `json:"package_id" db:"package_id"`
	Name      string  `json:"name" db:"name"`
	Email     string  `json:"email" db:"email"`
	Phone     *string `json:"phone,omitempty" db:"phone"`
	Message   *string `json:"message,omitempty" db:"message"`

	StripeSessionID       *string        `json:"stripe_session_id,omitempty" db:"stripe_session_id"`
	StripePaymentIntentID *string        `json:"stripe_payment_intent_id,omitempty" db:"stripe_payment_intent_id"`
	Amount                *float64       `json:"amount,omitempty" db:"amount"`
	PaymentStatus         *PaymentStatus `json:"payment_status,omitempty" db:"payment_status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// PackageTitle is joined in on creation for confirmation messaging
	PackageTitle string `json:"package_title,omitempty" db:"-"`
}

// BookingInput carries the raw fields of a booking form submission
type BookingInput struct {
	PackageID string `json:"packageId" form:"packageId"`
	Name      string `json:"name" form:"name"`
	Email     string `json:"email" form:"email"`
	Phone     string `json:"phone" form:"phone"`
	Message   string `json:"message" form:"message"`
}
