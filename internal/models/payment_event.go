package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentEventType represents the type of payment event being audited
type PaymentEventType string

const (
	PaymentEventCheckoutCreated PaymentEventType = "checkout_session_created"
	PaymentEventWebhookReceived PaymentEventType = "webhook_received"
	PaymentEventPaid            PaymentEventType = "payment_paid"
	PaymentEventFailed          PaymentEventType = "payment_failed"
	PaymentEventRefunded        PaymentEventType = "payment_refunded"
	PaymentEventIgnored         PaymentEventType = "webhook_ignored"
	PaymentEventError           PaymentEventType = "error"
)

// PaymentEvent is an immutable audit entry recording every checkout
// initiation and webhook delivery, successful or not. Raw payloads are
// kept for reconciliation against the provider's dashboard.
type PaymentEvent struct {
	ID              uuid.UUID        `json:"id" db:"id"`
	BookingID       *string          `json:"booking_id,omitempty" db:"booking_id"`
	EventType       PaymentEventType `json:"event_type" db:"event_type"`
	StripeEventID   *string          `json:"stripe_event_id,omitempty" db:"stripe_event_id"`
	SessionID       *string          `json:"session_id,omitempty" db:"session_id"`
	PaymentIntentID *string          `json:"payment_intent_id,omitempty" db:"payment_intent_id"`
	RawBody         *string          `json:"raw_body,omitempty" db:"raw_body"`
	IsDuplicate     bool             `json:"is_duplicate" db:"is_duplicate"`
	ErrorMessage    *string          `json:"error_message,omitempty" db:"error_message"`
	CreatedAt       time.Time        `json:"created_at" db:"created_at"`
}
