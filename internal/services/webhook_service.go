package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nbmtravel/booking-backend/internal/database"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Webhook event kinds this system reconciles. Anything else is
// acknowledged and ignored; providers disable endpoints that keep erroring.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
	EventChargeRefunded           = "charge.refunded"
)

// WebhookService reconciles asynchronous payment provider events against
// booking records. It is the only component allowed to set payment status.
//
// Transitions are idempotent: a redelivered event leaves the booking in
// the same terminal state and fires no duplicate notifications.
type WebhookService struct {
	bookingRepo  *database.BookingRepository
	eventRepo    *database.PaymentEventRepository
	provider     CheckoutProvider
	notification *NotificationService
	logger       *logrus.Logger
}

// NewWebhookService creates a new webhook reconciler
func NewWebhookService(
	bookingRepo *database.BookingRepository,
	eventRepo *database.PaymentEventRepository,
	provider CheckoutProvider,
	notification *NotificationService,
	logger *logrus.Logger,
) *WebhookService {
	return &WebhookService{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		provider:     provider,
		notification: notification,
		logger:       logger,
	}
}

// HandleEvent verifies a raw webhook delivery and applies the resulting
// state transition. A nil return means the delivery must be acknowledged
// with success; missing bookings are logged no-ops, never errors.
func (s *WebhookService) HandleEvent(ctx context.Context, payload []byte, signature string) error {
	if s.provider == nil || !s.provider.IsConfigured() {
		return models.ErrProviderUnavailable
	}

	event, err := s.provider.ConstructEvent(payload, signature)
	if err != nil {
		s.logger.WithError(err).Warn("Webhook signature verification failed")
		return err
	}

	if event.ID != "" {
		processed, err := s.eventRepo.HasProcessedEvent(event.ID)
		if err != nil {
			return err
		}
		if processed {
			s.logger.WithFields(logrus.Fields{
				"event_id":   event.ID,
				"event_type": event.Type,
			}).Info("Duplicate webhook delivery acknowledged")
			s.audit(&models.PaymentEvent{
				EventType:     models.PaymentEventWebhookReceived,
				StripeEventID: &event.ID,
				IsDuplicate:   true,
			})
			return nil
		}
	}

	switch event.Type {
	case EventCheckoutSessionCompleted:
		return s.handleSessionCompleted(event, payload)
	case EventPaymentIntentFailed:
		return s.handlePaymentFailed(event, payload)
	case EventChargeRefunded:
		return s.handleChargeRefunded(event, payload)
	default:
		s.logger.WithField("event_type", event.Type).Info("Unhandled webhook event type")
		s.audit(&models.PaymentEvent{
			EventType:     models.PaymentEventIgnored,
			StripeEventID: &event.ID,
		})
		return nil
	}
}

// handleSessionCompleted marks the metadata-referenced booking paid and
// stores the payment intent id for later failure/refund correlation.
func (s *WebhookService) handleSessionCompleted(event *Event, payload []byte) error {
	var session CheckoutSession
	if err := json.Unmarshal(event.Data.Object, &session); err != nil {
		return fmt.Errorf("invalid checkout session payload: %w", err)
	}

	bookingID := session.Metadata["bookingId"]
	if bookingID == "" {
		s.logger.WithField("session_id", session.ID).Warn("Checkout session completed without booking metadata")
		s.audit(&models.PaymentEvent{
			EventType:     models.PaymentEventIgnored,
			StripeEventID: &event.ID,
			SessionID:     &session.ID,
		})
		return nil
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if models.IsNotFound(err) {
		s.logger.WithFields(logrus.Fields{
			"booking_id": bookingID,
			"session_id": session.ID,
		}).Warn("Booking not found for completed checkout session")
		return nil
	}
	if err != nil {
		return err
	}

	alreadyPaid := booking.PaymentStatus != nil && *booking.PaymentStatus == models.PaymentStatusPaid

	var paymentIntent *string
	if session.PaymentIntent != "" {
		paymentIntent = &session.PaymentIntent
	}

	if err := s.bookingRepo.SetPaymentStatus(bookingID, models.PaymentStatusPaid, paymentIntent); err != nil {
		if models.IsNotFound(err) {
			return nil
		}
		return err
	}

	s.audit(&models.PaymentEvent{
		BookingID:       &bookingID,
		EventType:       models.PaymentEventPaid,
		StripeEventID:   &event.ID,
		SessionID:       &session.ID,
		PaymentIntentID: paymentIntent,
		RawBody:         rawBody(payload),
	})

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"session_id": session.ID,
	}).Info("Payment successful for booking")

	// Receipt goes out once, on the first effective transition
	if !alreadyPaid && s.notification != nil {
		booking.PaymentStatus = statusPtr(models.PaymentStatusPaid)
		s.notification.SendPaymentReceipt(booking)
	}

	return nil
}

// handlePaymentFailed marks the booking matching the payment intent
// failed. The event carries no booking metadata.
func (s *WebhookService) handlePaymentFailed(event *Event, payload []byte) error {
	var intent PaymentIntent
	if err := json.Unmarshal(event.Data.Object, &intent); err != nil {
		return fmt.Errorf("invalid payment intent payload: %w", err)
	}

	return s.applyByPaymentIntent(event, payload, intent.ID, models.PaymentStatusFailed, models.PaymentEventFailed)
}

// handleChargeRefunded marks the booking matching the charge's payment
// intent refunded.
func (s *WebhookService) handleChargeRefunded(event *Event, payload []byte) error {
	var charge Charge
	if err := json.Unmarshal(event.Data.Object, &charge); err != nil {
		return fmt.Errorf("invalid charge payload: %w", err)
	}

	return s.applyByPaymentIntent(event, payload, charge.PaymentIntent, models.PaymentStatusRefunded, models.PaymentEventRefunded)
}

func (s *WebhookService) applyByPaymentIntent(
	event *Event,
	payload []byte,
	paymentIntentID string,
	status models.PaymentStatus,
	eventType models.PaymentEventType,
) error {
	if paymentIntentID == "" {
		s.logger.WithField("event_type", event.Type).Warn("Webhook event without payment intent id")
		return nil
	}

	booking, err := s.bookingRepo.GetByPaymentIntentID(paymentIntentID)
	if models.IsNotFound(err) {
		s.logger.WithFields(logrus.Fields{
			"payment_intent_id": paymentIntentID,
			"event_type":        event.Type,
		}).Warn("No booking for payment intent, acknowledging webhook")
		s.audit(&models.PaymentEvent{
			EventType:       models.PaymentEventIgnored,
			StripeEventID:   &event.ID,
			PaymentIntentID: &paymentIntentID,
		})
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.bookingRepo.SetPaymentStatus(booking.ID, status, nil); err != nil {
		if models.IsNotFound(err) {
			return nil
		}
		return err
	}

	s.audit(&models.PaymentEvent{
		BookingID:       &booking.ID,
		EventType:       eventType,
		StripeEventID:   &event.ID,
		PaymentIntentID: &paymentIntentID,
		RawBody:         rawBody(payload),
	})

	s.logger.WithFields(logrus.Fields{
		"booking_id":        booking.ID,
		"payment_intent_id": paymentIntentID,
		"payment_status":    status,
	}).Info("Payment status reconciled")

	return nil
}

func (s *WebhookService) audit(event *models.PaymentEvent) {
	if s.eventRepo == nil {
		return
	}
	if err := s.eventRepo.Log(event); err != nil {
		s.logger.WithError(err).Warn("Failed to audit webhook event")
	}
}

func rawBody(payload []byte) *string {
	body := string(payload)
	return &body
}

func statusPtr(status models.PaymentStatus) *models.PaymentStatus {
	return &status
}
