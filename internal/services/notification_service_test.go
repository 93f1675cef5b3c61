package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nbmtravel/booking-backend/internal/config"
	"github.com/nbmtravel/booking-backend/internal/models"
)

func newNotificationService(sender Sender) *NotificationService {
	return NewNotificationService(&config.MailConfig{
		SiteName:      "NBM Travel",
		NoReplyEmail:  "noreply@example.com",
		OperatorEmail: "ops@example.com",
	}, sender, newTestLogger())
}

func TestRenderBookingConfirmation(t *testing.T) {
	service := newNotificationService(nil)
	phone := "+15550100"
	note := "Window seat please"

	booking := &models.Booking{
		ID:           "booking-1",
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		Phone:        &phone,
		Message:      &note,
		PackageTitle: "Bali Tropical Paradise",
	}

	msg := service.RenderBookingConfirmation(booking)
	assert.Equal(t, "jane@example.com", msg.To)
	assert.Equal(t, "noreply@example.com", msg.From)
	assert.Equal(t, "Booking Confirmation - Bali Tropical Paradise", msg.Subject)
	assert.Contains(t, msg.Body, "Dear Jane Doe")
	assert.Contains(t, msg.Body, "Bali Tropical Paradise")
	assert.Contains(t, msg.Body, "+15550100")
	assert.Contains(t, msg.Body, "Window seat please")
	assert.Contains(t, msg.Body, "NBM Travel Team")
}

func TestRenderBookingConfirmation_OptionalFieldsOmitted(t *testing.T) {
	service := newNotificationService(nil)

	msg := service.RenderBookingConfirmation(&models.Booking{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PackageTitle: "Tokyo Adventure",
	})
	assert.NotContains(t, msg.Body, "Phone:")
	assert.NotContains(t, msg.Body, "Message:")
}

func TestRenderContactMessages(t *testing.T) {
	service := newNotificationService(nil)

	contact := &models.ContactMessage{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Do you run winter tours?",
	}

	notice := service.RenderContactNotice(contact)
	assert.Equal(t, "ops@example.com", notice.To)
	assert.Equal(t, "jane@example.com", notice.From)
	assert.Equal(t, "New Contact Form Submission from Jane Doe", notice.Subject)
	assert.Contains(t, notice.Body, "Do you run winter tours?")

	reply := service.RenderContactAutoReply(contact)
	assert.Equal(t, "jane@example.com", reply.To)
	assert.Equal(t, "noreply@example.com", reply.From)
	assert.Equal(t, "Thank you for contacting NBM Travel", reply.Subject)
	assert.Contains(t, reply.Body, "24-48 hours")
}

func TestRenderPaymentReceipt(t *testing.T) {
	service := newNotificationService(nil)
	amount := 1899.99

	msg := service.RenderPaymentReceipt(&models.Booking{
		ID:     "booking-1",
		Name:   "Jane Doe",
		Email:  "jane@example.com",
		Amount: &amount,
	})
	assert.Equal(t, "Payment Confirmed - NBM Travel", msg.Subject)
	assert.Contains(t, msg.Body, "booking-1")
	assert.Contains(t, msg.Body, "1899.99")
}

func TestSendBookingConfirmation(t *testing.T) {
	sender := &recordingSender{}
	service := newNotificationService(sender)

	service.SendBookingConfirmation(&models.Booking{
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PackageTitle: "Tokyo Adventure",
	})

	// Auto-reply to the customer plus the operator copy
	require.Len(t, sender.messages, 2)
	assert.Equal(t, "jane@example.com", sender.messages[0].To)
	assert.Equal(t, "ops@example.com", sender.messages[1].To)
}

func TestSendContactNotification(t *testing.T) {
	sender := &recordingSender{}
	service := newNotificationService(sender)

	service.SendContactNotification(&models.ContactMessage{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Do you run winter tours?",
	})

	require.Len(t, sender.messages, 2)
	assert.Equal(t, "ops@example.com", sender.messages[0].To)
	assert.Equal(t, "jane@example.com", sender.messages[1].To)
}

// failingSender always errors, to prove delivery failures never propagate
type failingSender struct{}

func (failingSender) Send(msg Message) error {
	return fmt.Errorf("smtp connection refused")
}

func TestSendFailuresAreSwallowed(t *testing.T) {
	service := newNotificationService(failingSender{})

	// Must not panic or surface the transport error
	service.SendBookingConfirmation(&models.Booking{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	service.SendPaymentReceipt(&models.Booking{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
}

func TestNilSenderIsSafe(t *testing.T) {
	service := newNotificationService(nil)

	service.SendBookingConfirmation(&models.Booking{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
}
