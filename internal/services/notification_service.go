package services

import (
	"fmt"
	"strings"

	"github.com/nbmtravel/booking-backend/internal/config"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Message is a rendered notification ready for a mail/SMS transport
type Message struct {
	To      string
	From    string
	Subject string
	Body    string
}

// Sender delivers rendered messages. The real mail transport is an
// external collaborator; this repo ships only the log sink.
type Sender interface {
	Send(msg Message) error
}

// LogSender writes rendered messages to the structured log
type LogSender struct {
	logger *logrus.Logger
}

// NewLogSender creates a log-backed message sink
func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the rendered message
func (s *LogSender) Send(msg Message) error {
	s.logger.WithFields(logrus.Fields{
		"to":      msg.To,
		"from":    msg.From,
		"subject": msg.Subject,
	}).Info("Notification:\n" + msg.Body)
	return nil
}

// NotificationService renders confirmation messages for bookings and
// contact submissions. Rendering is pure; delivery failures are logged
// and never fail the originating request.
type NotificationService struct {
	config *config.MailConfig
	sender Sender
	logger *logrus.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.MailConfig, sender Sender, logger *logrus.Logger) *NotificationService {
	return &NotificationService{
		config: cfg,
		sender: sender,
		logger: logger,
	}
}

// RenderBookingConfirmation renders the auto-reply for a new booking
func (s *NotificationService) RenderBookingConfirmation(booking *models.Booking) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", booking.Name)
	fmt.Fprintf(&b, "Thank you for your booking request for %q.\n", booking.PackageTitle)
	b.WriteString("We have received your inquiry and will contact you shortly.\n\n")
	b.WriteString("Booking Details:\n")
	fmt.Fprintf(&b, "- Package: %s\n", booking.PackageTitle)
	fmt.Fprintf(&b, "- Email: %s\n", booking.Email)
	if booking.Phone != nil {
		fmt.Fprintf(&b, "- Phone: %s\n", *booking.Phone)
	}
	if booking.Message != nil {
		fmt.Fprintf(&b, "- Message: %s\n", *booking.Message)
	}
	fmt.Fprintf(&b, "\nBest regards,\n%s Team\n", s.config.SiteName)

	return Message{
		To:      booking.Email,
		From:    s.config.NoReplyEmail,
		Subject: "Booking Confirmation - " + booking.PackageTitle,
		Body:    b.String(),
	}
}

// RenderBookingOperatorNotice renders the operator copy for a new booking
func (s *NotificationService) RenderBookingOperatorNotice(booking *models.Booking) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "New booking request %s\n\n", booking.ID)
	fmt.Fprintf(&b, "Package: %s\n", booking.PackageTitle)
	fmt.Fprintf(&b, "Name: %s\n", booking.Name)
	fmt.Fprintf(&b, "Email: %s\n", booking.Email)
	if booking.Phone != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *booking.Phone)
	}
	if booking.Message != nil {
		fmt.Fprintf(&b, "\nMessage:\n%s\n", *booking.Message)
	}

	return Message{
		To:      s.config.OperatorEmail,
		From:    s.config.NoReplyEmail,
		Subject: "New Booking Request - " + booking.PackageTitle,
		Body:    b.String(),
	}
}

// RenderContactNotice renders the operator copy of a contact submission
func (s *NotificationService) RenderContactNotice(msg *models.ContactMessage) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\n\n", msg.Email)
	fmt.Fprintf(&b, "Message:\n%s\n", msg.Message)

	return Message{
		To:      s.config.OperatorEmail,
		From:    msg.Email,
		Subject: "New Contact Form Submission from " + msg.Name,
		Body:    b.String(),
	}
}

// RenderContactAutoReply renders the auto-reply for a contact submission
func (s *NotificationService) RenderContactAutoReply(msg *models.ContactMessage) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", msg.Name)
	fmt.Fprintf(&b, "Thank you for reaching out to %s!\n", s.config.SiteName)
	b.WriteString("We have received your message and will respond within 24-48 hours.\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s Team\n", s.config.SiteName)

	return Message{
		To:      msg.Email,
		From:    s.config.NoReplyEmail,
		Subject: "Thank you for contacting " + s.config.SiteName,
		Body:    b.String(),
	}
}

// RenderPaymentReceipt renders the receipt sent when a payment settles
func (s *NotificationService) RenderPaymentReceipt(booking *models.Booking) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", booking.Name)
	b.WriteString("Your payment has been received and your booking is confirmed.\n\n")
	fmt.Fprintf(&b, "Booking reference: %s\n", booking.ID)
	if booking.Amount != nil {
		fmt.Fprintf(&b, "Amount paid: %.2f\n", *booking.Amount)
	}
	fmt.Fprintf(&b, "\nBest regards,\n%s Team\n", s.config.SiteName)

	return Message{
		To:      booking.Email,
		From:    s.config.NoReplyEmail,
		Subject: "Payment Confirmed - " + s.config.SiteName,
		Body:    b.String(),
	}
}

// SendBookingConfirmation delivers the auto-reply and the operator copy
// for a freshly created booking
func (s *NotificationService) SendBookingConfirmation(booking *models.Booking) {
	s.send(s.RenderBookingConfirmation(booking))
	s.send(s.RenderBookingOperatorNotice(booking))
}

// SendContactNotification delivers the operator copy and the auto-reply
// for a contact submission
func (s *NotificationService) SendContactNotification(msg *models.ContactMessage) {
	s.send(s.RenderContactNotice(msg))
	s.send(s.RenderContactAutoReply(msg))
}

// SendPaymentReceipt delivers the payment receipt
func (s *NotificationService) SendPaymentReceipt(booking *models.Booking) {
	s.send(s.RenderPaymentReceipt(booking))
}

func (s *NotificationService) send(msg Message) {
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(msg); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"to":      msg.To,
			"subject": msg.Subject,
		}).Error("Failed to deliver notification")
	}
}
