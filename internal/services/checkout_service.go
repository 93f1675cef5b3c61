package services

import (
	"context"
	"fmt"
	"math"

	"github.com/nbmtravel/booking-backend/internal/database"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// CheckoutResult is returned to the client to drive the redirect
type CheckoutResult struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// CheckoutService opens hosted checkout sessions for bookings and records
// the external session reference on the booking. It never writes payment
// status; that is the webhook reconciler's job alone.
type CheckoutService struct {
	packageRepo *database.PackageRepository
	bookingRepo *database.BookingRepository
	eventRepo   *database.PaymentEventRepository
	provider    CheckoutProvider
	baseURL     string
	currency    string
	logger      *logrus.Logger
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	packageRepo *database.PackageRepository,
	bookingRepo *database.BookingRepository,
	eventRepo *database.PaymentEventRepository,
	provider CheckoutProvider,
	baseURL string,
	currency string,
	logger *logrus.Logger,
) *CheckoutService {
	return &CheckoutService{
		packageRepo: packageRepo,
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		provider:    provider,
		baseURL:     baseURL,
		currency:    currency,
		logger:      logger,
	}
}

// AmountInMinorUnits converts a decimal price to integer minor currency
// units, avoiding floating point settlement errors.
func AmountInMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateSession opens a hosted checkout session for the given booking and
// package, then persists the session id and amount snapshot on the booking.
func (s *CheckoutService) CreateSession(ctx context.Context, packageID, bookingID string) (*CheckoutResult, error) {
	if s.provider == nil || !s.provider.IsConfigured() {
		return nil, models.ErrProviderUnavailable
	}

	pkg, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	params := &CheckoutSessionParams{
		ProductName:   pkg.Title,
		Description:   "Travel Package Booking",
		UnitAmount:    AmountInMinorUnits(pkg.Price),
		Currency:      s.currency,
		CustomerEmail: booking.Email,
		SuccessURL:    fmt.Sprintf("%s/booking/success?session_id={CHECKOUT_SESSION_ID}", s.baseURL),
		CancelURL:     fmt.Sprintf("%s/booking/cancel?booking_id=%s", s.baseURL, booking.ID),
		Metadata: map[string]string{
			"bookingId": booking.ID,
			"packageId": pkg.ID,
		},
	}
	if len(pkg.Images) > 0 {
		params.ImageURL = pkg.Images[0]
	}

	session, err := s.provider.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateCheckoutSession(booking.ID, session.ID, pkg.Price); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"session_id": session.ID,
		}).Error("Failed to record checkout session on booking")
		return nil, err
	}

	s.auditSessionCreated(booking.ID, session.ID)

	s.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"package_id": pkg.ID,
		"session_id": session.ID,
		"amount":     params.UnitAmount,
	}).Info("Checkout session recorded on booking")

	return &CheckoutResult{SessionID: session.ID, URL: session.URL}, nil
}

func (s *CheckoutService) auditSessionCreated(bookingID, sessionID string) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.Log(&models.PaymentEvent{
		BookingID: &bookingID,
		EventType: models.PaymentEventCheckoutCreated,
		SessionID: &sessionID,
	})
	if err != nil {
		s.logger.WithError(err).Warn("Failed to audit checkout session creation")
	}
}
