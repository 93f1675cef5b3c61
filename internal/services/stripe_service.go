package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nbmtravel/booking-backend/internal/config"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// webhookTolerance bounds the accepted age of a signed webhook timestamp
const webhookTolerance = 5 * time.Minute

// CheckoutProvider is the hosted-payment capability consumed by the
// checkout and webhook services. Injected so the reconciler can be
// tested against a fake provider.
type CheckoutProvider interface {
	IsConfigured() bool
	CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error)
	ConstructEvent(payload []byte, sigHeader string) (*Event, error)
}

// CheckoutSessionParams describes the single line item and callbacks of a
// hosted checkout session
type CheckoutSessionParams struct {
	ProductName   string
	Description   string
	ImageURL      string
	UnitAmount    int64 // minor currency units
	Currency      string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is the provider's representation of a hosted checkout
// session. It doubles as the decoded object of checkout webhook events.
type CheckoutSession struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	PaymentIntent string            `json:"payment_intent"`
	Metadata      map[string]string `json:"metadata"`
}

// PaymentIntent is the decoded object of payment_intent webhook events
type PaymentIntent struct {
	ID string `json:"id"`
}

// Charge is the decoded object of charge webhook events
type Charge struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
}

// Event is a verified webhook notification from the payment provider
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object json.RawMessage `json:"object"`
	} `json:"data"`
}

// stripeError mirrors the provider's error response envelope
type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// StripeService talks to the Stripe HTTP API and verifies webhook
// signatures. The secret key is never logged.
type StripeService struct {
	config *config.StripeConfig
	logger *logrus.Logger
	client *http.Client
}

// NewStripeService creates a new Stripe gateway service
func NewStripeService(cfg *config.StripeConfig, logger *logrus.Logger) *StripeService {
	return &StripeService{
		config: cfg,
		logger: logger,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// IsConfigured returns true if the gateway has a secret key
func (s *StripeService) IsConfigured() bool {
	return s.config.SecretKey != ""
}

// CreateCheckoutSession opens a hosted checkout session for one line item
// and returns its id and redirect URL.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, params *CheckoutSessionParams) (*CheckoutSession, error) {
	if !s.IsConfigured() {
		return nil, models.ErrProviderUnavailable
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", params.Currency)
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(params.UnitAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", params.ProductName)
	if params.Description != "" {
		form.Set("line_items[0][price_data][product_data][description]", params.Description)
	}
	if params.ImageURL != "" {
		form.Set("line_items[0][price_data][product_data][images][0]", params.ImageURL)
	}
	form.Set("success_url", params.SuccessURL)
	form.Set("cancel_url", params.CancelURL)
	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	for key, value := range params.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	endpoint := s.config.APIBaseURL + "/v1/checkout/sessions"

	s.logger.WithFields(logrus.Fields{
		"product":     params.ProductName,
		"unit_amount": params.UnitAmount,
		"currency":    params.Currency,
	}).Info("Creating checkout session")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.WithError(err).Error("Failed to call payment gateway")
		return nil, fmt.Errorf("%w: %v", models.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var gwErr stripeError
		if err := json.Unmarshal(body, &gwErr); err == nil && gwErr.Error.Message != "" {
			s.logger.WithFields(logrus.Fields{
				"status_code": resp.StatusCode,
				"error_type":  gwErr.Error.Type,
				"message":     gwErr.Error.Message,
			}).Error("Payment gateway rejected checkout session")
			return nil, fmt.Errorf("%w: %s", models.ErrProviderUnavailable, gwErr.Error.Message)
		}
		return nil, fmt.Errorf("%w: gateway returned status %d", models.ErrProviderUnavailable, resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("%w: no session returned", models.ErrProviderUnavailable)
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": session.ID,
	}).Info("Checkout session created")

	return &session, nil
}

// ConstructEvent verifies the signature header against the webhook
// signing secret and parses the payload into an Event.
//
// The header carries a timestamp and one or more HMAC-SHA256 signatures:
// "t=<unix>,v1=<hex>". The signed content is "<timestamp>.<payload>".
func (s *StripeService) ConstructEvent(payload []byte, sigHeader string) (*Event, error) {
	if s.config.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook secret not configured", models.ErrBadSignature)
	}
	if sigHeader == "" {
		return nil, fmt.Errorf("%w: missing signature header", models.ErrBadSignature)
	}

	var timestamp int64
	var signatures [][]byte

	for _, pair := range strings.Split(sigHeader, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: malformed timestamp", models.ErrBadSignature)
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(parts[1])
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return nil, fmt.Errorf("%w: malformed signature header", models.ErrBadSignature)
	}

	if d := time.Since(time.Unix(timestamp, 0)); d > webhookTolerance || d < -webhookTolerance {
		return nil, fmt.Errorf("%w: timestamp outside tolerance", models.ErrBadSignature)
	}

	mac := hmac.New(sha256.New, []byte(s.config.WebhookSecret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	valid := false
	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			valid = true
			break
		}
	}
	if !valid {
		return nil, models.ErrBadSignature
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("invalid event payload: %w", err)
	}

	return &event, nil
}
