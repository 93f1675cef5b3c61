package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/nbmtravel/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// WebhookHandler receives asynchronous payment provider callbacks
type WebhookHandler struct {
	webhookService *services.WebhookService
	logger         *logrus.Logger
}

// NewWebhookHandler creates a new WebhookHandler
func NewWebhookHandler(webhookService *services.WebhookService, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhookService: webhookService,
		logger:         logger,
	}
}

// Handle processes POST /webhooks/payment.
// The raw body is needed verbatim for signature verification.
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.WithError(err).Error("Failed to read webhook body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	err = h.webhookService.HandleEvent(c.Request.Context(), body, signature)
	if err != nil {
		if errors.Is(err, models.ErrBadSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "webhook signature verification failed"})
			return
		}
		if errors.Is(err, models.ErrProviderUnavailable) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider is not configured"})
			return
		}
		h.logger.WithError(err).Error("Webhook handler failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook handler failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
