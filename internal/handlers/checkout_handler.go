package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/nbmtravel/booking-backend/internal/services"
	"github.com/sirupsen/logrus"
)

// CheckoutRequest is the body of POST /checkout
type CheckoutRequest struct {
	PackageID string `json:"packageId"`
	BookingID string `json:"bookingId"`
}

// CheckoutHandler drives hosted checkout session creation
type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	logger          *logrus.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *services.CheckoutService, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// Create handles POST /checkout
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	if req.PackageID == "" || req.BookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Package ID and Booking ID are required"})
		return
	}

	result, err := h.checkoutService.CreateSession(c.Request.Context(), req.PackageID, req.BookingID)
	if err != nil {
		var nfe *models.NotFoundError
		if errors.As(err, &nfe) {
			c.JSON(http.StatusNotFound, gin.H{"error": nfe.Error()})
			return
		}
		if errors.Is(err, models.ErrProviderUnavailable) {
			h.logger.WithError(err).Error("Payment provider unavailable")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment provider is not configured or unreachable"})
			return
		}
		h.logger.WithError(err).Error("Failed to create checkout session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create checkout session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": result.SessionID,
		"url":       result.URL,
	})
}
