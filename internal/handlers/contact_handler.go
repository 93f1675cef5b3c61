package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nbmtravel/booking-backend/internal/database"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/nbmtravel/booking-backend/internal/services"
	"github.com/nbmtravel/booking-backend/pkg/validator"
	"github.com/sirupsen/logrus"
)

// ContactHandler handles contact form submissions
type ContactHandler struct {
	contactRepo  *database.ContactRepository
	validator    *validator.FormValidator
	notification *services.NotificationService
	logger       *logrus.Logger
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(
	contactRepo *database.ContactRepository,
	formValidator *validator.FormValidator,
	notification *services.NotificationService,
	logger *logrus.Logger,
) *ContactHandler {
	return &ContactHandler{
		contactRepo:  contactRepo,
		validator:    formValidator,
		notification: notification,
		logger:       logger,
	}
}

// Create handles POST /contact
func (h *ContactHandler) Create(c *gin.Context) {
	var input models.ContactInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	err := h.validator.ValidateContact(validator.ContactForm{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	})
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": verr.First(),
				"fields":  verr.Fields,
			})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	msg := &models.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	}

	if err := h.contactRepo.Create(msg); err != nil {
		h.logger.WithError(err).Error("Failed to store contact message")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to send message.",
		})
		return
	}

	h.notification.SendContactNotification(msg)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Message sent successfully! We'll get back to you soon.",
	})
}
