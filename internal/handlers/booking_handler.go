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

// BookingHandler handles booking form submissions and reads
type BookingHandler struct {
	bookingRepo  *database.BookingRepository
	validator    *validator.FormValidator
	notification *services.NotificationService
	logger       *logrus.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(
	bookingRepo *database.BookingRepository,
	formValidator *validator.FormValidator,
	notification *services.NotificationService,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingRepo:  bookingRepo,
		validator:    formValidator,
		notification: notification,
		logger:       logger,
	}
}

// Create handles POST /bookings - booking form submission
func (h *BookingHandler) Create(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request: " + err.Error(),
		})
		return
	}

	err := h.validator.ValidateBooking(validator.BookingForm{
		PackageID: input.PackageID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
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

	booking := &models.Booking{
		PackageID: input.PackageID,
		Name:      input.Name,
		Email:     input.Email,
	}
	if input.Phone != "" {
		booking.Phone = &input.Phone
	}
	if input.Message != "" {
		booking.Message = &input.Message
	}

	if err := h.bookingRepo.Create(booking); err != nil {
		h.logger.WithError(err).Error("Failed to create booking")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to submit booking request.",
		})
		return
	}

	h.notification.SendBookingConfirmation(booking)

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Booking request submitted successfully! We'll contact you soon.",
		"bookingId": booking.ID,
		"packageId": booking.PackageID,
	})
}

// GetByID handles GET /bookings/:id - the success/cancel pages re-read
// booking state here. Reads only; payment status is never derived from
// the client-visible flow.
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.bookingRepo.GetByID(c.Param("id"))
	if err != nil {
		if models.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}
