package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nbmtravel/booking-backend/internal/database"
	"github.com/nbmtravel/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// CatalogHandler serves the read-only destination and package catalog
type CatalogHandler struct {
	destinationRepo *database.DestinationRepository
	packageRepo     *database.PackageRepository
	logger          *logrus.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	destinationRepo *database.DestinationRepository,
	packageRepo *database.PackageRepository,
	logger *logrus.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		destinationRepo: destinationRepo,
		packageRepo:     packageRepo,
		logger:          logger,
	}
}

// ListDestinations handles GET /destinations
func (h *CatalogHandler) ListDestinations(c *gin.Context) {
	destinations, err := h.destinationRepo.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list destinations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list destinations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"destinations": destinations})
}

// GetDestination handles GET /destinations/:slug, including its packages
func (h *CatalogHandler) GetDestination(c *gin.Context) {
	destination, err := h.destinationRepo.GetBySlug(c.Param("slug"))
	if err != nil {
		if models.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "destination not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get destination")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get destination"})
		return
	}

	packages, err := h.packageRepo.ListByDestination(destination.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list destination packages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get destination"})
		return
	}
	destination.Packages = packages

	c.JSON(http.StatusOK, destination)
}

// ListPackages handles GET /packages
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.packageRepo.List()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list packages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list packages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

// GetPackage handles GET /packages/:slug
func (h *CatalogHandler) GetPackage(c *gin.Context) {
	pkg, err := h.packageRepo.GetBySlug(c.Param("slug"))
	if err != nil {
		if models.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "package not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get package")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get package"})
		return
	}

	c.JSON(http.StatusOK, pkg)
}
