package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"estate-service/internal/middleware"
	"estate-service/internal/model"
	"estate-service/internal/service"
	"estate-service/pkg/logger"
	"estate-service/prometheus"
)

// PropertyHandler serves the public listing feed and the owner-facing
// listing operations.
type PropertyHandler struct {
	properties *service.PropertyService
}

func NewPropertyHandler(properties *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// Create handles listing creation for landlords and brokers.
func (h *PropertyHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	var req service.CreatePropertyInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	property, err := h.properties.Create(c.Request().Context(), ident.UID, req)
	if err != nil {
		var dup *service.DuplicateListingError
		if errors.As(err, &dup) {
			prometheus.DuplicateAttemptsCounter.Inc()
		}
		return respondError(c, log, err, "Failed to create property")
	}

	prometheus.RecordPropertyOperation("create")
	log.Info("Property created",
		zap.Uint("property_id", property.ID),
		zap.String("title", property.Title),
		zap.String("owner_id", property.OwnerID))
	return c.JSON(http.StatusCreated, property)
}

// List returns the public feed: approved and active listings.
func (h *PropertyHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	properties, err := h.properties.ApprovedFeed(c.Request().Context())
	if err != nil {
		return respondError(c, log, err, "Failed to fetch properties")
	}

	log.Info("Properties retrieved", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// Search narrows the public feed by the provided query filters.
func (h *PropertyHandler) Search(c echo.Context) error {
	log := logger.FromContext(c)

	var filters model.PropertySearch
	if err := c.Bind(&filters); err != nil {
		log.Warn("Invalid search filters", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid search filters"})
	}

	properties, err := h.properties.Search(c.Request().Context(), filters)
	if err != nil {
		return respondError(c, log, err, "Failed to search properties")
	}

	log.Info("Search completed", zap.Int("count", len(properties)))
	return c.JSON(http.StatusOK, properties)
}

// GetByID returns one listing with owner and images attached.
func (h *PropertyHandler) GetByID(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := paramUint(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid property id"})
	}

	property, err := h.properties.ByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, log, err, "Failed to fetch property")
	}

	return c.JSON(http.StatusOK, property)
}

// OwnerProperties returns the requester's own listings, all statuses,
// most recent first.
func (h *PropertyHandler) OwnerProperties(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	properties, err := h.properties.ByOwner(c.Request().Context(), ident.UID, c.Param("ownerId"))
	if err != nil {
		return respondError(c, log, err, "Failed to fetch properties")
	}

	return c.JSON(http.StatusOK, properties)
}

// UpdateListingStatus applies an owner-controlled lifecycle change.
func (h *PropertyHandler) UpdateListingStatus(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid property id"})
	}

	var req struct {
		ListingStatus model.ListingStatus `json:"listingStatus" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	property, err := h.properties.UpdateListingStatus(c.Request().Context(), ident.UID, id, req.ListingStatus)
	if err != nil {
		return respondError(c, log, err, "Failed to update property status")
	}

	prometheus.RecordPropertyOperation("listing_status")
	log.Info("Listing status updated",
		zap.Uint("property_id", property.ID),
		zap.String("listing_status", string(property.ListingStatus)))
	return c.JSON(http.StatusOK, property)
}

// MarkForReview sets the persisted needs-review flag on a listing.
func (h *PropertyHandler) MarkForReview(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid property id"})
	}

	property, err := h.properties.MarkForReview(c.Request().Context(), ident.UID, id)
	if err != nil {
		return respondError(c, log, err, "Failed to mark property for review")
	}

	prometheus.RecordPropertyOperation("mark_review")
	return c.JSON(http.StatusOK, property)
}
