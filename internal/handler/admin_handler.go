package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"estate-service/internal/middleware"
	"estate-service/internal/model"
	"estate-service/internal/service"
	"estate-service/pkg/logger"
	"estate-service/prometheus"
)

// AdminHandler serves the moderation surface: property review, broker
// verification, and the duplicate-attempt queue. Every operation requires
// the admin role; the services enforce it.
type AdminHandler struct {
	properties *service.PropertyService
	users      *service.UserService
}

func NewAdminHandler(properties *service.PropertyService, users *service.UserService) *AdminHandler {
	return &AdminHandler{properties: properties, users: users}
}

// AllProperties lists every property regardless of status.
func (h *AdminHandler) AllProperties(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	properties, err := h.properties.All(c.Request().Context(), ident.UID)
	if err != nil {
		return respondError(c, log, err, "Failed to fetch properties")
	}

	return c.JSON(http.StatusOK, properties)
}

// PendingProperties lists the moderation queue.
func (h *AdminHandler) PendingProperties(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	properties, err := h.properties.Pending(c.Request().Context(), ident.UID)
	if err != nil {
		return respondError(c, log, err, "Failed to fetch pending properties")
	}

	return c.JSON(http.StatusOK, properties)
}

// PropertiesNeedingReview lists properties flagged for re-confirmation.
func (h *AdminHandler) PropertiesNeedingReview(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	properties, err := h.properties.NeedingReview(c.Request().Context(), ident.UID)
	if err != nil {
		return respondError(c, log, err, "Failed to fetch properties needing review")
	}

	return c.JSON(http.StatusOK, properties)
}

// UpdatePropertyStatus applies the moderation decision. The optional
// isVerified flag lets an admin approve and verify in one call.
func (h *AdminHandler) UpdatePropertyStatus(c echo.Context) error {
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
		Status     model.Status `json:"status" validate:"required"`
		IsVerified *bool        `json:"isVerified"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	property, err := h.properties.Moderate(c.Request().Context(), ident.UID, id, req.Status, req.IsVerified)
	if err != nil {
		return respondError(c, log, err, "Failed to update property status")
	}

	prometheus.ModerationDecisionCounter.WithLabelValues(string(req.Status)).Inc()
	log.Info("Property moderated",
		zap.Uint("property_id", property.ID),
		zap.String("status", string(property.Status)),
		zap.Bool("verified", property.IsVerified))
	return c.JSON(http.StatusOK, property)
}

// PendingBrokers lists brokers awaiting verification.
func (h *AdminHandler) PendingBrokers(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	brokers, err := h.users.PendingBrokers(c.Request().Context(), ident.UID)
	if err != nil {
		return respondError(c, log, err, "Failed to fetch pending brokers")
	}

	return c.JSON(http.StatusOK, brokers)
}

// VerifyBroker flips the verification flag on a broker account.
func (h *AdminHandler) VerifyBroker(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	var req struct {
		IsVerified *bool `json:"isVerified"`
	}
	if err := c.Bind(&req); err != nil || req.IsVerified == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "isVerified must be a boolean"})
	}

	broker, err := h.users.SetBrokerVerification(c.Request().Context(), ident.UID, c.Param("id"), *req.IsVerified)
	if err != nil {
		return respondError(c, log, err, "Failed to update broker verification")
	}

	prometheus.BrokerVerificationCounter.WithLabelValues(strconv.FormatBool(*req.IsVerified)).Inc()
	log.Info("Broker verification updated",
		zap.String("broker_id", broker.ID),
		zap.Bool("verified", broker.IsVerified))
	return c.JSON(http.StatusOK, broker)
}

// DuplicateListings lists unreviewed duplicate-attempt audit records.
func (h *AdminHandler) DuplicateListings(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	duplicates, err := h.properties.Duplicates(c.Request().Context(), ident.UID)
	if err != nil {
		return respondError(c, log, err, "Failed to fetch duplicate listings")
	}

	return c.JSON(http.StatusOK, duplicates)
}

// ReviewDuplicate marks a duplicate attempt reviewed.
func (h *AdminHandler) ReviewDuplicate(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	id, err := paramUint(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid duplicate id"})
	}

	duplicate, err := h.properties.ReviewDuplicate(c.Request().Context(), ident.UID, id)
	if err != nil {
		return respondError(c, log, err, "Failed to review duplicate listing")
	}

	return c.JSON(http.StatusOK, duplicate)
}
