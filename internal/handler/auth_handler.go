package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"estate-service/internal/middleware"
	"estate-service/internal/service"
	"estate-service/pkg/logger"
)

// AuthHandler serves the identity endpoints: resolving the current user and
// self-service role updates.
type AuthHandler struct {
	users *service.UserService
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// GetCurrentUser returns the internal user for the verified identity,
// creating a default tenant record on first sight.
func (h *AuthHandler) GetCurrentUser(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		log.Warn("No identity in request context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	user, err := h.users.Resolve(c.Request().Context(), *ident)
	if err != nil {
		return respondError(c, log, err, "Failed to fetch user")
	}

	log.Info("User resolved", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return c.JSON(http.StatusOK, user)
}

// UpdateRole handles the self-service role/profile change.
func (h *AuthHandler) UpdateRole(c echo.Context) error {
	log := logger.FromContext(c)

	ident, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	var req service.RoleUpdateInput
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.UpdateRole(c.Request().Context(), ident.UID, req)
	if err != nil {
		return respondError(c, log, err, "Failed to update user role")
	}

	log.Info("Role updated",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return c.JSON(http.StatusOK, user)
}
