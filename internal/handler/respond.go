package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"estate-service/internal/service"
)

// respondError maps the service error taxonomy onto HTTP responses. Anything
// outside the taxonomy is an infrastructure failure and becomes a 500 with
// the generic fallback message.
func respondError(c echo.Context, log *zap.Logger, err error, fallback string) error {
	var dup *service.DuplicateListingError
	switch {
	case errors.As(err, &dup):
		return c.JSON(http.StatusConflict, echo.Map{
			"message":            "A listing for this property already exists. Please contact support if you believe this is an error.",
			"existingPropertyId": dup.ExistingPropertyID,
		})
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	default:
		log.Error("Request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": fallback})
	}
}

func paramUint(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
