package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"estate-service/internal/model"
	"estate-service/pkg/logger"
	"estate-service/prometheus"
)

const identityKey = "identity"

// TokenVerifier validates a bearer token and returns the verified identity.
// Satisfied by firebaseauth.Verifier; tests supply a fake.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*model.Identity, error)
}

// Auth validates the Firebase bearer token and stores the identity in the
// request context.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)
			prometheus.AuthAttemptsCounter.Inc()

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing authorization token"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid authorization format, expected Bearer token"})
			}

			ident, err := verifier.Verify(c.Request().Context(), parts[1])
			if err != nil {
				prometheus.AuthErrorsCounter.Inc()
				log.Error("Token verification failed", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
			}

			prometheus.AuthSuccessCounter.Inc()
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// IdentityFromContext retrieves the verified identity stored by Auth.
func IdentityFromContext(c echo.Context) (*model.Identity, bool) {
	ident, ok := c.Get(identityKey).(*model.Identity)
	return ident, ok
}
