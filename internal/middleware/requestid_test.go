package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"estate-service/pkg/logger"
)

func TestRequestIDHonorsIncomingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(logger.RequestIDKey, "upstream-id-42")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestIDMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := rec.Header().Get(logger.RequestIDKey); got != "upstream-id-42" {
		t.Errorf("response request id = %q, want the upstream value", got)
	}
	if got, _ := c.Get(logger.RequestIDKey).(string); got != "upstream-id-42" {
		t.Errorf("context request id = %q, want the upstream value", got)
	}
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestIDMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	id := rec.Header().Get(logger.RequestIDKey)
	if id == "" {
		t.Fatal("a request id should be generated when none is supplied")
	}
	if got := c.Request().Header.Get(logger.RequestIDKey); got != id {
		t.Errorf("request header id = %q, response id = %q; want them equal", got, id)
	}
}
