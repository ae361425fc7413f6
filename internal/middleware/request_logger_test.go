package middleware_test

import (
	"net/http/httptest"
	"testing"

	"career-guide/internal/domain"
	"career-guide/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLogger(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return domain.NewAssessmentNotFoundError("a1") })

	t.Run("generates request id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		_, parseErr := uuid.Parse(resp.Header.Get(middleware.RequestIDHeader))
		assert.NoError(t, parseErr)
	})

	t.Run("keeps client request id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/ok", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-42")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, "req-42", resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("error status is preserved", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}
