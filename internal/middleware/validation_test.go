package middleware_test

import (
	"net/http/httptest"
	"testing"

	"career-guide/internal/dto"
	"career-guide/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateListQuery(t *testing.T) {
	vm := middleware.NewValidationMiddleware(nil)

	tests := []struct {
		name   string
		target string
		status int
		want   dto.ListAssessmentsQuery
	}{
		{"defaults", "/assessments", fiber.StatusOK, dto.ListAssessmentsQuery{}},
		{"filters", "/assessments?status=completed&type=skills&limit=5&offset=10", fiber.StatusOK,
			dto.ListAssessmentsQuery{Status: "completed", Type: "skills", Limit: 5, Offset: 10}},
		{"bad status", "/assessments?status=finished", fiber.StatusBadRequest, dto.ListAssessmentsQuery{}},
		{"limit too large", "/assessments?limit=500", fiber.StatusBadRequest, dto.ListAssessmentsQuery{}},
		{"negative offset", "/assessments?offset=-1", fiber.StatusBadRequest, dto.ListAssessmentsQuery{}},
		{"non numeric limit", "/assessments?limit=ten", fiber.StatusBadRequest, dto.ListAssessmentsQuery{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			var got dto.ListAssessmentsQuery
			app.Get("/assessments", vm.ValidateListQuery(), func(c *fiber.Ctx) error {
				got = middleware.ListQueryFrom(c)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", tc.target, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.want, got)
		})
	}
}
