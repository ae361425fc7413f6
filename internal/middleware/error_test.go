package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"career-guide/internal/domain"
	"career-guide/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runWithError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error { return err })

	resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, testErr)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.NewNotFoundError("nothing"), 404, "NOT_FOUND"},
		{"assessment not found", domain.NewAssessmentNotFoundError("a1"), 404, "ASSESSMENT_NOT_FOUND"},
		{"forbidden", domain.NewForbiddenError("not yours"), 403, "FORBIDDEN"},
		{"unauthorized", domain.NewUnauthorizedError("who are you"), 401, "UNAUTHORIZED"},
		{"invalid input", domain.NewInvalidInputError("bad"), 400, "INVALID_INPUT"},
		{"state transition", domain.NewInvalidStateTransitionError("start", domain.StatusCompleted), 409, "INVALID_STATE_TRANSITION"},
		{"concurrent modification", domain.NewConcurrentModificationError("a1"), 409, "CONCURRENT_MODIFICATION"},
		{"llm", domain.NewLLMServiceError(errors.New("down")), 503, "LLM_SERVICE_ERROR"},
		{"internal", domain.NewInternalError("db", errors.New("boom")), 500, "INTERNAL_ERROR"},
		{"wrapped", fmt.Errorf("while saving: %w", domain.NewForbiddenError("no")), 403, "FORBIDDEN"},
		{"fiber", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405, "HTTP_ERROR"},
		{"unknown", errors.New("mystery"), 500, "INTERNAL_ERROR"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := runWithError(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body["code"])
			assert.Equal(t, float64(tc.status), body["status"])
		})
	}
}

func TestErrorHandler_StateTransitionDetails(t *testing.T) {
	_, body := runWithError(t, domain.NewInvalidStateTransitionError("complete", domain.StatusDraft))
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "complete", details["operation"])
	assert.Equal(t, "draft", details["from"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	status, body := runWithError(t, domain.ValidationErrors{
		domain.NewMissingFieldError("title"),
		domain.NewInvalidFormatError("assessment_type", "quiz"),
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	assert.Len(t, errs, 2)
	first := errs[0].(map[string]interface{})
	assert.Equal(t, "title", first["field"])
	assert.Equal(t, "MISSING_FIELD", first["code"])
}
