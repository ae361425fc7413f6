package middleware

import (
	"career-guide/internal/domain"
	"career-guide/internal/dto"
	"career-guide/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const validatedListQueryKey = "validated_list_query"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware(v *validation.Validator) *ValidationMiddleware {
	if v == nil {
		v = validation.NewValidator()
	}
	return &ValidationMiddleware{validator: v}
}

// ValidateListQuery parses and validates the filters and pagination of the
// assessment list endpoint.
func (vm *ValidationMiddleware) ValidateListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.ListAssessmentsQuery
		if err := c.QueryParser(&q); err != nil {
			return domain.ValidationErrors{domain.NewValidationError("query", "query parameters are malformed")}
		}
		if errs := vm.validator.ValidateListQuery(&q); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler
		}

		// Store validated value in context for handlers to use
		c.Locals(validatedListQueryKey, q)
		return c.Next()
	}
}

// ListQueryFrom returns the query stored by ValidateListQuery.
func ListQueryFrom(c *fiber.Ctx) dto.ListAssessmentsQuery {
	q, _ := c.Locals(validatedListQueryKey).(dto.ListAssessmentsQuery)
	return q
}
