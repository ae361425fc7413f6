package middleware

import (
	"strings"

	"career-guide/internal/dto"
	"career-guide/internal/logger"
	"career-guide/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
	RoleKey             = "role"
)

func unauthorized(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Code:    code,
		Message: message,
		Status:  fiber.StatusUnauthorized,
	})
}

// Protected is a middleware function that protects routes by requiring a valid JWT.
// It validates the token using the provided AuthService and stores the caller's
// user id and role in the context.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return unauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is missing")
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return unauthorized(c, "INVALID_AUTH_SCHEME", "Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return unauthorized(c, "EMPTY_TOKEN", "Token is empty")
		}

		claims, err := authService.ValidateJWT(c.Context(), tokenString)
		if err != nil {
			logger.Get().Debug("JWT validation error", zap.Error(err), zap.String("path", c.Path()))
			return unauthorized(c, "INVALID_TOKEN", "Token is invalid or expired")
		}

		role := claims.Role
		if role == "" {
			role = dto.RoleUser
		}
		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RoleKey, role)

		return c.Next()
	}
}

// IdentityFrom returns the caller stored by Protected.
func IdentityFrom(c *fiber.Ctx) (dto.Identity, bool) {
	userID, ok := c.Locals(UserIDKey).(string)
	if !ok || userID == "" {
		return dto.Identity{}, false
	}
	role, _ := c.Locals(RoleKey).(string)
	return dto.Identity{UserID: userID, Role: role}, true
}
