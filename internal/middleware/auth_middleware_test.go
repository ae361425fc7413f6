package middleware_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"career-guide/internal/dto"
	"career-guide/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockAuthService is a function-field AuthService for middleware tests.
type ManualMockAuthService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func (m *ManualMockAuthService) CreateAccessToken(ctx context.Context, userID, email, role string) (string, error) {
	panic("not implemented in mock")
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		validate       func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
		expectedStatus int
		expectedID     dto.Identity
	}{
		{
			name:           "No Auth Header",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Malformed Auth Header - No Bearer",
			authHeader:     "Basic some_token",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:           "Bearer No Token",
			authHeader:     "Bearer ",
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Invalid Token",
			authHeader: "Bearer invalid_token",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return nil, errors.New("invalid token")
			},
			expectedStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "Valid User Token",
			authHeader: "Bearer valid_access_token",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				assert.Equal(t, "valid_access_token", tokenString)
				return &dto.AuthClaims{UserID: "user123", TokenType: "access"}, nil
			},
			expectedStatus: fiber.StatusOK,
			expectedID:     dto.Identity{UserID: "user123", Role: dto.RoleUser},
		},
		{
			name:       "Valid Admin Token",
			authHeader: "Bearer admin_token",
			validate: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
				return &dto.AuthClaims{UserID: "admin1", Role: dto.RoleAdmin, TokenType: "access"}, nil
			},
			expectedStatus: fiber.StatusOK,
			expectedID:     dto.Identity{UserID: "admin1", Role: dto.RoleAdmin},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			authSvc := &ManualMockAuthService{ValidateJWTFunc: tc.validate}

			var got dto.Identity
			app.Get("/protected", middleware.Protected(authSvc), func(c *fiber.Ctx) error {
				id, ok := middleware.IdentityFrom(c)
				require.True(t, ok)
				got = id
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedStatus, resp.StatusCode)
			assert.Equal(t, tc.expectedID, got)
		})
	}
}

func TestIdentityFrom_Missing(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		_, ok := middleware.IdentityFrom(c)
		assert.False(t, ok)
		return c.SendStatus(fiber.StatusNoContent)
	})
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
