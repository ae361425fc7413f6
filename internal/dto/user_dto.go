package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in access tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// Identity is the authenticated caller as seen by handlers.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// PaginationInfo defines pagination details for responses.
type PaginationInfo struct {
	TotalItems  int64 `json:"total_items"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// NewPaginationInfo derives page numbers from a limit/offset window.
func NewPaginationInfo(total int64, limit, offset int) PaginationInfo {
	info := PaginationInfo{TotalItems: total, Limit: limit, Offset: offset}
	if limit > 0 {
		info.CurrentPage = offset/limit + 1
		info.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return info
}
