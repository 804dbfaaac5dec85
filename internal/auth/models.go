package auth

import (
	"github.com/golang-jwt/jwt/v4"

	"gradely/internal/users"
)

// Identity is the decoded access-token payload: who is calling and what
// role they hold. It is immutable once minted; role and email reflect the
// account record as of the last login or refresh, not the current row.
type Identity struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Role   users.Role `json:"role"`
}

// accessClaims is the wire form of an Identity. Subject carries the user id.
type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// refreshClaims carries only the subject id. A refresh token is never used
// for authorization decisions, only to mint a new pair.
type refreshClaims struct {
	jwt.RegisteredClaims
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegisterAdminRequest bootstraps the first admin account. The route is
// public; see the router for the caveats.
type RegisterAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserSummary represents user data in responses (without sensitive info)
type UserSummary struct {
	ID     string       `json:"id"`
	Email  string       `json:"email"`
	Role   users.Role   `json:"role"`
	Status users.Status `json:"status,omitempty"`
}

// TokenPair represents a freshly minted access and refresh token. The pair
// travels to the client only inside cookies, never in a response body.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// LoginResult is what the service hands back to the transport layer.
type LoginResult struct {
	User   UserSummary
	Tokens TokenPair
}
