package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gradely/internal/shared/utils/response"
	"gradely/internal/users"
)

// ErrorKind tags an authorization failure. Kinds cross architectural layers
// instead of panics or thrown exceptions; each transport translates the tag
// to its own failure response.
type ErrorKind int

const (
	KindUnauthenticated ErrorKind = iota + 1 // no valid identity (401)
	KindForbidden                            // identity ok, role/ownership/status check failed (403)
	KindBadRequest                           // required target parameter missing (400)
	KindNotFound                             // referenced account/profile does not exist (404)
)

// AuthError is the tagged failure returned by the authorization gate and the
// refresh flow.
type AuthError struct {
	Kind    ErrorKind
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// StatusCode maps the kind to its HTTP-equivalent status.
func (e *AuthError) StatusCode() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(message string) *AuthError {
	return &AuthError{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *AuthError {
	return &AuthError{Kind: KindForbidden, Message: message}
}

func BadRequest(message string) *AuthError {
	return &AuthError{Kind: KindBadRequest, Message: message}
}

func NotFound(message string) *AuthError {
	return &AuthError{Kind: KindNotFound, Message: message}
}

// RespondError translates an AuthError to the standard API envelope. Page
// transports never use this; auth failures on pages become redirects in the
// route middleware instead.
func RespondError(c *gin.Context, err *AuthError) {
	response.RespondJSON(c, "error", err.StatusCode(), err.Message, nil, nil)
}

// RequireAuth returns the caller's identity or an Unauthenticated error.
func (g *Guard) RequireAuth(c *gin.Context) (*Identity, *AuthError) {
	identity := g.CurrentUser(c)
	if identity == nil {
		return nil, Unauthenticated("Authentication required")
	}
	return identity, nil
}

// RequireRole returns the caller's identity if its role is in the allowed
// set. The Forbidden message names the role(s) that would have been needed.
func (g *Guard) RequireRole(c *gin.Context, allowedRoles ...users.Role) (*Identity, *AuthError) {
	identity, authErr := g.RequireAuth(c)
	if authErr != nil {
		return nil, authErr
	}

	for _, role := range allowedRoles {
		if identity.Role == role {
			return identity, nil
		}
	}

	names := make([]string, 0, len(allowedRoles))
	for _, role := range allowedRoles {
		names = append(names, string(role))
	}
	return nil, Forbidden("Access denied. Required role: " + strings.Join(names, " or "))
}
