package middleware

import (
	"net/http"
	"strings"

	"gradely/internal/auth"
	"gradely/internal/users"

	"github.com/gin-gonic/gin"
)

// Routes that never require a session: the landing page, the login page and
// the endpoints a client needs before it has any cookies.
var publicRoutePrefixes = []string{
	"/login",
	"/api/auth/login",
	"/api/auth/register-admin",
}

// One route-prefix group per role. A signed-in user hitting another role's
// prefix is redirected to their own dashboard, not logged out.
var roleRoutePrefixes = map[users.Role]string{
	users.RoleAdmin:   "/admin",
	users.RoleTeacher: "/teacher",
	users.RoleStudent: "/student",
}

// RouteGuard gates page routes before any handler runs. API routes pass
// through untouched; every API handler enforces its own RequireAuth or
// RequireRole, and duplicating that here would only drift. Page routes need
// a verifiable access cookie or the request becomes a login redirect.
//
// There is no silent refresh here: an expired access token forces a full
// login redirect even when a valid refresh cookie exists. The client is
// expected to call /api/auth/refresh before hitting page routes again.
func RouteGuard(codec *auth.TokenCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if path == "/" || isPublicRoute(path) {
			c.Next()
			return
		}

		// API authorization is per-handler.
		if strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}

		accessToken, err := c.Cookie(auth.AccessCookie)
		if err != nil || accessToken == "" {
			redirectToLogin(c)
			return
		}

		identity := codec.VerifyAccess(accessToken)
		if identity == nil {
			redirectToLogin(c)
			return
		}

		// Role-prefix check: the caller must own the prefix group the path
		// falls under, otherwise they are sent sideways to their own one.
		if owner, ok := rolePrefixOwner(path); ok && identity.Role != owner {
			own, found := roleRoutePrefixes[identity.Role]
			if !found {
				own = "/"
			}
			c.Redirect(http.StatusFound, own)
			c.Abort()
			return
		}

		c.Next()
	}
}

func isPublicRoute(path string) bool {
	for _, prefix := range publicRoutePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// rolePrefixOwner returns which role owns the prefix group the path falls
// under, if any.
func rolePrefixOwner(path string) (users.Role, bool) {
	for role, prefix := range roleRoutePrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return role, true
		}
	}
	return "", false
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
