package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cookie names for the two token classes.
const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// CookieStore binds tokens to the HTTP session. The cookies plus their token
// signatures ARE the session state; there is no server-side session table.
// Both cookies are httpOnly and SameSite=Lax on path /.
type CookieStore struct {
	accessMaxAge  int // seconds
	refreshMaxAge int
	secure        bool
}

// NewCookieStore builds a store whose cookie lifetimes mirror the token
// lifetimes. secure should be true outside local development.
func NewCookieStore(codec *TokenCodec, secure bool) *CookieStore {
	return &CookieStore{
		accessMaxAge:  int(codec.AccessTTL().Seconds()),
		refreshMaxAge: int(codec.RefreshTTL().Seconds()),
		secure:        secure,
	}
}

// Issue sets both cookies. Calling it again simply overwrites.
func (s *CookieStore) Issue(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, accessToken, s.accessMaxAge, "/", "", s.secure, true)
	c.SetCookie(RefreshCookie, refreshToken, s.refreshMaxAge, "/", "", s.secure, true)
}

// Clear deletes both cookies. Safe to call when they are already absent.
func (s *CookieStore) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", s.secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", s.secure, true)
}

// ReadAccess returns the raw access-token cookie value, or "" if absent.
// No validation happens here; that is the token codec's job.
func (s *CookieStore) ReadAccess(c *gin.Context) string {
	value, err := c.Cookie(AccessCookie)
	if err != nil {
		return ""
	}
	return value
}

// ReadRefresh returns the raw refresh-token cookie value, or "" if absent.
func (s *CookieStore) ReadRefresh(c *gin.Context) string {
	value, err := c.Cookie(RefreshCookie)
	if err != nil {
		return ""
	}
	return value
}
