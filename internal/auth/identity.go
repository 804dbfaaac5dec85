package auth

import (
	"github.com/gin-gonic/gin"
)

// Guard composes the cookie store with the token codec to answer the two
// questions the rest of the application asks: who is calling, and are they
// allowed to do this.
type Guard struct {
	codec   *TokenCodec
	cookies *CookieStore
}

func NewGuard(codec *TokenCodec, cookies *CookieStore) *Guard {
	return &Guard{codec: codec, cookies: cookies}
}

// CurrentUser resolves the caller's identity from the access-token cookie.
// A missing cookie and a failed verification both yield nil; this never
// errors, and callers treat the result as an optional value.
func (g *Guard) CurrentUser(c *gin.Context) *Identity {
	token := g.cookies.ReadAccess(c)
	if token == "" {
		return nil
	}
	return g.codec.VerifyAccess(token)
}
