package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"gradely/internal/shared/config"
	"gradely/internal/users"
	"gradely/pkg/logger"
)

const tokenIssuer = "gradely"

// signer is one half of the token codec: a secret and a lifetime. The codec
// holds two of these so that sign/verify logic exists exactly once while the
// access and refresh classes stay cryptographically independent.
type signer struct {
	secret []byte
	ttl    time.Duration
}

func (s signer) sign(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// parse verifies signature and expiry. Any failure comes back as a plain
// error; callers collapse every cause into the same "no identity" outcome.
func (s signer) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}

// TokenCodec signs and verifies the two bearer token classes. Construction
// takes an explicit config value so tests can inject their own secrets and
// lifetimes; nothing in here reads the environment.
type TokenCodec struct {
	access  signer
	refresh signer
	log     *logger.Logger
}

func NewTokenCodec(cfg config.JWTConfig) *TokenCodec {
	return &TokenCodec{
		access:  signer{secret: []byte(cfg.AccessSecret), ttl: cfg.AccessExpiresIn},
		refresh: signer{secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshExpiresIn},
		log:     logger.GetDefault(),
	}
}

// SignAccess mints an access token for the given identity, expiring at
// now + the configured access lifetime.
func (tc *TokenCodec) SignAccess(id Identity) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email: id.Email,
		Role:  string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.access.ttl)),
			Issuer:    tokenIssuer,
			Subject:   id.UserID,
		},
	}
	return tc.access.sign(claims)
}

// SignRefresh mints a refresh token carrying only the subject id.
func (tc *TokenCodec) SignRefresh(userID string) (string, error) {
	now := time.Now()
	claims := refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.refresh.ttl)),
			Issuer:    tokenIssuer,
			Subject:   userID,
		},
	}
	return tc.refresh.sign(claims)
}

// VerifyAccess returns the decoded identity, or nil on any failure. Expired,
// forged and malformed tokens are indistinguishable to the caller; the
// distinction is logged at debug level only.
func (tc *TokenCodec) VerifyAccess(tokenString string) *Identity {
	var claims accessClaims
	if err := tc.access.parse(tokenString, &claims); err != nil {
		tc.log.LogTokenRejected(context.Background(), "access", err.Error())
		return nil
	}
	return &Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   users.Role(claims.Role),
	}
}

// VerifyRefresh returns the subject user id, or "" on any failure.
func (tc *TokenCodec) VerifyRefresh(tokenString string) string {
	var claims refreshClaims
	if err := tc.refresh.parse(tokenString, &claims); err != nil {
		tc.log.LogTokenRejected(context.Background(), "refresh", err.Error())
		return ""
	}
	return claims.Subject
}

// AccessTTL returns the configured access-token lifetime.
func (tc *TokenCodec) AccessTTL() time.Duration { return tc.access.ttl }

// RefreshTTL returns the configured refresh-token lifetime.
func (tc *TokenCodec) RefreshTTL() time.Duration { return tc.refresh.ttl }
