package auth

import (
	"testing"
	"time"

	"gradely/internal/shared/config"
	"gradely/internal/users"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:     "test-access-secret",
		RefreshSecret:    "test-refresh-secret",
		AccessExpiresIn:  30 * time.Minute,
		RefreshExpiresIn: 7 * 24 * time.Hour,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())

	original := Identity{
		UserID: "user-123",
		Email:  "teacher@example.com",
		Role:   users.RoleTeacher,
	}

	token, err := codec.SignAccess(original)
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	decoded := codec.VerifyAccess(token)
	if decoded == nil {
		t.Fatal("VerifyAccess rejected a freshly signed token")
	}
	if decoded.UserID != original.UserID {
		t.Errorf("user id: got %q, want %q", decoded.UserID, original.UserID)
	}
	if decoded.Email != original.Email {
		t.Errorf("email: got %q, want %q", decoded.Email, original.Email)
	}
	if decoded.Role != original.Role {
		t.Errorf("role: got %q, want %q", decoded.Role, original.Role)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())

	token, err := codec.SignRefresh("user-456")
	if err != nil {
		t.Fatalf("SignRefresh returned error: %v", err)
	}

	if got := codec.VerifyRefresh(token); got != "user-456" {
		t.Errorf("VerifyRefresh: got %q, want %q", got, "user-456")
	}
}

func TestExpiredTokensAreRejected(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiresIn = -time.Minute
	cfg.RefreshExpiresIn = -time.Minute
	codec := NewTokenCodec(cfg)

	access, err := codec.SignAccess(Identity{UserID: "u1", Role: users.RoleStudent})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}
	if codec.VerifyAccess(access) != nil {
		t.Error("VerifyAccess accepted an expired token")
	}

	refresh, err := codec.SignRefresh("u1")
	if err != nil {
		t.Fatalf("SignRefresh returned error: %v", err)
	}
	if codec.VerifyRefresh(refresh) != "" {
		t.Error("VerifyRefresh accepted an expired token")
	}
}

// The two token classes are signed with independent secrets; a token from
// one class must never verify as the other.
func TestTokenClassesAreIsolated(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())

	access, err := codec.SignAccess(Identity{UserID: "u1", Role: users.RoleAdmin})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}
	refresh, err := codec.SignRefresh("u1")
	if err != nil {
		t.Fatalf("SignRefresh returned error: %v", err)
	}

	if codec.VerifyRefresh(access) != "" {
		t.Error("access token verified as a refresh token")
	}
	if codec.VerifyAccess(refresh) != nil {
		t.Error("refresh token verified as an access token")
	}
}

func TestForgedTokensAreRejected(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())

	other := testJWTConfig()
	other.AccessSecret = "attacker-controlled-secret"
	forger := NewTokenCodec(other)

	forged, err := forger.SignAccess(Identity{UserID: "u1", Role: users.RoleAdmin})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}
	if codec.VerifyAccess(forged) != nil {
		t.Error("VerifyAccess accepted a token signed with a different secret")
	}

	if codec.VerifyAccess("not-a-jwt") != nil {
		t.Error("VerifyAccess accepted a malformed token")
	}
	if codec.VerifyAccess("") != nil {
		t.Error("VerifyAccess accepted an empty token")
	}
}
