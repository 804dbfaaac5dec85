package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"gradely/internal/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	return c, recorder
}

func findCookie(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestIssueSetsBothCookies(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())
	store := NewCookieStore(codec, false)

	c, recorder := testContext(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	store.Issue(c, "access-value", "refresh-value")

	access := findCookie(recorder, AccessCookie)
	if access == nil {
		t.Fatal("access cookie not set")
	}
	if access.Value != "access-value" {
		t.Errorf("access cookie value: got %q", access.Value)
	}
	if !access.HttpOnly {
		t.Error("access cookie is not httpOnly")
	}
	if access.Path != "/" {
		t.Errorf("access cookie path: got %q, want /", access.Path)
	}
	if access.MaxAge != int(codec.AccessTTL().Seconds()) {
		t.Errorf("access cookie max-age: got %d, want %d", access.MaxAge, int(codec.AccessTTL().Seconds()))
	}

	refresh := findCookie(recorder, RefreshCookie)
	if refresh == nil {
		t.Fatal("refresh cookie not set")
	}
	if !refresh.HttpOnly {
		t.Error("refresh cookie is not httpOnly")
	}
	if refresh.MaxAge != int(codec.RefreshTTL().Seconds()) {
		t.Errorf("refresh cookie max-age: got %d, want %d", refresh.MaxAge, int(codec.RefreshTTL().Seconds()))
	}
}

func TestClearExpiresBothCookies(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())
	store := NewCookieStore(codec, false)

	c, recorder := testContext(httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	store.Clear(c)

	for _, name := range []string{AccessCookie, RefreshCookie} {
		cookie := findCookie(recorder, name)
		if cookie == nil {
			t.Fatalf("%s cookie not cleared", name)
		}
		if cookie.MaxAge >= 0 {
			t.Errorf("%s cookie max-age: got %d, want negative", name, cookie.MaxAge)
		}
		if cookie.Value != "" {
			t.Errorf("%s cookie value not emptied: %q", name, cookie.Value)
		}
	}
}

func TestCurrentUserFromCookie(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())
	store := NewCookieStore(codec, false)
	guard := NewGuard(codec, store)

	token, err := codec.SignAccess(Identity{UserID: "u1", Email: "s@example.com", Role: users.RoleStudent})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
	c, _ := testContext(req)

	identity := guard.CurrentUser(c)
	if identity == nil {
		t.Fatal("CurrentUser returned nil for a valid cookie")
	}
	if identity.UserID != "u1" || identity.Role != users.RoleStudent {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestCurrentUserWithoutCookie(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())
	store := NewCookieStore(codec, false)
	guard := NewGuard(codec, store)

	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	if guard.CurrentUser(c) != nil {
		t.Error("CurrentUser returned an identity for a cookieless request")
	}
}

func TestCurrentUserWithTamperedCookie(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())
	store := NewCookieStore(codec, false)
	guard := NewGuard(codec, store)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "tampered.token.value"})
	c, _ := testContext(req)

	if guard.CurrentUser(c) != nil {
		t.Error("CurrentUser returned an identity for a tampered cookie")
	}
}
