package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"gradely/internal/audit"
	"gradely/internal/users"
)

func newTestRouter(t *testing.T, accounts ...*users.User) (*gin.Engine, *TokenCodec) {
	t.Helper()
	codec := NewTokenCodec(testJWTConfig())
	cookies := NewCookieStore(codec, false)
	guard := NewGuard(codec, cookies)
	svc := NewService(newFakeRepository(accounts...), codec, audit.NewNopProducer())
	controller := NewController(svc, guard, cookies)

	engine := gin.New()
	api := engine.Group("/api/v1")
	NewRouter(controller).SetupRoutes(api)
	return engine, codec
}

func postJSON(engine *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func responseCookie(recorder *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLoginEndpointSetsSessionCookies(t *testing.T) {
	user := activeUser(t, "admin@example.com", "admin-pass-123", users.RoleAdmin)
	engine, codec := newTestRouter(t, user)

	recorder := postJSON(engine, "/api/v1/auth/login",
		`{"email":"admin@example.com","password":"admin-pass-123"}`)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body: %s", recorder.Code, recorder.Body.String())
	}

	access := responseCookie(recorder, AccessCookie)
	if access == nil {
		t.Fatal("access cookie not set")
	}
	if codec.VerifyAccess(access.Value) == nil {
		t.Error("access cookie value does not verify")
	}
	refresh := responseCookie(recorder, RefreshCookie)
	if refresh == nil {
		t.Fatal("refresh cookie not set")
	}
	if codec.VerifyRefresh(refresh.Value) != user.ID.String() {
		t.Error("refresh cookie value does not verify")
	}

	// The body carries the user summary only; tokens travel in cookies.
	if strings.Contains(recorder.Body.String(), access.Value) {
		t.Error("access token leaked into the response body")
	}
	var payload struct {
		Data struct {
			User UserSummary `json:"user"`
		} `json:"data"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.Data.User.Email != "admin@example.com" {
		t.Errorf("user email: got %q", payload.Data.User.Email)
	}
}

func TestLoginEndpointBadCredentials(t *testing.T) {
	user := activeUser(t, "admin@example.com", "admin-pass-123", users.RoleAdmin)
	engine, _ := newTestRouter(t, user)

	recorder := postJSON(engine, "/api/v1/auth/login",
		`{"email":"admin@example.com","password":"wrong-pass"}`)
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", recorder.Code)
	}
	if responseCookie(recorder, AccessCookie) != nil {
		t.Error("access cookie set on a failed login")
	}
}

func TestLoginEndpointValidation(t *testing.T) {
	engine, _ := newTestRouter(t)

	recorder := postJSON(engine, "/api/v1/auth/login", `{"email":"not-an-email","password":"x"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", recorder.Code)
	}
}

func TestRefreshEndpointRotatesCookies(t *testing.T) {
	user := activeUser(t, "student@example.com", "student-pass", users.RoleStudent)
	engine, codec := newTestRouter(t, user)

	login := postJSON(engine, "/api/v1/auth/login",
		`{"email":"student@example.com","password":"student-pass"}`)
	refreshCookie := responseCookie(login, RefreshCookie)
	if refreshCookie == nil {
		t.Fatal("login did not set a refresh cookie")
	}

	// Only the refresh cookie is needed; the access cookie may be long gone.
	recorder := postJSON(engine, "/api/v1/auth/refresh", "", refreshCookie)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200; body: %s", recorder.Code, recorder.Body.String())
	}
	newAccess := responseCookie(recorder, AccessCookie)
	if newAccess == nil {
		t.Fatal("refresh did not set a new access cookie")
	}
	if codec.VerifyAccess(newAccess.Value) == nil {
		t.Error("refreshed access cookie does not verify")
	}
}

func TestRefreshEndpointWithoutCookie(t *testing.T) {
	engine, _ := newTestRouter(t)

	recorder := postJSON(engine, "/api/v1/auth/refresh", "")
	if recorder.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", recorder.Code)
	}
}

func TestLogoutEndpointClearsCookiesAndIsIdempotent(t *testing.T) {
	user := activeUser(t, "admin@example.com", "admin-pass-123", users.RoleAdmin)
	engine, codec := newTestRouter(t, user)

	token, err := codec.SignAccess(Identity{UserID: user.ID.String(), Email: user.Email, Role: user.Role})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	recorder := postJSON(engine, "/api/v1/auth/logout", "", &http.Cookie{Name: AccessCookie, Value: token})
	if recorder.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", recorder.Code)
	}
	access := responseCookie(recorder, AccessCookie)
	if access == nil || access.MaxAge >= 0 {
		t.Error("logout did not expire the access cookie")
	}

	// Logging out without any session is still a success.
	anonymous := postJSON(engine, "/api/v1/auth/logout", "")
	if anonymous.Code != http.StatusOK {
		t.Errorf("anonymous logout: got %d, want 200", anonymous.Code)
	}
}

func TestMeEndpoint(t *testing.T) {
	user := activeUser(t, "teacher@example.com", "teacher-pass", users.RoleTeacher)
	engine, codec := newTestRouter(t, user)

	token, err := codec.SignAccess(Identity{UserID: user.ID.String(), Email: user.Email, Role: user.Role})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "teacher@example.com") {
		t.Errorf("body missing caller email: %s", recorder.Body.String())
	}

	// Without a session the same endpoint is a 401, not a redirect.
	anonymous := httptest.NewRecorder()
	engine.ServeHTTP(anonymous, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	if anonymous.Code != http.StatusUnauthorized {
		t.Errorf("anonymous /me: got %d, want 401", anonymous.Code)
	}
}

func TestRegisterAdminEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)

	recorder := postJSON(engine, "/api/v1/auth/register-admin",
		`{"email":"first@example.com","password":"bootstrap-pass"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201; body: %s", recorder.Code, recorder.Body.String())
	}

	duplicate := postJSON(engine, "/api/v1/auth/register-admin",
		`{"email":"first@example.com","password":"bootstrap-pass"}`)
	if duplicate.Code != http.StatusBadRequest {
		t.Errorf("duplicate: got %d, want 400", duplicate.Code)
	}
}
