package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"gradely/internal/auth"
	"gradely/internal/shared/config"
	"gradely/internal/users"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testCodec() *auth.TokenCodec {
	return auth.NewTokenCodec(config.JWTConfig{
		AccessSecret:     "test-access-secret",
		RefreshSecret:    "test-refresh-secret",
		AccessExpiresIn:  30 * time.Minute,
		RefreshExpiresIn: 168 * time.Hour,
	})
}

func guardedEngine(codec *auth.TokenCodec) *gin.Engine {
	engine := gin.New()
	engine.Use(RouteGuard(codec))

	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	engine.GET("/", ok)
	engine.GET("/login", ok)
	engine.GET("/admin/classes", ok)
	engine.GET("/teacher/attendance", ok)
	engine.GET("/student/results", ok)
	engine.GET("/api/auth/login", ok)
	engine.GET("/api/v1/attendance/student-summary", ok)
	return engine
}

func serve(engine *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)
	return recorder
}

func sessionCookie(t *testing.T, codec *auth.TokenCodec, role users.Role) *http.Cookie {
	t.Helper()
	token, err := codec.SignAccess(auth.Identity{UserID: "u1", Email: "u@example.com", Role: role})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}
	return &http.Cookie{Name: auth.AccessCookie, Value: token}
}

func TestPublicRoutesPassWithoutSession(t *testing.T) {
	engine := guardedEngine(testCodec())

	for _, path := range []string{"/", "/login", "/api/auth/login"} {
		if got := serve(engine, path).Code; got != http.StatusOK {
			t.Errorf("%s: got status %d, want 200", path, got)
		}
	}
}

func TestAPIRoutesBypassTheGuard(t *testing.T) {
	engine := guardedEngine(testCodec())

	// Handlers do their own authorization; the guard must not redirect.
	if got := serve(engine, "/api/v1/attendance/student-summary").Code; got != http.StatusOK {
		t.Errorf("got status %d, want 200", got)
	}
}

func TestAnonymousPageRequestRedirectsToLogin(t *testing.T) {
	engine := guardedEngine(testCodec())

	recorder := serve(engine, "/admin/classes")
	if recorder.Code != http.StatusFound {
		t.Fatalf("got status %d, want 302", recorder.Code)
	}
	if got := recorder.Header().Get("Location"); got != "/login" {
		t.Errorf("location: got %q, want /login", got)
	}
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	expiredCodec := auth.NewTokenCodec(config.JWTConfig{
		AccessSecret:     "test-access-secret",
		RefreshSecret:    "test-refresh-secret",
		AccessExpiresIn:  -time.Minute,
		RefreshExpiresIn: 168 * time.Hour,
	})
	engine := guardedEngine(testCodec())

	recorder := serve(engine, "/admin/classes", sessionCookie(t, expiredCodec, users.RoleAdmin))
	if recorder.Code != http.StatusFound {
		t.Fatalf("got status %d, want 302", recorder.Code)
	}
	if got := recorder.Header().Get("Location"); got != "/login" {
		t.Errorf("location: got %q, want /login", got)
	}
}

func TestWrongRoleRedirectsSideways(t *testing.T) {
	codec := testCodec()
	engine := guardedEngine(codec)

	cases := []struct {
		role users.Role
		path string
		want string
	}{
		{users.RoleStudent, "/admin/classes", "/student"},
		{users.RoleTeacher, "/admin/classes", "/teacher"},
		{users.RoleStudent, "/teacher/attendance", "/student"},
		{users.RoleAdmin, "/student/results", "/admin"},
	}
	for _, tc := range cases {
		recorder := serve(engine, tc.path, sessionCookie(t, codec, tc.role))
		if recorder.Code != http.StatusFound {
			t.Errorf("%s as %s: got status %d, want 302", tc.path, tc.role, recorder.Code)
			continue
		}
		if got := recorder.Header().Get("Location"); got != tc.want {
			t.Errorf("%s as %s: location %q, want %q", tc.path, tc.role, got, tc.want)
		}
	}
}

func TestMatchingRolePasses(t *testing.T) {
	codec := testCodec()
	engine := guardedEngine(codec)

	cases := []struct {
		role users.Role
		path string
	}{
		{users.RoleAdmin, "/admin/classes"},
		{users.RoleTeacher, "/teacher/attendance"},
		{users.RoleStudent, "/student/results"},
	}
	for _, tc := range cases {
		if got := serve(engine, tc.path, sessionCookie(t, codec, tc.role)).Code; got != http.StatusOK {
			t.Errorf("%s as %s: got status %d, want 200", tc.path, tc.role, got)
		}
	}
}
