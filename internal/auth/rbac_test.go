package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gradely/internal/users"
)

func guardWithIdentity(t *testing.T, role users.Role) (*Guard, *http.Request) {
	t.Helper()
	codec := NewTokenCodec(testJWTConfig())
	store := NewCookieStore(codec, false)
	guard := NewGuard(codec, store)

	token, err := codec.SignAccess(Identity{UserID: "u1", Email: "u@example.com", Role: role})
	if err != nil {
		t.Fatalf("SignAccess returned error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/student-summary", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: token})
	return guard, req
}

func TestRequireAuthWithoutSession(t *testing.T) {
	codec := NewTokenCodec(testJWTConfig())
	guard := NewGuard(codec, NewCookieStore(codec, false))

	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/api/v1/attendance/student-summary", nil))
	identity, authErr := guard.RequireAuth(c)
	if identity != nil {
		t.Error("RequireAuth returned an identity without a session")
	}
	if authErr == nil {
		t.Fatal("RequireAuth returned no error without a session")
	}
	if authErr.Kind != KindUnauthenticated {
		t.Errorf("kind: got %v, want KindUnauthenticated", authErr.Kind)
	}
	if authErr.StatusCode() != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", authErr.StatusCode())
	}
}

func TestRequireRoleAllows(t *testing.T) {
	guard, req := guardWithIdentity(t, users.RoleTeacher)
	c, _ := testContext(req)

	identity, authErr := guard.RequireRole(c, users.RoleAdmin, users.RoleTeacher)
	if authErr != nil {
		t.Fatalf("RequireRole rejected an allowed role: %v", authErr)
	}
	if identity == nil || identity.Role != users.RoleTeacher {
		t.Errorf("unexpected identity: %+v", identity)
	}
}

func TestRequireRoleForbids(t *testing.T) {
	guard, req := guardWithIdentity(t, users.RoleStudent)
	c, _ := testContext(req)

	identity, authErr := guard.RequireRole(c, users.RoleAdmin)
	if identity != nil {
		t.Error("RequireRole returned an identity for a disallowed role")
	}
	if authErr == nil {
		t.Fatal("RequireRole returned no error for a disallowed role")
	}
	if authErr.Kind != KindForbidden {
		t.Errorf("kind: got %v, want KindForbidden", authErr.Kind)
	}
	if authErr.StatusCode() != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", authErr.StatusCode())
	}
	if want := "Access denied. Required role: ADMIN"; authErr.Message != want {
		t.Errorf("message: got %q, want %q", authErr.Message, want)
	}
}

func TestRequireRoleNamesAllAllowedRoles(t *testing.T) {
	guard, req := guardWithIdentity(t, users.RoleStudent)
	c, _ := testContext(req)

	_, authErr := guard.RequireRole(c, users.RoleAdmin, users.RoleTeacher)
	if authErr == nil {
		t.Fatal("RequireRole returned no error for a disallowed role")
	}
	if want := "Access denied. Required role: ADMIN or TEACHER"; authErr.Message != want {
		t.Errorf("message: got %q, want %q", authErr.Message, want)
	}
}

func TestAuthErrorStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AuthError
		want int
	}{
		{Unauthenticated("x"), http.StatusUnauthorized},
		{Forbidden("x"), http.StatusForbidden},
		{BadRequest("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := tc.err.StatusCode(); got != tc.want {
			t.Errorf("kind %v: got status %d, want %d", tc.err.Kind, got, tc.want)
		}
	}
}
