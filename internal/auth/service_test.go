package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"gradely/internal/audit"
	"gradely/internal/users"
)

type fakeRepository struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeRepository(accounts ...*users.User) *fakeRepository {
	repo := &fakeRepository{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
	for _, account := range accounts {
		repo.byEmail[account.Email] = account
		repo.byID[account.ID.String()] = account
	}
	return repo
}

func (r *fakeRepository) GetUserByEmail(_ context.Context, email string) (*users.User, error) {
	if user, ok := r.byEmail[email]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepository) GetUserByID(_ context.Context, id string) (*users.User, error) {
	if user, ok := r.byID[id]; ok {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (r *fakeRepository) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeRepository) CreateUser(_ context.Context, user *users.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.byEmail[user.Email] = user
	r.byID[user.ID.String()] = user
	return nil
}

func activeUser(t *testing.T, email, password string, role users.Role) *users.User {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	return &users.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Status:       users.StatusActive,
	}
}

func newTestService(t *testing.T, accounts ...*users.User) (Service, *TokenCodec) {
	t.Helper()
	codec := NewTokenCodec(testJWTConfig())
	return NewService(newFakeRepository(accounts...), codec, audit.NewNopProducer()), codec
}

func TestLoginSuccess(t *testing.T) {
	user := activeUser(t, "admin@example.com", "admin-pass-123", users.RoleAdmin)
	svc, codec := newTestService(t, user)

	result, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@example.com",
		Password: "admin-pass-123",
	}, "127.0.0.1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if result.User.ID != user.ID.String() {
		t.Errorf("user id: got %q, want %q", result.User.ID, user.ID.String())
	}
	if result.User.Role != users.RoleAdmin {
		t.Errorf("role: got %q, want ADMIN", result.User.Role)
	}

	identity := codec.VerifyAccess(result.Tokens.AccessToken)
	if identity == nil {
		t.Fatal("minted access token does not verify")
	}
	if identity.UserID != user.ID.String() {
		t.Errorf("token subject: got %q, want %q", identity.UserID, user.ID.String())
	}
	if codec.VerifyRefresh(result.Tokens.RefreshToken) != user.ID.String() {
		t.Error("minted refresh token does not verify")
	}
}

// Unknown email and wrong password must be indistinguishable to the caller.
func TestLoginFailuresAreUniform(t *testing.T) {
	user := activeUser(t, "admin@example.com", "admin-pass-123", users.RoleAdmin)
	svc, _ := newTestService(t, user)

	_, unknownErr := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "admin-pass-123",
	}, "")
	_, wrongErr := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@example.com",
		Password: "not-the-password",
	}, "")

	if !errors.Is(unknownErr, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", unknownErr)
	}
	if !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", wrongErr)
	}
}

func TestLoginSuspendedAccount(t *testing.T) {
	user := activeUser(t, "teacher@example.com", "teacher-pass", users.RoleTeacher)
	user.Status = users.StatusSuspended
	svc, _ := newTestService(t, user)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "teacher@example.com",
		Password: "teacher-pass",
	}, "")

	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("got %v, want *AuthError", err)
	}
	if authErr.Kind != KindForbidden {
		t.Errorf("kind: got %v, want KindForbidden", authErr.Kind)
	}
	if want := "Account is suspended"; authErr.Message != want {
		t.Errorf("message: got %q, want %q", authErr.Message, want)
	}
}

func TestRefreshReissuesPair(t *testing.T) {
	user := activeUser(t, "student@example.com", "student-pass", users.RoleStudent)
	svc, codec := newTestService(t, user)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "student@example.com",
		Password: "student-pass",
	}, "")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if codec.VerifyAccess(refreshed.Tokens.AccessToken) == nil {
		t.Error("refreshed access token does not verify")
	}
	if codec.VerifyRefresh(refreshed.Tokens.RefreshToken) != user.ID.String() {
		t.Error("refreshed refresh token does not verify")
	}
}

func TestRefreshWithoutToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "")
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Kind != KindUnauthenticated {
		t.Errorf("got %v, want Unauthenticated AuthError", err)
	}
}

func TestRefreshWithGarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "garbage.token.here")
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Kind != KindUnauthenticated {
		t.Errorf("got %v, want Unauthenticated AuthError", err)
	}
}

// A suspension lands at the next refresh. The already-issued access token
// keeps verifying until its own expiry; there is no revocation list.
func TestRefreshDeniedAfterSuspension(t *testing.T) {
	user := activeUser(t, "student@example.com", "student-pass", users.RoleStudent)
	svc, codec := newTestService(t, user)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "student@example.com",
		Password: "student-pass",
	}, "")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	user.Status = users.StatusSuspended

	_, err = svc.Refresh(context.Background(), login.Tokens.RefreshToken)
	var authErr *AuthError
	if !errors.As(err, &authErr) || authErr.Kind != KindForbidden {
		t.Fatalf("got %v, want Forbidden AuthError", err)
	}

	if codec.VerifyAccess(login.Tokens.AccessToken) == nil {
		t.Error("pre-suspension access token stopped verifying; expected it to stay valid until expiry")
	}
}

// Role edits propagate through refresh because the new pair is minted from
// the freshly read account record.
func TestRefreshPicksUpRoleChange(t *testing.T) {
	user := activeUser(t, "staff@example.com", "staff-pass", users.RoleTeacher)
	svc, codec := newTestService(t, user)

	login, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "staff@example.com",
		Password: "staff-pass",
	}, "")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	user.Role = users.RoleAdmin

	refreshed, err := svc.Refresh(context.Background(), login.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	identity := codec.VerifyAccess(refreshed.Tokens.AccessToken)
	if identity == nil {
		t.Fatal("refreshed access token does not verify")
	}
	if identity.Role != users.RoleAdmin {
		t.Errorf("role after refresh: got %q, want ADMIN", identity.Role)
	}
}

func TestRegisterAdmin(t *testing.T) {
	svc, _ := newTestService(t)

	summary, err := svc.RegisterAdmin(context.Background(), &RegisterAdminRequest{
		Email:    "first-admin@example.com",
		Password: "bootstrap-pass",
	})
	if err != nil {
		t.Fatalf("RegisterAdmin returned error: %v", err)
	}
	if summary.Role != users.RoleAdmin {
		t.Errorf("role: got %q, want ADMIN", summary.Role)
	}

	_, err = svc.RegisterAdmin(context.Background(), &RegisterAdminRequest{
		Email:    "first-admin@example.com",
		Password: "another-pass",
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Errorf("duplicate email: got %v, want ErrUserAlreadyExists", err)
	}
}
