package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"gradely/internal/audit"
	"gradely/internal/users"
	"gradely/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

type Service interface {
	Login(ctx context.Context, req *LoginRequest, ip string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (*LoginResult, error)
	RegisterAdmin(ctx context.Context, req *RegisterAdminRequest) (*UserSummary, error)
	Logout(ctx context.Context, identity *Identity)
}

type service struct {
	repo  Repository
	codec *TokenCodec
	audit audit.Producer
	log   *logger.Logger
}

func NewService(repo Repository, codec *TokenCodec, auditProducer audit.Producer) Service {
	return &service{
		repo:  repo,
		codec: codec,
		audit: auditProducer,
		log:   logger.GetDefault(),
	}
}

// Login verifies credentials and mints a fresh token pair. A wrong password
// and an unknown email fail identically; a non-active account fails with a
// Forbidden error naming the current status.
func (s *service) Login(ctx context.Context, req *LoginRequest, ip string) (*LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.recordLoginFailure(ctx, req.Email, ip, "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		s.recordLoginFailure(ctx, req.Email, ip, "wrong password")
		return nil, ErrInvalidCredentials
	}

	if user.Status != users.StatusActive {
		s.recordLoginFailure(ctx, req.Email, ip, "account "+strings.ToLower(string(user.Status)))
		return nil, Forbidden("Account is " + strings.ToLower(string(user.Status)))
	}

	result, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	s.log.LogAuthSuccess(ctx, user.ID.String(), "password")
	event := audit.NewEvent(audit.EventLoginSuccess)
	event.ActorID = user.ID.String()
	event.Email = user.Email
	event.Role = string(user.Role)
	event.IP = ip
	s.publish(ctx, event)

	return result, nil
}

// Refresh validates the refresh token, re-reads the account record, and
// re-issues both tokens. The new identity is built from the freshly read
// record, so role and email changes propagate here; status changes take
// effect by denying the refresh outright.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, Unauthenticated("No refresh token provided")
	}

	userID := s.codec.VerifyRefresh(refreshToken)
	if userID == "" {
		return nil, Unauthenticated("Invalid or expired refresh token")
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, Unauthenticated("User not found")
		}
		return nil, err
	}

	if user.Status != users.StatusActive {
		event := audit.NewEvent(audit.EventRefreshDenied)
		event.ActorID = user.ID.String()
		event.Detail = "account " + strings.ToLower(string(user.Status))
		s.publish(ctx, event)
		return nil, Forbidden("Account is " + strings.ToLower(string(user.Status)))
	}

	result, err := s.mintPair(user)
	if err != nil {
		return nil, err
	}

	event := audit.NewEvent(audit.EventTokenRefreshed)
	event.ActorID = user.ID.String()
	event.Role = string(user.Role)
	s.publish(ctx, event)

	return result, nil
}

// RegisterAdmin creates the bootstrap admin account.
func (s *service) RegisterAdmin(ctx context.Context, req *RegisterAdminRequest) (*UserSummary, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	passwordHash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &users.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         users.RoleAdmin,
		Status:       users.StatusActive,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	event := audit.NewEvent(audit.EventAdminBootstrap)
	event.ActorID = user.ID.String()
	event.Email = user.Email
	s.publish(ctx, event)

	return &UserSummary{
		ID:     user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

// Logout only records the event. Session teardown is cookie deletion at the
// transport; any still-unexpired access token stays valid until its encoded
// expiry because no revocation list exists.
func (s *service) Logout(ctx context.Context, identity *Identity) {
	event := audit.NewEvent(audit.EventLogout)
	if identity != nil {
		event.ActorID = identity.UserID
		event.Email = identity.Email
	}
	s.publish(ctx, event)
}

func (s *service) mintPair(user *users.User) (*LoginResult, error) {
	identity := Identity{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	}

	accessToken, err := s.codec.SignAccess(identity)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.SignRefresh(identity.UserID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		User: UserSummary{
			ID:    identity.UserID,
			Email: identity.Email,
			Role:  identity.Role,
		},
		Tokens: TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (s *service) recordLoginFailure(ctx context.Context, email, ip, reason string) {
	s.log.LogAuthFailure(ctx, reason, ip)
	event := audit.NewEvent(audit.EventLoginFailure)
	event.Email = email
	event.IP = ip
	event.Detail = reason
	s.publish(ctx, event)
}

func (s *service) publish(ctx context.Context, event *audit.Event) {
	if err := s.audit.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "audit publish failed",
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()),
		)
	}
}
