package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"confportal/internal/auth"
	"confportal/internal/domain"
)

type UsersStore interface {
	CreateUser(ctx context.Context, email, fullName, passwordHash string) (domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error)
	SetPasswordHash(ctx context.Context, userID, passwordHash string) error
}

type SessionsStore interface {
	CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error
	GetSessionByToken(ctx context.Context, token string) (domain.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) error
}

// AuthService issues, resolves and revokes opaque session tokens and owns
// the register/login password checks.
type AuthService struct {
	Users       UsersStore
	Sessions    SessionsStore
	SessionTTL  time.Duration
	RememberTTL time.Duration
	Now         func() time.Time
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) Register(ctx context.Context, email, fullName, password string) (domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	fullName = strings.TrimSpace(fullName)

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	return s.Users.CreateUser(ctx, email, fullName, passwordHash)
}

// Login authenticates and issues a session token. Unknown email and wrong
// password are indistinguishable: both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (domain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	ok, err := auth.VerifyPassword(u.PasswordHash, password)
	if err != nil {
		return domain.User{}, "", err
	}
	if !ok {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, u.ID, remember)
	if err != nil {
		return domain.User{}, "", err
	}

	return u.User, token, nil
}

func (s *AuthService) issueSession(ctx context.Context, userID string, remember bool) (string, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}

	ttl := s.SessionTTL
	if remember {
		ttl = s.RememberTTL
	}
	if err := s.Sessions.CreateSession(ctx, token, userID, s.now().Add(ttl)); err != nil {
		return "", err
	}
	return token, nil
}

// Logout revokes the session. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	err := s.Sessions.DeleteSessionByToken(ctx, token)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// GetUserForSession resolves a token to its owning user. An unknown token
// is anonymous; an expired one is anonymous too, and the stale row is
// deleted on the way out (lazy cleanup).
func (s *AuthService) GetUserForSession(ctx context.Context, token string) (domain.User, error) {
	sess, err := s.Sessions.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}

	if !sess.ExpiresAt.After(s.now()) {
		_ = s.Sessions.DeleteSessionByToken(ctx, token)
		return domain.User{}, domain.ErrUnauthorized
	}

	u, err := s.Users.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUnauthorized
		}
		return domain.User{}, err
	}

	return u, nil
}
