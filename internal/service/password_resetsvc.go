package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confportal/internal/auth"
	"confportal/internal/domain"
)

type PasswordResetsStore interface {
	CreateResetToken(ctx context.Context, reset domain.PasswordReset) error
	GetResetToken(ctx context.Context, token string) (domain.PasswordReset, error)
	DeleteResetToken(ctx context.Context, token string) error
}

// ResetSender delivers the reset link to the user out of band.
type ResetSender interface {
	SendPasswordReset(ctx context.Context, toEmail, resetURL string) error
}

type PasswordResetService struct {
	Resets   PasswordResetsStore
	Users    UsersStore
	Sender   ResetSender
	TokenTTL time.Duration
	Now      func() time.Time

	// ResetURL turns a raw token into the link sent to the user.
	ResetURL func(token string) string
}

func (s *PasswordResetService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// RequestReset never reveals whether the email is registered: the caller
// gets the same nil outcome either way.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	u, err := s.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return err
	}

	ttl := s.TokenTTL
	if ttl == 0 {
		ttl = time.Hour
	}
	reset := domain.PasswordReset{
		Token:     token,
		UserID:    u.ID,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.Resets.CreateResetToken(ctx, reset); err != nil {
		return err
	}

	if s.Sender == nil || s.ResetURL == nil {
		return nil
	}
	return s.Sender.SendPasswordReset(ctx, u.Email, s.ResetURL(token))
}

// ConfirmReset replaces the password and consumes the token. A second
// confirm with the same token fails: the row is gone.
func (s *PasswordResetService) ConfirmReset(ctx context.Context, token, newPassword string) error {
	reset, err := s.Resets.GetResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}
	if !reset.ExpiresAt.After(s.now()) {
		return domain.ErrResetTokenInvalid
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.SetPasswordHash(ctx, reset.UserID, hash); err != nil {
		return err
	}
	if err := s.Resets.DeleteResetToken(ctx, token); err != nil {
		return err
	}
	return nil
}
