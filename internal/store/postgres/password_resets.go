package postgres

import (
	"context"
	"errors"
	"fmt"

	"confportal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PasswordResetsStore struct {
	pool *pgxpool.Pool
}

func NewPasswordResetsStore(pool *pgxpool.Pool) *PasswordResetsStore {
	return &PasswordResetsStore{pool: pool}
}

func (s *PasswordResetsStore) CreateResetToken(ctx context.Context, reset domain.PasswordReset) error {
	const q = `
		INSERT INTO password_resets (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := s.pool.Exec(ctx, q, reset.Token, reset.UserID, reset.ExpiresAt); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

func (s *PasswordResetsStore) GetResetToken(ctx context.Context, token string) (domain.PasswordReset, error) {
	const q = `
		SELECT id, token, user_id, expires_at
		FROM password_resets
		WHERE token = $1
	`

	var (
		reset    domain.PasswordReset
		idUUID   pgtype.UUID
		userUUID pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, token).Scan(
		&idUUID,
		&reset.Token,
		&userUUID,
		&reset.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PasswordReset{}, domain.ErrNotFound
		}
		return domain.PasswordReset{}, fmt.Errorf("get reset token: %w", err)
	}

	reset.ID = uuidOrEmpty(idUUID)
	reset.UserID = uuidOrEmpty(userUUID)
	return reset, nil
}

func (s *PasswordResetsStore) DeleteResetToken(ctx context.Context, token string) error {
	const q = `DELETE FROM password_resets WHERE token = $1`
	tag, err := s.pool.Exec(ctx, q, token)
	if err != nil {
		return fmt.Errorf("delete reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
