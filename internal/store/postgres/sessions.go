package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confportal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionsStore struct {
	pool *pgxpool.Pool
}

func NewSessionsStore(pool *pgxpool.Pool) *SessionsStore {
	return &SessionsStore{pool: pool}
}

func (s *SessionsStore) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	const q = `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)
	`
	if _, err := s.pool.Exec(ctx, q, token, userID, expiresAt); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// GetSessionByToken returns the row even when expired; expiry and lazy
// cleanup are the service's call.
func (s *SessionsStore) GetSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	const q = `
		SELECT id, token, user_id, expires_at
		FROM sessions
		WHERE token = $1
	`

	var (
		sess     domain.Session
		idUUID   pgtype.UUID
		userUUID pgtype.UUID
	)
	err := s.pool.QueryRow(ctx, q, token).Scan(
		&idUUID,
		&sess.Token,
		&userUUID,
		&sess.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("get session: %w", err)
	}

	sess.ID = uuidOrEmpty(idUUID)
	sess.UserID = uuidOrEmpty(userUUID)
	return sess, nil
}

func (s *SessionsStore) DeleteSessionByToken(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = $1`
	tag, err := s.pool.Exec(ctx, q, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
