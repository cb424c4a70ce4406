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

type ThesesStore struct {
	pool *pgxpool.Pool
}

func NewThesesStore(pool *pgxpool.Pool) *ThesesStore {
	return &ThesesStore{pool: pool}
}

// CreateThesis counts and inserts in one transaction with the owner's user
// row locked, so concurrent submissions cannot both pass the limit check.
func (s *ThesesStore) CreateThesis(ctx context.Context, thesis domain.Thesis, maxPerUser int) (domain.Thesis, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.Thesis{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Locking theses rows would not serialize two submitters who have none
	// yet, so the lock is taken on the users row instead.
	const lockQ = `SELECT id FROM users WHERE id = $1 FOR UPDATE`
	var ownerUUID pgtype.UUID
	if err := tx.QueryRow(ctx, lockQ, thesis.UserID).Scan(&ownerUUID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Thesis{}, domain.ErrNotFound
		}
		return domain.Thesis{}, fmt.Errorf("lock user: %w", err)
	}

	const countQ = `SELECT count(*) FROM theses WHERE user_id = $1`
	var count int
	if err := tx.QueryRow(ctx, countQ, thesis.UserID).Scan(&count); err != nil {
		return domain.Thesis{}, fmt.Errorf("count theses: %w", err)
	}
	if count >= maxPerUser {
		return domain.Thesis{}, domain.ErrThesisLimit
	}

	const insertQ = `
		INSERT INTO theses (user_id, title, abstract, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	var idUUID pgtype.UUID
	err = tx.QueryRow(ctx, insertQ, thesis.UserID, thesis.Title, nullIfEmpty(thesis.Abstract), thesis.Status).
		Scan(&idUUID, &thesis.CreatedAt)
	if err != nil {
		return domain.Thesis{}, fmt.Errorf("create thesis: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Thesis{}, fmt.Errorf("commit: %w", err)
	}

	thesis.ID = uuidOrEmpty(idUUID)
	return thesis, nil
}

func (s *ThesesStore) ListThesesByUser(ctx context.Context, userID string) ([]domain.Thesis, error) {
	const q = `
		SELECT id, user_id, title, abstract, status, created_at
		FROM theses
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list theses by user: %w", err)
	}
	defer rows.Close()
	return scanTheses(rows)
}

// UpdateThesis matches on (id, owner) so editing someone else's thesis is
// indistinguishable from editing a missing one.
func (s *ThesesStore) UpdateThesis(ctx context.Context, id, ownerID, title, abstract string) error {
	const q = `
		UPDATE theses
		SET title = $3, abstract = $4
		WHERE id = $1 AND user_id = $2
	`
	tag, err := s.pool.Exec(ctx, q, id, ownerID, title, nullIfEmpty(abstract))
	if err != nil {
		return fmt.Errorf("update thesis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ThesesStore) DeleteThesis(ctx context.Context, id, ownerID string) error {
	const q = `DELETE FROM theses WHERE id = $1 AND user_id = $2`
	tag, err := s.pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete thesis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ThesesStore) ListTheses(ctx context.Context, limit, offset int) ([]domain.Thesis, error) {
	const q = `
		SELECT id, user_id, title, abstract, status, created_at
		FROM theses
		ORDER BY created_at
		LIMIT $1 OFFSET $2
	`
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list theses: %w", err)
	}
	defer rows.Close()
	return scanTheses(rows)
}

func (s *ThesesStore) SetThesisStatus(ctx context.Context, id string, status domain.ThesisStatus) error {
	const q = `
		UPDATE theses
		SET status = $2
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("set thesis status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTheses(rows pgx.Rows) ([]domain.Thesis, error) {
	var out []domain.Thesis
	for rows.Next() {
		var (
			th       domain.Thesis
			idUUID   pgtype.UUID
			userUUID pgtype.UUID
			abstract pgtype.Text
		)
		if err := rows.Scan(&idUUID, &userUUID, &th.Title, &abstract, &th.Status, &th.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan thesis: %w", err)
		}
		th.ID = uuidOrEmpty(idUUID)
		th.UserID = uuidOrEmpty(userUUID)
		th.Abstract = textOrEmpty(abstract)
		out = append(out, th)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan theses: %w", err)
	}
	return out, nil
}
