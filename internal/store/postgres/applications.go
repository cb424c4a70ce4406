package postgres

import (
	"context"
	"errors"
	"fmt"

	"confportal/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationsStore struct {
	pool *pgxpool.Pool
}

func NewApplicationsStore(pool *pgxpool.Pool) *ApplicationsStore {
	return &ApplicationsStore{pool: pool}
}

// CreateApplication leans on the applications_user_uq unique index for the
// one-per-user rule, so two concurrent submissions cannot both land.
func (s *ApplicationsStore) CreateApplication(ctx context.Context, app domain.Application) (domain.Application, error) {
	const q = `
		INSERT INTO applications (user_id, role, full_name, email, contact, interests, talk_title, talk_thesis, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, submitted_at
	`

	var idUUID pgtype.UUID
	err := s.pool.QueryRow(ctx, q,
		app.UserID,
		app.Role,
		app.FullName,
		app.Email,
		nullIfEmpty(app.Contact),
		nullIfEmpty(app.Interests),
		nullIfEmpty(app.TalkTitle),
		nullIfEmpty(app.TalkThesis),
		app.Status,
	).Scan(&idUUID, &app.SubmittedAt)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" {
			return domain.Application{}, domain.ErrAlreadyApplied
		}
		return domain.Application{}, fmt.Errorf("create application: %w", err)
	}

	app.ID = uuidOrEmpty(idUUID)
	return app, nil
}

func (s *ApplicationsStore) GetApplicationByUser(ctx context.Context, userID string) (domain.Application, error) {
	const q = `
		SELECT id, user_id, role, full_name, email, contact, interests, talk_title, talk_thesis, status, submitted_at
		FROM applications
		WHERE user_id = $1
	`
	return s.scanOne(s.pool.QueryRow(ctx, q, userID))
}

func (s *ApplicationsStore) GetApplicationByID(ctx context.Context, id string) (domain.Application, error) {
	const q = `
		SELECT id, user_id, role, full_name, email, contact, interests, talk_title, talk_thesis, status, submitted_at
		FROM applications
		WHERE id = $1
	`
	return s.scanOne(s.pool.QueryRow(ctx, q, id))
}

func (s *ApplicationsStore) ListApplications(ctx context.Context, limit, offset int) ([]domain.Application, error) {
	const q = `
		SELECT id, user_id, role, full_name, email, contact, interests, talk_title, talk_thesis, status, submitted_at
		FROM applications
		ORDER BY submitted_at
		LIMIT $1 OFFSET $2
	`
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.pool.Query(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []domain.Application
	for rows.Next() {
		app, err := s.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return out, nil
}

func (s *ApplicationsStore) SetApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	const q = `
		UPDATE applications
		SET status = $2
		WHERE id = $1
	`
	tag, err := s.pool.Exec(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *ApplicationsStore) scanOne(row pgx.Row) (domain.Application, error) {
	var (
		app       domain.Application
		idUUID    pgtype.UUID
		userUUID  pgtype.UUID
		contact   pgtype.Text
		interests pgtype.Text
		title     pgtype.Text
		thesis    pgtype.Text
	)
	err := row.Scan(
		&idUUID,
		&userUUID,
		&app.Role,
		&app.FullName,
		&app.Email,
		&contact,
		&interests,
		&title,
		&thesis,
		&app.Status,
		&app.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Application{}, domain.ErrNotFound
		}
		return domain.Application{}, fmt.Errorf("scan application: %w", err)
	}

	app.ID = uuidOrEmpty(idUUID)
	app.UserID = uuidOrEmpty(userUUID)
	app.Contact = textOrEmpty(contact)
	app.Interests = textOrEmpty(interests)
	app.TalkTitle = textOrEmpty(title)
	app.TalkThesis = textOrEmpty(thesis)
	return app, nil
}
