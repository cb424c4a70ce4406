package service

import (
	"context"
	"strings"

	"confportal/internal/domain"
)

type ThesesStore interface {
	// CreateThesis inserts atomically with the per-user count check and
	// returns domain.ErrThesisLimit when the user already has maxPerUser.
	CreateThesis(ctx context.Context, thesis domain.Thesis, maxPerUser int) (domain.Thesis, error)
	ListThesesByUser(ctx context.Context, userID string) ([]domain.Thesis, error)
	// UpdateThesis and DeleteThesis match on (id, ownerID) and return
	// domain.ErrNotFound when no owned row matches.
	UpdateThesis(ctx context.Context, id, ownerID, title, abstract string) error
	DeleteThesis(ctx context.Context, id, ownerID string) error
	ListTheses(ctx context.Context, limit, offset int) ([]domain.Thesis, error)
	SetThesisStatus(ctx context.Context, id string, status domain.ThesisStatus) error
}

type ThesisService struct {
	Theses ThesesStore
}

func (s *ThesisService) Submit(ctx context.Context, user domain.User, title, abstract string) (domain.Thesis, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Thesis{}, domain.NewValidationError(map[string]string{"title": "required"})
	}

	thesis := domain.Thesis{
		UserID:   user.ID,
		Title:    title,
		Abstract: strings.TrimSpace(abstract),
		Status:   domain.ThesisSubmitted,
	}
	return s.Theses.CreateThesis(ctx, thesis, domain.MaxThesesPerUser)
}

func (s *ThesisService) Mine(ctx context.Context, user domain.User) ([]domain.Thesis, error) {
	return s.Theses.ListThesesByUser(ctx, user.ID)
}

// Edit overwrites title/abstract in place. Ownership is always enforced: a
// thesis owned by someone else looks like ErrNotFound to the caller.
func (s *ThesisService) Edit(ctx context.Context, user domain.User, thesisID, title, abstract string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.NewValidationError(map[string]string{"title": "required"})
	}
	return s.Theses.UpdateThesis(ctx, thesisID, user.ID, title, strings.TrimSpace(abstract))
}

func (s *ThesisService) Delete(ctx context.Context, user domain.User, thesisID string) error {
	return s.Theses.DeleteThesis(ctx, thesisID, user.ID)
}
