package service

import (
	"context"

	"confportal/internal/domain"
)

type AdminUsersStore interface {
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
	// DeleteUser removes the account and everything hanging off it:
	// sessions, reset tokens, the application and the theses.
	DeleteUser(ctx context.Context, userID string) error
}

// AdminService gates all moderation behind the caller's admin flag. Status
// changes are destructive overwrites; no history is kept.
type AdminService struct {
	Users        AdminUsersStore
	Applications ApplicationsStore
	Theses       ThesesStore
}

func (s *AdminService) ListUsers(ctx context.Context, caller domain.User, limit, offset int) ([]domain.User, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return s.Users.ListUsers(ctx, limit, offset)
}

// PromoteUser grants the admin flag to another user.
func (s *AdminService) PromoteUser(ctx context.Context, caller domain.User, userID string) error {
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	if _, err := s.Users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.Users.SetAdmin(ctx, userID, true)
}

// DeleteUser removes an account entirely. Admins cannot delete themselves;
// that would orphan the panel mid-session.
func (s *AdminService) DeleteUser(ctx context.Context, caller domain.User, userID string) error {
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	if userID == caller.ID {
		return domain.ErrForbidden
	}
	if _, err := s.Users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.Users.DeleteUser(ctx, userID)
}

func (s *AdminService) ListApplications(ctx context.Context, caller domain.User, limit, offset int) ([]domain.Application, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return s.Applications.ListApplications(ctx, limit, offset)
}

// SetApplicationStatus allows any transition among pending/approved/rejected.
func (s *AdminService) SetApplicationStatus(ctx context.Context, caller domain.User, applicationID string, status domain.ApplicationStatus) error {
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	if !domain.ValidApplicationStatus(status) {
		return domain.ErrInvalidStatus
	}
	return s.Applications.SetApplicationStatus(ctx, applicationID, status)
}

func (s *AdminService) ListTheses(ctx context.Context, caller domain.User, limit, offset int) ([]domain.Thesis, error) {
	if !caller.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return s.Theses.ListTheses(ctx, limit, offset)
}

func (s *AdminService) SetThesisStatus(ctx context.Context, caller domain.User, thesisID string, status domain.ThesisStatus) error {
	if !caller.IsAdmin {
		return domain.ErrForbidden
	}
	if !domain.ValidThesisStatus(status) {
		return domain.ErrInvalidStatus
	}
	return s.Theses.SetThesisStatus(ctx, thesisID, status)
}
