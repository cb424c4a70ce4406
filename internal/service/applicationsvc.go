package service

import (
	"context"
	"errors"
	"strings"

	"confportal/internal/domain"
)

type ApplicationsStore interface {
	// CreateApplication inserts atomically with the one-per-user check and
	// returns domain.ErrAlreadyApplied when the user already has one.
	CreateApplication(ctx context.Context, app domain.Application) (domain.Application, error)
	GetApplicationByUser(ctx context.Context, userID string) (domain.Application, error)
	GetApplicationByID(ctx context.Context, id string) (domain.Application, error)
	ListApplications(ctx context.Context, limit, offset int) ([]domain.Application, error)
	SetApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
}

// ApplicationInput is the typed submission payload. Fields for the other
// role are dropped, not stored.
type ApplicationInput struct {
	Role       domain.ApplicationRole
	FullName   string
	Email      string
	Contact    string
	Interests  string
	TalkTitle  string
	TalkThesis string
}

type ApplicationService struct {
	Applications ApplicationsStore
}

func (s *ApplicationService) Submit(ctx context.Context, user domain.User, in ApplicationInput) (domain.Application, error) {
	fields := map[string]string{}
	if !domain.ValidApplicationRole(in.Role) {
		fields["role"] = "must be listener or speaker"
	}
	if strings.TrimSpace(in.FullName) == "" {
		fields["full_name"] = "required"
	}
	if strings.TrimSpace(in.Email) == "" {
		fields["email"] = "required"
	}
	if in.Role == domain.RoleSpeaker && strings.TrimSpace(in.TalkTitle) == "" {
		fields["title"] = "required for speakers"
	}
	if len(fields) > 0 {
		return domain.Application{}, domain.NewValidationError(fields)
	}

	app := domain.Application{
		UserID:   user.ID,
		Role:     in.Role,
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.TrimSpace(in.Email),
		Contact:  strings.TrimSpace(in.Contact),
		Status:   domain.ApplicationPending,
	}
	switch in.Role {
	case domain.RoleListener:
		app.Interests = strings.TrimSpace(in.Interests)
	case domain.RoleSpeaker:
		app.TalkTitle = strings.TrimSpace(in.TalkTitle)
		app.TalkThesis = strings.TrimSpace(in.TalkThesis)
	}

	return s.Applications.CreateApplication(ctx, app)
}

// Mine returns the caller's application, or ErrNotFound if none exists.
func (s *ApplicationService) Mine(ctx context.Context, user domain.User) (domain.Application, error) {
	return s.Applications.GetApplicationByUser(ctx, user.ID)
}

func (s *ApplicationService) HasApplied(ctx context.Context, user domain.User) (bool, error) {
	_, err := s.Applications.GetApplicationByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
