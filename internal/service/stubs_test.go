package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"confportal/internal/domain"
)

type stubUsersStore struct {
	t *testing.T

	createUserFunc      func(context.Context, string, string, string) (domain.User, error)
	getUserByIDFunc     func(context.Context, string) (domain.User, error)
	getUserByEmailFunc  func(context.Context, string) (domain.UserWithPassword, error)
	setPasswordHashFunc func(context.Context, string, string) error
}

func (s *stubUsersStore) CreateUser(ctx context.Context, email, fullName, passwordHash string) (domain.User, error) {
	if s.createUserFunc != nil {
		return s.createUserFunc(ctx, email, fullName, passwordHash)
	}
	s.t.Fatalf("CreateUser called unexpectedly")
	return domain.User{}, errors.New("unexpected call")
}

func (s *stubUsersStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if s.getUserByIDFunc != nil {
		return s.getUserByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetUserByID called unexpectedly")
	return domain.User{}, errors.New("unexpected call")
}

func (s *stubUsersStore) GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error) {
	if s.getUserByEmailFunc != nil {
		return s.getUserByEmailFunc(ctx, email)
	}
	s.t.Fatalf("GetUserByEmail called unexpectedly")
	return domain.UserWithPassword{}, errors.New("unexpected call")
}

func (s *stubUsersStore) SetPasswordHash(ctx context.Context, userID, passwordHash string) error {
	if s.setPasswordHashFunc != nil {
		return s.setPasswordHashFunc(ctx, userID, passwordHash)
	}
	s.t.Fatalf("SetPasswordHash called unexpectedly")
	return errors.New("unexpected call")
}

type stubSessionsStore struct {
	t *testing.T

	createSessionFunc        func(context.Context, string, string, time.Time) error
	getSessionByTokenFunc    func(context.Context, string) (domain.Session, error)
	deleteSessionByTokenFunc func(context.Context, string) error
}

func (s *stubSessionsStore) CreateSession(ctx context.Context, token, userID string, expiresAt time.Time) error {
	if s.createSessionFunc != nil {
		return s.createSessionFunc(ctx, token, userID, expiresAt)
	}
	s.t.Fatalf("CreateSession called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubSessionsStore) GetSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	if s.getSessionByTokenFunc != nil {
		return s.getSessionByTokenFunc(ctx, token)
	}
	s.t.Fatalf("GetSessionByToken called unexpectedly")
	return domain.Session{}, errors.New("unexpected call")
}

func (s *stubSessionsStore) DeleteSessionByToken(ctx context.Context, token string) error {
	if s.deleteSessionByTokenFunc != nil {
		return s.deleteSessionByTokenFunc(ctx, token)
	}
	s.t.Fatalf("DeleteSessionByToken called unexpectedly")
	return errors.New("unexpected call")
}

type stubResetsStore struct {
	t *testing.T

	createResetTokenFunc func(context.Context, domain.PasswordReset) error
	getResetTokenFunc    func(context.Context, string) (domain.PasswordReset, error)
	deleteResetTokenFunc func(context.Context, string) error
}

func (s *stubResetsStore) CreateResetToken(ctx context.Context, reset domain.PasswordReset) error {
	if s.createResetTokenFunc != nil {
		return s.createResetTokenFunc(ctx, reset)
	}
	s.t.Fatalf("CreateResetToken called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubResetsStore) GetResetToken(ctx context.Context, token string) (domain.PasswordReset, error) {
	if s.getResetTokenFunc != nil {
		return s.getResetTokenFunc(ctx, token)
	}
	s.t.Fatalf("GetResetToken called unexpectedly")
	return domain.PasswordReset{}, errors.New("unexpected call")
}

func (s *stubResetsStore) DeleteResetToken(ctx context.Context, token string) error {
	if s.deleteResetTokenFunc != nil {
		return s.deleteResetTokenFunc(ctx, token)
	}
	s.t.Fatalf("DeleteResetToken called unexpectedly")
	return errors.New("unexpected call")
}

type stubApplicationsStore struct {
	t *testing.T

	createApplicationFunc    func(context.Context, domain.Application) (domain.Application, error)
	getApplicationByUserFunc func(context.Context, string) (domain.Application, error)
	getApplicationByIDFunc   func(context.Context, string) (domain.Application, error)
	listApplicationsFunc     func(context.Context, int, int) ([]domain.Application, error)
	setApplicationStatusFunc func(context.Context, string, domain.ApplicationStatus) error
}

func (s *stubApplicationsStore) CreateApplication(ctx context.Context, app domain.Application) (domain.Application, error) {
	if s.createApplicationFunc != nil {
		return s.createApplicationFunc(ctx, app)
	}
	s.t.Fatalf("CreateApplication called unexpectedly")
	return domain.Application{}, errors.New("unexpected call")
}

func (s *stubApplicationsStore) GetApplicationByUser(ctx context.Context, userID string) (domain.Application, error) {
	if s.getApplicationByUserFunc != nil {
		return s.getApplicationByUserFunc(ctx, userID)
	}
	s.t.Fatalf("GetApplicationByUser called unexpectedly")
	return domain.Application{}, errors.New("unexpected call")
}

func (s *stubApplicationsStore) GetApplicationByID(ctx context.Context, id string) (domain.Application, error) {
	if s.getApplicationByIDFunc != nil {
		return s.getApplicationByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetApplicationByID called unexpectedly")
	return domain.Application{}, errors.New("unexpected call")
}

func (s *stubApplicationsStore) ListApplications(ctx context.Context, limit, offset int) ([]domain.Application, error) {
	if s.listApplicationsFunc != nil {
		return s.listApplicationsFunc(ctx, limit, offset)
	}
	s.t.Fatalf("ListApplications called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubApplicationsStore) SetApplicationStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	if s.setApplicationStatusFunc != nil {
		return s.setApplicationStatusFunc(ctx, id, status)
	}
	s.t.Fatalf("SetApplicationStatus called unexpectedly")
	return errors.New("unexpected call")
}

type stubThesesStore struct {
	t *testing.T

	createThesisFunc     func(context.Context, domain.Thesis, int) (domain.Thesis, error)
	listThesesByUserFunc func(context.Context, string) ([]domain.Thesis, error)
	updateThesisFunc     func(context.Context, string, string, string, string) error
	deleteThesisFunc     func(context.Context, string, string) error
	listThesesFunc       func(context.Context, int, int) ([]domain.Thesis, error)
	setThesisStatusFunc  func(context.Context, string, domain.ThesisStatus) error
}

func (s *stubThesesStore) CreateThesis(ctx context.Context, thesis domain.Thesis, maxPerUser int) (domain.Thesis, error) {
	if s.createThesisFunc != nil {
		return s.createThesisFunc(ctx, thesis, maxPerUser)
	}
	s.t.Fatalf("CreateThesis called unexpectedly")
	return domain.Thesis{}, errors.New("unexpected call")
}

func (s *stubThesesStore) ListThesesByUser(ctx context.Context, userID string) ([]domain.Thesis, error) {
	if s.listThesesByUserFunc != nil {
		return s.listThesesByUserFunc(ctx, userID)
	}
	s.t.Fatalf("ListThesesByUser called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubThesesStore) UpdateThesis(ctx context.Context, id, ownerID, title, abstract string) error {
	if s.updateThesisFunc != nil {
		return s.updateThesisFunc(ctx, id, ownerID, title, abstract)
	}
	s.t.Fatalf("UpdateThesis called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubThesesStore) DeleteThesis(ctx context.Context, id, ownerID string) error {
	if s.deleteThesisFunc != nil {
		return s.deleteThesisFunc(ctx, id, ownerID)
	}
	s.t.Fatalf("DeleteThesis called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubThesesStore) ListTheses(ctx context.Context, limit, offset int) ([]domain.Thesis, error) {
	if s.listThesesFunc != nil {
		return s.listThesesFunc(ctx, limit, offset)
	}
	s.t.Fatalf("ListTheses called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubThesesStore) SetThesisStatus(ctx context.Context, id string, status domain.ThesisStatus) error {
	if s.setThesisStatusFunc != nil {
		return s.setThesisStatusFunc(ctx, id, status)
	}
	s.t.Fatalf("SetThesisStatus called unexpectedly")
	return errors.New("unexpected call")
}
