package service

import (
	"context"
	"errors"
	"testing"

	"confportal/internal/domain"
)

func TestAdminSetApplicationStatusForbiddenForNonAdmin(t *testing.T) {
	svc := &AdminService{
		Users:        &stubAdminUsersStore{t: t},
		Applications: &stubApplicationsStore{t: t},
		Theses:       &stubThesesStore{t: t},
	}

	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationPending,
		domain.ApplicationApproved,
		domain.ApplicationRejected,
		"bogus",
	} {
		err := svc.SetApplicationStatus(context.Background(), domain.User{ID: "user-1"}, "app-1", status)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("status %q: got %v, want ErrForbidden", status, err)
		}
	}
}

func TestAdminSetApplicationStatusInvalidStatus(t *testing.T) {
	svc := &AdminService{
		Users:        &stubAdminUsersStore{t: t},
		Applications: &stubApplicationsStore{t: t},
		Theses:       &stubThesesStore{t: t},
	}
	admin := domain.User{ID: "admin-1", IsAdmin: true}

	err := svc.SetApplicationStatus(context.Background(), admin, "app-1", "shortlisted")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
}

func TestAdminSetApplicationStatusAllowsAnyTransition(t *testing.T) {
	var set []domain.ApplicationStatus
	apps := &stubApplicationsStore{
		t: t,
		setApplicationStatusFunc: func(_ context.Context, id string, status domain.ApplicationStatus) error {
			if id != "app-1" {
				t.Fatalf("unexpected id: %s", id)
			}
			set = append(set, status)
			return nil
		},
	}
	svc := &AdminService{Users: &stubAdminUsersStore{t: t}, Applications: apps, Theses: &stubThesesStore{t: t}}
	admin := domain.User{ID: "admin-1", IsAdmin: true}

	// Terminal states are re-settable: approved back to pending is legal.
	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationApproved,
		domain.ApplicationPending,
		domain.ApplicationRejected,
	} {
		if err := svc.SetApplicationStatus(context.Background(), admin, "app-1", status); err != nil {
			t.Fatalf("SetApplicationStatus(%s): %v", status, err)
		}
	}
	if len(set) != 3 {
		t.Fatalf("expected 3 writes, got %d", len(set))
	}
}

func TestAdminSetApplicationStatusNotFound(t *testing.T) {
	apps := &stubApplicationsStore{
		t: t,
		setApplicationStatusFunc: func(_ context.Context, _ string, _ domain.ApplicationStatus) error {
			return domain.ErrNotFound
		},
	}
	svc := &AdminService{Users: &stubAdminUsersStore{t: t}, Applications: apps, Theses: &stubThesesStore{t: t}}

	err := svc.SetApplicationStatus(context.Background(), domain.User{IsAdmin: true}, "missing", domain.ApplicationApproved)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestAdminSetThesisStatus(t *testing.T) {
	theses := &stubThesesStore{
		t: t,
		setThesisStatusFunc: func(_ context.Context, id string, status domain.ThesisStatus) error {
			if id != "thesis-1" || status != domain.ThesisAccepted {
				t.Fatalf("unexpected write: %s %s", id, status)
			}
			return nil
		},
	}
	svc := &AdminService{Users: &stubAdminUsersStore{t: t}, Applications: &stubApplicationsStore{t: t}, Theses: theses}
	admin := domain.User{ID: "admin-1", IsAdmin: true}

	if err := svc.SetThesisStatus(context.Background(), admin, "thesis-1", domain.ThesisAccepted); err != nil {
		t.Fatalf("SetThesisStatus: %v", err)
	}

	err := svc.SetThesisStatus(context.Background(), admin, "thesis-1", "published")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}

	err = svc.SetThesisStatus(context.Background(), domain.User{ID: "user-1"}, "thesis-1", domain.ThesisAccepted)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestAdminPromoteUser(t *testing.T) {
	users := &stubAdminUsersStore{
		t: t,
		getUserByIDFunc: func(_ context.Context, id string) (domain.User, error) {
			if id == "missing" {
				return domain.User{}, domain.ErrNotFound
			}
			return domain.User{ID: id}, nil
		},
		setAdminFunc: func(_ context.Context, userID string, isAdmin bool) error {
			if userID != "user-2" || !isAdmin {
				t.Fatalf("unexpected promote: %s %v", userID, isAdmin)
			}
			return nil
		},
	}
	svc := &AdminService{Users: users, Applications: &stubApplicationsStore{t: t}, Theses: &stubThesesStore{t: t}}
	admin := domain.User{ID: "admin-1", IsAdmin: true}

	if err := svc.PromoteUser(context.Background(), admin, "user-2"); err != nil {
		t.Fatalf("PromoteUser: %v", err)
	}

	err := svc.PromoteUser(context.Background(), admin, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	err = svc.PromoteUser(context.Background(), domain.User{ID: "user-1"}, "user-2")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	var deleted []string
	users := &stubAdminUsersStore{
		t: t,
		getUserByIDFunc: func(_ context.Context, id string) (domain.User, error) {
			if id == "missing" {
				return domain.User{}, domain.ErrNotFound
			}
			return domain.User{ID: id}, nil
		},
		deleteUserFunc: func(_ context.Context, userID string) error {
			deleted = append(deleted, userID)
			return nil
		},
	}
	svc := &AdminService{Users: users, Applications: &stubApplicationsStore{t: t}, Theses: &stubThesesStore{t: t}}
	admin := domain.User{ID: "admin-1", IsAdmin: true}

	if err := svc.DeleteUser(context.Background(), admin, "user-2"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "user-2" {
		t.Fatalf("deleted = %v", deleted)
	}

	err := svc.DeleteUser(context.Background(), admin, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	// Admins cannot delete their own account.
	err = svc.DeleteUser(context.Background(), admin, "admin-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("self delete: got %v, want ErrForbidden", err)
	}

	err = svc.DeleteUser(context.Background(), domain.User{ID: "user-1"}, "user-2")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("got %v, want ErrForbidden", err)
	}
}

type stubAdminUsersStore struct {
	t *testing.T

	listUsersFunc   func(context.Context, int, int) ([]domain.User, error)
	getUserByIDFunc func(context.Context, string) (domain.User, error)
	setAdminFunc    func(context.Context, string, bool) error
	deleteUserFunc  func(context.Context, string) error
}

func (s *stubAdminUsersStore) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if s.listUsersFunc != nil {
		return s.listUsersFunc(ctx, limit, offset)
	}
	s.t.Fatalf("ListUsers called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubAdminUsersStore) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if s.getUserByIDFunc != nil {
		return s.getUserByIDFunc(ctx, id)
	}
	s.t.Fatalf("GetUserByID called unexpectedly")
	return domain.User{}, errors.New("unexpected call")
}

func (s *stubAdminUsersStore) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	if s.setAdminFunc != nil {
		return s.setAdminFunc(ctx, userID, isAdmin)
	}
	s.t.Fatalf("SetAdmin called unexpectedly")
	return errors.New("unexpected call")
}

func (s *stubAdminUsersStore) DeleteUser(ctx context.Context, userID string) error {
	if s.deleteUserFunc != nil {
		return s.deleteUserFunc(ctx, userID)
	}
	s.t.Fatalf("DeleteUser called unexpectedly")
	return errors.New("unexpected call")
}
