// Package memory is an in-memory store for dev mode (no APP_DB_DSN) and
// tests. Every instance is self-contained: construct one per test, nothing
// is process-global. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"confportal/internal/domain"
)

type Store struct {
	mu sync.Mutex

	users        map[string]domain.UserWithPassword // by id
	sessions     map[string]domain.Session          // by token
	resets       map[string]domain.PasswordReset    // by token
	applications map[string]domain.Application      // by id
	theses       map[string]domain.Thesis           // by id

	// Now is injectable for tests; CreatedAt/SubmittedAt stamps use it.
	Now func() time.Time
}

func New() *Store {
	return &Store{
		users:        make(map[string]domain.UserWithPassword),
		sessions:     make(map[string]domain.Session),
		resets:       make(map[string]domain.PasswordReset),
		applications: make(map[string]domain.Application),
		theses:       make(map[string]domain.Thesis),
	}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) CreateUser(_ context.Context, email, fullName, passwordHash string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return domain.User{}, domain.ErrEmailTaken
		}
	}

	u := domain.UserWithPassword{
		User: domain.User{
			ID:        uuid.NewString(),
			Email:     email,
			FullName:  fullName,
			CreatedAt: s.now(),
		},
		PasswordHash: passwordHash,
	}
	s.users[u.ID] = u
	return u.User, nil
}

func (s *Store) GetUserByID(_ context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u.User, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (domain.UserWithPassword, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.UserWithPassword{}, domain.ErrNotFound
}

func (s *Store) SetPasswordHash(_ context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[userID] = u
	return nil
}

func (s *Store) SetAdmin(_ context.Context, userID string, isAdmin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsAdmin = isAdmin
	s.users[userID] = u
	return nil
}

func (s *Store) ListUsers(_ context.Context, limit, offset int) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		all = append(all, u.User)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

// DeleteUser removes the user and cascades to sessions, reset tokens,
// applications and theses, mirroring the relational ON DELETE CASCADE.
func (s *Store) DeleteUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.users, userID)
	for token, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, token)
		}
	}
	for token, r := range s.resets {
		if r.UserID == userID {
			delete(s.resets, token)
		}
	}
	for id, a := range s.applications {
		if a.UserID == userID {
			delete(s.applications, id)
		}
	}
	for id, th := range s.theses {
		if th.UserID == userID {
			delete(s.theses, id)
		}
	}
	return nil
}

func (s *Store) CreateSession(_ context.Context, token, userID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (s *Store) GetSessionByToken(_ context.Context, token string) (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (s *Store) DeleteSessionByToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.sessions, token)
	return nil
}

func (s *Store) CreateResetToken(_ context.Context, reset domain.PasswordReset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reset.ID == "" {
		reset.ID = uuid.NewString()
	}
	s.resets[reset.Token] = reset
	return nil
}

func (s *Store) GetResetToken(_ context.Context, token string) (domain.PasswordReset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resets[token]
	if !ok {
		return domain.PasswordReset{}, domain.ErrNotFound
	}
	return r, nil
}

func (s *Store) DeleteResetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.resets[token]; !ok {
		return domain.ErrNotFound
	}
	delete(s.resets, token)
	return nil
}

// CreateApplication holds the lock across the one-per-user check and the
// insert, so two concurrent submissions cannot both pass the check.
func (s *Store) CreateApplication(_ context.Context, app domain.Application) (domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.applications {
		if existing.UserID == app.UserID {
			return domain.Application{}, domain.ErrAlreadyApplied
		}
	}

	app.ID = uuid.NewString()
	app.SubmittedAt = s.now()
	s.applications[app.ID] = app
	return app, nil
}

func (s *Store) GetApplicationByUser(_ context.Context, userID string) (domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.applications {
		if a.UserID == userID {
			return a, nil
		}
	}
	return domain.Application{}, domain.ErrNotFound
}

func (s *Store) GetApplicationByID(_ context.Context, id string) (domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok {
		return domain.Application{}, domain.ErrNotFound
	}
	return a, nil
}

func (s *Store) ListApplications(_ context.Context, limit, offset int) ([]domain.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Application, 0, len(s.applications))
	for _, a := range s.applications {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SubmittedAt.Before(all[j].SubmittedAt) })
	return page(all, limit, offset), nil
}

func (s *Store) SetApplicationStatus(_ context.Context, id string, status domain.ApplicationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.applications[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Status = status
	s.applications[id] = a
	return nil
}

// CreateThesis holds the lock across the count check and the insert.
func (s *Store) CreateThesis(_ context.Context, thesis domain.Thesis, maxPerUser int) (domain.Thesis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, existing := range s.theses {
		if existing.UserID == thesis.UserID {
			count++
		}
	}
	if count >= maxPerUser {
		return domain.Thesis{}, domain.ErrThesisLimit
	}

	thesis.ID = uuid.NewString()
	thesis.CreatedAt = s.now()
	s.theses[thesis.ID] = thesis
	return thesis, nil
}

func (s *Store) ListThesesByUser(_ context.Context, userID string) ([]domain.Thesis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Thesis
	for _, th := range s.theses {
		if th.UserID == userID {
			out = append(out, th)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateThesis(_ context.Context, id, ownerID, title, abstract string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	th, ok := s.theses[id]
	if !ok || th.UserID != ownerID {
		return domain.ErrNotFound
	}
	th.Title = title
	th.Abstract = abstract
	s.theses[id] = th
	return nil
}

func (s *Store) DeleteThesis(_ context.Context, id, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	th, ok := s.theses[id]
	if !ok || th.UserID != ownerID {
		return domain.ErrNotFound
	}
	delete(s.theses, id)
	return nil
}

func (s *Store) ListTheses(_ context.Context, limit, offset int) ([]domain.Thesis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]domain.Thesis, 0, len(s.theses))
	for _, th := range s.theses {
		all = append(all, th)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return page(all, limit, offset), nil
}

func (s *Store) SetThesisStatus(_ context.Context, id string, status domain.ThesisStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	th, ok := s.theses[id]
	if !ok {
		return domain.ErrNotFound
	}
	th.Status = status
	s.theses[id] = th
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
