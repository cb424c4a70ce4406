package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"confportal/internal/domain"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.CreateUser(ctx, "a@example.org", "First", "hash-1")
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, "a@example.org", "Second", "hash-2")
	require.ErrorIs(t, err, domain.ErrEmailTaken)

	// No second row was created.
	users, err := s.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, first.ID, users[0].ID)
}

func TestSessionLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "a@example.org", "A", "hash")
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour)
	require.NoError(t, s.CreateSession(ctx, "tok-1", u.ID, expires))

	sess, err := s.GetSessionByToken(ctx, "tok-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, sess.UserID)
	require.True(t, sess.ExpiresAt.Equal(expires))

	require.NoError(t, s.DeleteSessionByToken(ctx, "tok-1"))
	_, err = s.GetSessionByToken(ctx, "tok-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, s.DeleteSessionByToken(ctx, "tok-1"), domain.ErrNotFound)
}

func TestApplicationOnePerUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "a@example.org", "A", "hash")
	require.NoError(t, err)

	app := domain.Application{
		UserID: u.ID, Role: domain.RoleListener,
		FullName: "A", Email: "a@example.org",
		Status: domain.ApplicationPending,
	}
	created, err := s.CreateApplication(ctx, app)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = s.CreateApplication(ctx, app)
	require.ErrorIs(t, err, domain.ErrAlreadyApplied)

	all, err := s.ListApplications(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestThesisLimitAndOwnership(t *testing.T) {
	s := New()
	ctx := context.Background()

	owner, err := s.CreateUser(ctx, "owner@example.org", "Owner", "hash")
	require.NoError(t, err)
	other, err := s.CreateUser(ctx, "other@example.org", "Other", "hash")
	require.NoError(t, err)

	var last domain.Thesis
	for i := 0; i < 5; i++ {
		last, err = s.CreateThesis(ctx, domain.Thesis{
			UserID: owner.ID, Title: "T", Status: domain.ThesisSubmitted,
		}, domain.MaxThesesPerUser)
		require.NoError(t, err)
	}

	_, err = s.CreateThesis(ctx, domain.Thesis{UserID: owner.ID, Title: "Sixth"}, domain.MaxThesesPerUser)
	require.ErrorIs(t, err, domain.ErrThesisLimit)

	mine, err := s.ListThesesByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 5)

	// Ownership: the other user sees ErrNotFound on edit and delete.
	require.ErrorIs(t, s.UpdateThesis(ctx, last.ID, other.ID, "Stolen", ""), domain.ErrNotFound)
	require.ErrorIs(t, s.DeleteThesis(ctx, last.ID, other.ID), domain.ErrNotFound)

	require.NoError(t, s.UpdateThesis(ctx, last.ID, owner.ID, "Renamed", "new abstract"))
	require.NoError(t, s.DeleteThesis(ctx, last.ID, owner.ID))

	mine, err = s.ListThesesByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, mine, 4)
}

func TestResetTokenSingleRow(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "a@example.org", "A", "hash")
	require.NoError(t, err)

	reset := domain.PasswordReset{Token: "reset-1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.CreateResetToken(ctx, reset))

	got, err := s.GetResetToken(ctx, "reset-1")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.UserID)

	require.NoError(t, s.DeleteResetToken(ctx, "reset-1"))
	_, err = s.GetResetToken(ctx, "reset-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	s := New()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, "a@example.org", "A", "hash")
	require.NoError(t, err)

	require.NoError(t, s.CreateSession(ctx, "tok-1", u.ID, time.Now().Add(time.Hour)))
	require.NoError(t, s.CreateResetToken(ctx, domain.PasswordReset{Token: "reset-1", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}))
	_, err = s.CreateApplication(ctx, domain.Application{UserID: u.ID, Role: domain.RoleListener, FullName: "A", Email: "a@example.org"})
	require.NoError(t, err)
	_, err = s.CreateThesis(ctx, domain.Thesis{UserID: u.ID, Title: "T"}, domain.MaxThesesPerUser)
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, u.ID))

	_, err = s.GetSessionByToken(ctx, "tok-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetResetToken(ctx, "reset-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.GetApplicationByUser(ctx, u.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	theses, err := s.ListThesesByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, theses)
}

func TestListUsersPaging(t *testing.T) {
	s := New()
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	i := 0
	s.Now = func() time.Time {
		i++
		return base.Add(time.Duration(i) * time.Second)
	}

	for _, email := range []string{"a@x.org", "b@x.org", "c@x.org"} {
		_, err := s.CreateUser(ctx, email, "U", "hash")
		require.NoError(t, err)
	}

	users, err := s.ListUsers(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "a@x.org", users[0].Email)

	users, err = s.ListUsers(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "c@x.org", users[0].Email)

	users, err = s.ListUsers(ctx, 2, 5)
	require.NoError(t, err)
	require.Empty(t, users)
}
