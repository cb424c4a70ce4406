package service

import (
	"context"
	"errors"
	"testing"

	"confportal/internal/domain"
)

func TestSubmitThesisLimit(t *testing.T) {
	store := &stubThesesStore{
		t: t,
		createThesisFunc: func(_ context.Context, thesis domain.Thesis, maxPerUser int) (domain.Thesis, error) {
			if maxPerUser != domain.MaxThesesPerUser {
				t.Fatalf("maxPerUser = %d, want %d", maxPerUser, domain.MaxThesesPerUser)
			}
			return domain.Thesis{}, domain.ErrThesisLimit
		},
	}
	svc := &ThesisService{Theses: store}

	_, err := svc.Submit(context.Background(), domain.User{ID: "user-1"}, "One more", "")
	if !errors.Is(err, domain.ErrThesisLimit) {
		t.Fatalf("got %v, want ErrThesisLimit", err)
	}
}

func TestSubmitThesisDefaultsToSubmitted(t *testing.T) {
	var created domain.Thesis
	store := &stubThesesStore{
		t: t,
		createThesisFunc: func(_ context.Context, thesis domain.Thesis, _ int) (domain.Thesis, error) {
			created = thesis
			thesis.ID = "thesis-1"
			return thesis, nil
		},
	}
	svc := &ThesisService{Theses: store}

	got, err := svc.Submit(context.Background(), domain.User{ID: "user-1"}, "  Title  ", " Abstract ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if created.Status != domain.ThesisSubmitted {
		t.Fatalf("status = %s, want submitted", created.Status)
	}
	if created.Title != "Title" || created.Abstract != "Abstract" {
		t.Fatalf("expected trimmed fields: %+v", created)
	}
	if got.ID != "thesis-1" {
		t.Fatalf("expected store-assigned id, got %+v", got)
	}
}

func TestSubmitThesisRequiresTitle(t *testing.T) {
	svc := &ThesisService{Theses: &stubThesesStore{t: t}}

	_, err := svc.Submit(context.Background(), domain.User{ID: "user-1"}, "   ", "abstract")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestEditThesisEnforcesOwnership(t *testing.T) {
	store := &stubThesesStore{
		t: t,
		updateThesisFunc: func(_ context.Context, id, ownerID, title, abstract string) error {
			if ownerID != "user-1" {
				t.Fatalf("expected caller id as owner filter, got %q", ownerID)
			}
			// Someone else's thesis: the owned-row match fails.
			return domain.ErrNotFound
		},
	}
	svc := &ThesisService{Theses: store}

	err := svc.Edit(context.Background(), domain.User{ID: "user-1"}, "thesis-of-user-2", "New", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteThesisEnforcesOwnership(t *testing.T) {
	store := &stubThesesStore{
		t: t,
		deleteThesisFunc: func(_ context.Context, id, ownerID string) error {
			if id != "thesis-1" || ownerID != "user-1" {
				t.Fatalf("unexpected delete filter: %s %s", id, ownerID)
			}
			return nil
		},
	}
	svc := &ThesisService{Theses: store}

	if err := svc.Delete(context.Background(), domain.User{ID: "user-1"}, "thesis-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
