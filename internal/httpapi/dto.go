package httpapi

import (
	"time"

	"confportal/internal/domain"
)

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type applicationResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Contact     string    `json:"contact,omitempty"`
	Interests   string    `json:"interests,omitempty"`
	TalkTitle   string    `json:"talk_title,omitempty"`
	TalkThesis  string    `json:"talk_thesis,omitempty"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func toApplicationResponse(a domain.Application) applicationResponse {
	return applicationResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Role:        string(a.Role),
		FullName:    a.FullName,
		Email:       a.Email,
		Contact:     a.Contact,
		Interests:   a.Interests,
		TalkTitle:   a.TalkTitle,
		TalkThesis:  a.TalkThesis,
		Status:      string(a.Status),
		SubmittedAt: a.SubmittedAt,
	}
}

func toApplicationResponses(apps []domain.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	return out
}

type thesisResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Abstract  string    `json:"abstract,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func toThesisResponse(t domain.Thesis) thesisResponse {
	return thesisResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Abstract:  t.Abstract,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
	}
}

func toThesisResponses(theses []domain.Thesis) []thesisResponse {
	out := make([]thesisResponse, 0, len(theses))
	for _, t := range theses {
		out = append(out, toThesisResponse(t))
	}
	return out
}
