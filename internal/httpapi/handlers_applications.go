package httpapi

import (
	"net/http"

	"confportal/internal/domain"
	"confportal/internal/service"
)

type applicationHandler struct {
	applications *service.ApplicationService
}

type submitApplicationRequest struct {
	Role       string `json:"role"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Contact    string `json:"contact"`
	Interests  string `json:"interests"`
	TalkTitle  string `json:"talk_title"`
	TalkThesis string `json:"talk_thesis"`
}

func (h *applicationHandler) submit(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())

	var req submitApplicationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	app, err := h.applications.Submit(r.Context(), user, service.ApplicationInput{
		Role:       domain.ApplicationRole(req.Role),
		FullName:   req.FullName,
		Email:      req.Email,
		Contact:    req.Contact,
		Interests:  req.Interests,
		TalkTitle:  req.TalkTitle,
		TalkThesis: req.TalkThesis,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toApplicationResponse(app))
}

func (h *applicationHandler) mine(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())

	app, err := h.applications.Mine(r.Context(), user)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, toApplicationResponse(app))
}
