package httpapi

import (
	"net/http"

	"confportal/internal/service"
)

type thesisHandler struct {
	theses *service.ThesisService
}

type thesisRequest struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

func (h *thesisHandler) submit(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())

	var req thesisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	thesis, err := h.theses.Submit(r.Context(), user, req.Title, req.Abstract)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, toThesisResponse(thesis))
}

func (h *thesisHandler) mine(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())

	theses, err := h.theses.Mine(r.Context(), user)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"theses": toThesisResponses(theses)})
}

func (h *thesisHandler) edit(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())
	id := r.PathValue("id")

	var req thesisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	if err := h.theses.Edit(r.Context(), user, id, req.Title, req.Abstract); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *thesisHandler) delete(w http.ResponseWriter, r *http.Request) {
	user, _ := CurrentUser(r.Context())
	id := r.PathValue("id")

	if err := h.theses.Delete(r.Context(), user, id); err != nil {
		WriteDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
