package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"confportal/internal/domain"
	"confportal/internal/service"
)

type adminHandler struct {
	admin  *service.AdminService
	logger *slog.Logger
}

func pageParams(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func (h *adminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentUser(r.Context())
	limit, offset := pageParams(r)

	users, err := h.admin.ListUsers(r.Context(), caller, limit, offset)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"users": toUserResponses(users)})
}

func (h *adminHandler) promoteUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentUser(r.Context())
	id := r.PathValue("id")

	if err := h.admin.PromoteUser(r.Context(), caller, id); err != nil {
		WriteDomainError(w, err)
		return
	}

	h.logger.Info("user promoted to admin", "user_id", id, "by", caller.ID)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *adminHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentUser(r.Context())
	id := r.PathValue("id")

	if err := h.admin.DeleteUser(r.Context(), caller, id); err != nil {
		WriteDomainError(w, err)
		return
	}

	h.logger.Info("user deleted", "user_id", id, "by", caller.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *adminHandler) listApplications(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentUser(r.Context())
	limit, offset := pageParams(r)

	apps, err := h.admin.ListApplications(r.Context(), caller, limit, offset)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": toApplicationResponses(apps)})
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *adminHandler) setApplicationStatus(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentUser(r.Context())
	id := r.PathValue("id")

	var req setStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	err := h.admin.SetApplicationStatus(r.Context(), caller, id, domain.ApplicationStatus(req.Status))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	h.logger.Info("application status set", "application_id", id, "status", req.Status, "by", caller.ID)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *adminHandler) listTheses(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentUser(r.Context())
	limit, offset := pageParams(r)

	theses, err := h.admin.ListTheses(r.Context(), caller, limit, offset)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"theses": toThesisResponses(theses)})
}

func (h *adminHandler) setThesisStatus(w http.ResponseWriter, r *http.Request) {
	caller, _ := CurrentUser(r.Context())
	id := r.PathValue("id")

	var req setStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	err := h.admin.SetThesisStatus(r.Context(), caller, id, domain.ThesisStatus(req.Status))
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	h.logger.Info("thesis status set", "thesis_id", id, "status", req.Status, "by", caller.ID)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
