package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"confportal/internal/domain"
	"confportal/internal/service"
)

type passwordResetHandler struct {
	resets *service.PasswordResetService
	logger *slog.Logger
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// forgot always answers 202: the response must not reveal whether the
// email is registered.
func (h *passwordResetHandler) forgot(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"email": "required"}))
		return
	}

	if err := h.resets.RequestReset(r.Context(), email); err != nil {
		h.logger.Error("password reset request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	WriteJSON(w, http.StatusAccepted, map[string]string{
		"status": "ok",
	})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *passwordResetHandler) reset(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.Token) == "" {
		fields["token"] = "required"
	}
	if len(req.NewPassword) < minPasswordLen {
		fields["new_password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	if err := h.resets.ConfirmReset(r.Context(), req.Token, req.NewPassword); err != nil {
		WriteDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
