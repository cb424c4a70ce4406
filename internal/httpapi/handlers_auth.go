package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"confportal/internal/auth"
	"confportal/internal/domain"
	"confportal/internal/service"
)

type authHandler struct {
	auth         *service.AuthService
	codec        auth.CookieCodec
	cookieSecure bool
	sessionTTL   time.Duration
	rememberTTL  time.Duration
	logger       *slog.Logger
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if fields := registerFieldErrors(req.Email, req.FullName, req.Password); fields != nil {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	user, err := h.auth.Register(r.Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	ttl := h.sessionTTL
	if req.Remember {
		ttl = h.rememberTTL
	}
	auth.SetSessionCookie(w, h.codec.EncodeToken(token), ttl, h.cookieSecure)

	h.logger.Info("user logged in", "user_id", user.ID, "remember", req.Remember)
	WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *authHandler) logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := CurrentSessionToken(r.Context()); ok {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			WriteDomainError(w, err)
			return
		}
	}
	auth.ClearSessionCookie(w, h.cookieSecure)
	w.WriteHeader(http.StatusNoContent)
}

func (h *authHandler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "must log in")
		return
	}
	WriteJSON(w, http.StatusOK, toUserResponse(user))
}
