package userui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"confportal/internal/auth"
	"confportal/internal/domain"
)

const portalTitle = "Conference Portal"

func mapNotice(code string) string {
	switch code {
	case "registered":
		return "Account created. You can log in now."
	case "password_reset":
		return "Password updated. Log in with the new one."
	case "logged_out":
		return "You have been logged out."
	case "applied":
		return "Application submitted. You will be notified once it is reviewed."
	case "thesis_saved":
		return "Thesis saved."
	case "thesis_deleted":
		return "Thesis deleted."
	default:
		return ""
	}
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	if notice != "" {
		path += "?notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, path, http.StatusFound)
}

func (a *app) handleHome(w http.ResponseWriter, r *http.Request) {
	user, _, _ := a.currentUser(r)
	a.renderHomeFor(w, r, user, http.StatusOK, "", mapNotice(r.URL.Query().Get("notice")))
}

func (a *app) renderHomeFor(w http.ResponseWriter, r *http.Request, user domain.User, status int, errMsg, notice string) {
	data := homeViewData{
		Title:  portalTitle,
		User:   user,
		Error:  errMsg,
		Notice: notice,
	}

	app, err := a.appsSvc.Mine(r.Context(), user)
	switch {
	case err == nil:
		data.HasApplied = true
		data.Application = &app
	case errors.Is(err, domain.ErrNotFound):
	default:
		a.logger.Error("userui: load application failed", "err", err)
		a.templates.renderError(w, http.StatusInternalServerError, portalTitle, "Something went wrong.")
		return
	}

	theses, err := a.thesesSvc.Mine(r.Context(), user)
	if err != nil {
		a.logger.Error("userui: load theses failed", "err", err)
		a.templates.renderError(w, http.StatusInternalServerError, portalTitle, "Something went wrong.")
		return
	}
	data.Theses = theses
	data.CanSubmit = len(theses) < domain.MaxThesesPerUser

	a.templates.renderHome(w, status, data)
}

func (a *app) handleLoginGet(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := a.currentUser(r); ok {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}
	notice := mapNotice(strings.TrimSpace(r.URL.Query().Get("notice")))
	a.templates.renderLogin(w, http.StatusOK, loginViewData{Title: portalTitle, Notice: notice})
}

func (a *app) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := a.currentUser(r); ok {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		a.templates.renderLogin(w, http.StatusBadRequest, loginViewData{Title: portalTitle, Error: "Invalid form"})
		return
	}

	email := normalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")
	remember := r.FormValue("remember") != ""
	if email == "" || password == "" {
		a.templates.renderLogin(w, http.StatusBadRequest, loginViewData{Title: portalTitle, Email: email, Error: "Email and password are required"})
		return
	}

	_, token, err := a.authSvc.Login(r.Context(), email, password, remember)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			a.templates.renderLogin(w, http.StatusUnauthorized, loginViewData{Title: portalTitle, Email: email, Error: "Invalid email or password"})
			return
		}
		a.logger.Error("userui: login failed", "err", err)
		a.templates.renderLogin(w, http.StatusInternalServerError, loginViewData{Title: portalTitle, Email: email, Error: "Login failed"})
		return
	}

	ttl := a.sessionTTL
	if remember {
		ttl = a.rememberTTL
	}
	auth.SetSessionCookie(w, a.cookieCodec.EncodeToken(token), ttl, a.cookieSecure)
	http.Redirect(w, r, "/app/", http.StatusFound)
}

func (a *app) handleRegisterGet(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := a.currentUser(r); ok {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}
	a.templates.renderRegister(w, http.StatusOK, registerViewData{Title: "Create Account"})
}

func (a *app) handleRegisterPost(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := a.currentUser(r); ok {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		a.templates.renderRegister(w, http.StatusBadRequest, registerViewData{Title: "Create Account", Error: "Invalid form"})
		return
	}

	email := normalizeEmail(r.FormValue("email"))
	fullName := strings.TrimSpace(r.FormValue("full_name"))
	password := r.FormValue("password")

	var errs []string
	if !validEmail(email) {
		errs = append(errs, "Email must be valid.")
	}
	if fullName == "" {
		errs = append(errs, "Full name is required.")
	}
	if len(password) < 8 {
		errs = append(errs, "Password must be at least 8 characters.")
	}
	if len(errs) > 0 {
		a.templates.renderRegister(w, http.StatusBadRequest, registerViewData{
			Title:    "Create Account",
			Email:    email,
			FullName: fullName,
			Error:    strings.Join(errs, " "),
		})
		return
	}

	_, err := a.authSvc.Register(r.Context(), email, fullName, password)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			a.templates.renderRegister(w, http.StatusBadRequest, registerViewData{
				Title:    "Create Account",
				Email:    email,
				FullName: fullName,
				Error:    "That email is already in use.",
			})
			return
		}
		a.logger.Error("userui: register failed", "err", err)
		a.templates.renderRegister(w, http.StatusInternalServerError, registerViewData{
			Title:    "Create Account",
			Email:    email,
			FullName: fullName,
			Error:    "Registration failed.",
		})
		return
	}

	redirectWithNotice(w, r, "/app/login", "registered")
}

func (a *app) handleLogoutPost(w http.ResponseWriter, r *http.Request) {
	_, token, ok := a.currentUser(r)
	if ok && token != "" {
		_ = a.authSvc.Logout(r.Context(), token)
	}
	auth.ClearSessionCookie(w, a.cookieSecure)
	redirectWithNotice(w, r, "/app/login", "logged_out")
}

const forgotSentMsg = "If that email is registered, a reset link is on its way."

func (a *app) handleForgotGet(w http.ResponseWriter, r *http.Request) {
	a.templates.renderForgot(w, http.StatusOK, forgotViewData{Title: "Reset Password"})
}

func (a *app) handleForgotPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderForgot(w, http.StatusBadRequest, forgotViewData{Title: "Reset Password", Error: "Invalid form"})
		return
	}

	email := normalizeEmail(r.FormValue("email"))
	if !validEmail(email) {
		a.templates.renderForgot(w, http.StatusBadRequest, forgotViewData{Title: "Reset Password", Email: email, Error: "Email must be valid."})
		return
	}

	if err := a.resetSvc.RequestReset(r.Context(), email); err != nil {
		a.logger.Error("userui: reset request failed", "err", err)
	}
	// Same message either way so the form does not leak registered emails.
	a.templates.renderForgot(w, http.StatusOK, forgotViewData{Title: "Reset Password", Notice: forgotSentMsg})
}

func (a *app) handleResetGet(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		a.templates.renderReset(w, http.StatusBadRequest, resetViewData{Title: "Reset Password", Error: "Reset token is required."})
		return
	}
	a.templates.renderReset(w, http.StatusOK, resetViewData{Title: "Reset Password", Token: token})
}

func (a *app) handleResetPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderReset(w, http.StatusBadRequest, resetViewData{Title: "Reset Password", Error: "Invalid form"})
		return
	}

	token := strings.TrimSpace(r.FormValue("token"))
	password := r.FormValue("password")
	if token == "" {
		a.templates.renderReset(w, http.StatusBadRequest, resetViewData{Title: "Reset Password", Error: "Reset token is required."})
		return
	}
	if len(password) < 8 {
		a.templates.renderReset(w, http.StatusBadRequest, resetViewData{Title: "Reset Password", Token: token, Error: "Password must be at least 8 characters."})
		return
	}

	if err := a.resetSvc.ConfirmReset(r.Context(), token, password); err != nil {
		if errors.Is(err, domain.ErrResetTokenInvalid) {
			a.templates.renderReset(w, http.StatusBadRequest, resetViewData{Title: "Reset Password", Error: "That reset link is invalid or expired."})
			return
		}
		a.logger.Error("userui: reset confirm failed", "err", err)
		a.templates.renderReset(w, http.StatusInternalServerError, resetViewData{Title: "Reset Password", Token: token, Error: "Reset failed."})
		return
	}

	redirectWithNotice(w, r, "/app/login", "password_reset")
}

func (a *app) handleApplyGet(w http.ResponseWriter, r *http.Request) {
	user, _, _ := a.currentUser(r)

	applied, err := a.appsSvc.HasApplied(r.Context(), user)
	if err != nil {
		a.logger.Error("userui: check application failed", "err", err)
		a.templates.renderError(w, http.StatusInternalServerError, portalTitle, "Something went wrong.")
		return
	}
	if applied {
		http.Redirect(w, r, "/app/", http.StatusFound)
		return
	}

	a.templates.renderApply(w, http.StatusOK, applyViewData{
		Title: "Apply",
		User:  user,
		Form:  applyForm{Role: "listener", FullName: user.FullName, Email: user.Email},
	})
}

func (a *app) handleApplyPost(w http.ResponseWriter, r *http.Request) {
	user, _, _ := a.currentUser(r)

	if err := r.ParseForm(); err != nil {
		a.templates.renderApply(w, http.StatusBadRequest, applyViewData{Title: "Apply", User: user, Error: "Invalid form"})
		return
	}

	form := applyForm{
		Role:       strings.TrimSpace(r.FormValue("role")),
		FullName:   strings.TrimSpace(r.FormValue("full_name")),
		Email:      normalizeEmail(r.FormValue("email")),
		Contact:    strings.TrimSpace(r.FormValue("contact")),
		Interests:  strings.TrimSpace(r.FormValue("interests")),
		TalkTitle:  strings.TrimSpace(r.FormValue("talk_title")),
		TalkThesis: strings.TrimSpace(r.FormValue("talk_thesis")),
	}

	_, err := a.appsSvc.Submit(r.Context(), user, applicationInput(form))
	if err != nil {
		var verr *domain.ValidationError
		switch {
		case errors.As(err, &verr):
			a.templates.renderApply(w, http.StatusBadRequest, applyViewData{
				Title: "Apply",
				User:  user,
				Form:  form,
				Error: verr.Error(),
			})
		case errors.Is(err, domain.ErrAlreadyApplied):
			http.Redirect(w, r, "/app/", http.StatusFound)
		default:
			a.logger.Error("userui: submit application failed", "err", err)
			a.templates.renderApply(w, http.StatusInternalServerError, applyViewData{
				Title: "Apply",
				User:  user,
				Form:  form,
				Error: "Submission failed.",
			})
		}
		return
	}

	redirectWithNotice(w, r, "/app/", "applied")
}

func (a *app) handleThesisCreate(w http.ResponseWriter, r *http.Request) {
	user, _, _ := a.currentUser(r)

	if err := r.ParseForm(); err != nil {
		a.renderHomeFor(w, r, user, http.StatusBadRequest, "Invalid form", "")
		return
	}

	_, err := a.thesesSvc.Submit(r.Context(), user, r.FormValue("title"), r.FormValue("abstract"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			a.renderHomeFor(w, r, user, http.StatusBadRequest, "Thesis title is required.", "")
		case errors.Is(err, domain.ErrThesisLimit):
			a.renderHomeFor(w, r, user, http.StatusBadRequest, "You already have the maximum number of theses.", "")
		default:
			a.logger.Error("userui: submit thesis failed", "err", err)
			a.renderHomeFor(w, r, user, http.StatusInternalServerError, "Could not save the thesis.", "")
		}
		return
	}

	redirectWithNotice(w, r, "/app/", "thesis_saved")
}

func (a *app) handleThesisEdit(w http.ResponseWriter, r *http.Request) {
	user, _, _ := a.currentUser(r)
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		a.renderHomeFor(w, r, user, http.StatusBadRequest, "Invalid form", "")
		return
	}

	err := a.thesesSvc.Edit(r.Context(), user, id, r.FormValue("title"), r.FormValue("abstract"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			a.renderHomeFor(w, r, user, http.StatusBadRequest, "Thesis title is required.", "")
		case errors.Is(err, domain.ErrNotFound):
			a.renderHomeFor(w, r, user, http.StatusNotFound, "That thesis does not exist.", "")
		default:
			a.logger.Error("userui: edit thesis failed", "err", err)
			a.renderHomeFor(w, r, user, http.StatusInternalServerError, "Could not save the thesis.", "")
		}
		return
	}

	redirectWithNotice(w, r, "/app/", "thesis_saved")
}

func (a *app) handleThesisDelete(w http.ResponseWriter, r *http.Request) {
	user, _, _ := a.currentUser(r)
	id := r.PathValue("id")

	if err := a.thesesSvc.Delete(r.Context(), user, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.renderHomeFor(w, r, user, http.StatusNotFound, "That thesis does not exist.", "")
			return
		}
		a.logger.Error("userui: delete thesis failed", "err", err)
		a.renderHomeFor(w, r, user, http.StatusInternalServerError, "Could not delete the thesis.", "")
		return
	}

	redirectWithNotice(w, r, "/app/", "thesis_deleted")
}
