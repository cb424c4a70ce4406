package adminui

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"confportal/internal/domain"
)

const listPageSize = 200

func noticeFor(code string) string {
	switch code {
	case "status_set":
		return "Status updated."
	case "promoted":
		return "User promoted to administrator."
	case "deleted":
		return "User deleted."
	default:
		return ""
	}
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	http.Redirect(w, r, path+"?notice="+url.QueryEscape(notice), http.StatusFound)
}

func (a *app) handleDashboard(w http.ResponseWriter, r *http.Request, user domain.User) {
	data := dashboardViewData{Title: "Admin", User: user}

	apps, err := a.adminSvc.ListApplications(r.Context(), user, listPageSize, 0)
	if err != nil {
		a.renderFailure(w, "adminui: list applications failed", err)
		return
	}
	theses, err := a.adminSvc.ListTheses(r.Context(), user, listPageSize, 0)
	if err != nil {
		a.renderFailure(w, "adminui: list theses failed", err)
		return
	}
	users, err := a.adminSvc.ListUsers(r.Context(), user, listPageSize, 0)
	if err != nil {
		a.renderFailure(w, "adminui: list users failed", err)
		return
	}

	data.Applications = len(apps)
	data.Theses = len(theses)
	data.Users = len(users)
	a.templates.renderDashboard(w, http.StatusOK, data)
}

func (a *app) handleApplications(w http.ResponseWriter, r *http.Request, user domain.User) {
	apps, err := a.adminSvc.ListApplications(r.Context(), user, listPageSize, 0)
	if err != nil {
		a.renderFailure(w, "adminui: list applications failed", err)
		return
	}
	a.templates.renderApplications(w, http.StatusOK, applicationsViewData{
		Title:        "Applications",
		User:         user,
		Applications: apps,
		Notice:       noticeFor(r.URL.Query().Get("notice")),
	})
}

func (a *app) handleApplicationStatus(w http.ResponseWriter, r *http.Request, user domain.User) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderError(w, http.StatusBadRequest, "Applications", "Invalid form.")
		return
	}
	id := r.PathValue("id")
	status := domain.ApplicationStatus(strings.TrimSpace(r.FormValue("status")))

	if err := a.adminSvc.SetApplicationStatus(r.Context(), user, id, status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			a.templates.renderError(w, http.StatusBadRequest, "Applications", "Unknown status value.")
		case errors.Is(err, domain.ErrNotFound):
			a.templates.renderError(w, http.StatusNotFound, "Applications", "Application not found.")
		default:
			a.renderFailure(w, "adminui: set application status failed", err)
		}
		return
	}

	a.logger.Info("application status set", "application_id", id, "status", status, "by", user.ID)
	redirectWithNotice(w, r, "/admin/applications", "status_set")
}

func (a *app) handleTheses(w http.ResponseWriter, r *http.Request, user domain.User) {
	theses, err := a.adminSvc.ListTheses(r.Context(), user, listPageSize, 0)
	if err != nil {
		a.renderFailure(w, "adminui: list theses failed", err)
		return
	}
	a.templates.renderTheses(w, http.StatusOK, thesesViewData{
		Title:  "Theses",
		User:   user,
		Theses: theses,
		Notice: noticeFor(r.URL.Query().Get("notice")),
	})
}

func (a *app) handleThesisStatus(w http.ResponseWriter, r *http.Request, user domain.User) {
	if err := r.ParseForm(); err != nil {
		a.templates.renderError(w, http.StatusBadRequest, "Theses", "Invalid form.")
		return
	}
	id := r.PathValue("id")
	status := domain.ThesisStatus(strings.TrimSpace(r.FormValue("status")))

	if err := a.adminSvc.SetThesisStatus(r.Context(), user, id, status); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidStatus):
			a.templates.renderError(w, http.StatusBadRequest, "Theses", "Unknown status value.")
		case errors.Is(err, domain.ErrNotFound):
			a.templates.renderError(w, http.StatusNotFound, "Theses", "Thesis not found.")
		default:
			a.renderFailure(w, "adminui: set thesis status failed", err)
		}
		return
	}

	a.logger.Info("thesis status set", "thesis_id", id, "status", status, "by", user.ID)
	redirectWithNotice(w, r, "/admin/theses", "status_set")
}

func (a *app) handleUsers(w http.ResponseWriter, r *http.Request, user domain.User) {
	users, err := a.adminSvc.ListUsers(r.Context(), user, listPageSize, 0)
	if err != nil {
		a.renderFailure(w, "adminui: list users failed", err)
		return
	}
	a.templates.renderUsers(w, http.StatusOK, usersViewData{
		Title:  "Users",
		User:   user,
		Users:  users,
		Notice: noticeFor(r.URL.Query().Get("notice")),
	})
}

func (a *app) handlePromote(w http.ResponseWriter, r *http.Request, user domain.User) {
	id := r.PathValue("id")

	if err := a.adminSvc.PromoteUser(r.Context(), user, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.templates.renderError(w, http.StatusNotFound, "Users", "User not found.")
			return
		}
		a.renderFailure(w, "adminui: promote user failed", err)
		return
	}

	a.logger.Info("user promoted to admin", "user_id", id, "by", user.ID)
	redirectWithNotice(w, r, "/admin/users", "promoted")
}

func (a *app) handleDeleteUser(w http.ResponseWriter, r *http.Request, user domain.User) {
	id := r.PathValue("id")

	if err := a.adminSvc.DeleteUser(r.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			a.templates.renderError(w, http.StatusNotFound, "Users", "User not found.")
		case errors.Is(err, domain.ErrForbidden):
			a.templates.renderError(w, http.StatusForbidden, "Users", "You cannot delete this account.")
		default:
			a.renderFailure(w, "adminui: delete user failed", err)
		}
		return
	}

	a.logger.Info("user deleted", "user_id", id, "by", user.ID)
	redirectWithNotice(w, r, "/admin/users", "deleted")
}

func (a *app) renderFailure(w http.ResponseWriter, msg string, err error) {
	a.logger.Error(msg, "err", err)
	a.templates.renderError(w, http.StatusInternalServerError, "Admin", "Something went wrong.")
}
