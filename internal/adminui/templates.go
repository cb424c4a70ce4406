package adminui

import (
	"fmt"
	"html/template"
	"net/http"

	"confportal/internal/domain"
)

type templates struct {
	dashboard    *template.Template
	applications *template.Template
	theses       *template.Template
	users        *template.Template
	errorT       *template.Template
}

type viewData struct {
	Title  string
	Error  string
	Notice string
}

type dashboardViewData struct {
	Title        string
	User         domain.User
	Applications int
	Theses       int
	Users        int
	Error        string
	Notice       string
}

type applicationsViewData struct {
	Title        string
	User         domain.User
	Applications []domain.Application
	Error        string
	Notice       string
}

type thesesViewData struct {
	Title  string
	User   domain.User
	Theses []domain.Thesis
	Error  string
	Notice string
}

type usersViewData struct {
	Title  string
	User   domain.User
	Users  []domain.User
	Error  string
	Notice string
}

func parseTemplates() (*templates, error) {
	parse := func(page string) (*template.Template, error) {
		t, err := template.New("base").ParseFS(assets, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		return t, nil
	}

	dashboard, err := parse("dashboard.html")
	if err != nil {
		return nil, err
	}
	applications, err := parse("applications.html")
	if err != nil {
		return nil, err
	}
	theses, err := parse("theses.html")
	if err != nil {
		return nil, err
	}
	users, err := parse("users.html")
	if err != nil {
		return nil, err
	}
	errorT, err := template.New("base").ParseFS(assets, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error.html: %w", err)
	}

	return &templates{
		dashboard:    dashboard,
		applications: applications,
		theses:       theses,
		users:        users,
		errorT:       errorT,
	}, nil
}

func renderHTML(w http.ResponseWriter, status int, t *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = t.ExecuteTemplate(w, name, data)
}

func (t *templates) renderDashboard(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.dashboard, "dashboard.html", data)
}

func (t *templates) renderApplications(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.applications, "applications.html", data)
}

func (t *templates) renderTheses(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.theses, "theses.html", data)
}

func (t *templates) renderUsers(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.users, "users.html", data)
}

func (t *templates) renderError(w http.ResponseWriter, status int, title, msg string) {
	renderHTML(w, status, t.errorT, "error.html", viewData{Title: title, Error: msg})
}
