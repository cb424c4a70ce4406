package userui

import (
	"fmt"
	"html/template"
	"net/http"

	"confportal/internal/domain"
)

type templates struct {
	login    *template.Template
	register *template.Template
	forgot   *template.Template
	reset    *template.Template
	home     *template.Template
	apply    *template.Template
	errorT   *template.Template
}

type viewData struct {
	Title  string
	Error  string
	Notice string
}

type loginViewData struct {
	Title  string
	Email  string
	Error  string
	Notice string
}

type registerViewData struct {
	Title    string
	Email    string
	FullName string
	Error    string
}

type forgotViewData struct {
	Title  string
	Email  string
	Error  string
	Notice string
}

type resetViewData struct {
	Title  string
	Token  string
	Error  string
	Notice string
}

type homeViewData struct {
	Title       string
	User        domain.User
	HasApplied  bool
	Application *domain.Application
	Theses      []domain.Thesis
	CanSubmit   bool
	Error       string
	Notice      string
}

type applyViewData struct {
	Title  string
	User   domain.User
	Form   applyForm
	Error  string
	Notice string
}

type applyForm struct {
	Role       string
	FullName   string
	Email      string
	Contact    string
	Interests  string
	TalkTitle  string
	TalkThesis string
}

func parseTemplates() (*templates, error) {
	parse := func(files ...string) (*template.Template, error) {
		t, err := template.New("base").ParseFS(assets, files...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}

	login, err := parse("templates/login.html")
	if err != nil {
		return nil, fmt.Errorf("parse login: %w", err)
	}
	register, err := parse("templates/register.html")
	if err != nil {
		return nil, fmt.Errorf("parse register: %w", err)
	}
	forgot, err := parse("templates/forgot.html")
	if err != nil {
		return nil, fmt.Errorf("parse forgot: %w", err)
	}
	resetT, err := parse("templates/reset.html")
	if err != nil {
		return nil, fmt.Errorf("parse reset: %w", err)
	}
	home, err := parse("templates/layout.html", "templates/home.html")
	if err != nil {
		return nil, fmt.Errorf("parse home: %w", err)
	}
	apply, err := parse("templates/layout.html", "templates/apply.html")
	if err != nil {
		return nil, fmt.Errorf("parse apply: %w", err)
	}
	errorT, err := parse("templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	return &templates{
		login:    login,
		register: register,
		forgot:   forgot,
		reset:    resetT,
		home:     home,
		apply:    apply,
		errorT:   errorT,
	}, nil
}

func renderHTML(w http.ResponseWriter, status int, t *template.Template, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = t.ExecuteTemplate(w, name, data)
}

func (t *templates) renderLogin(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.login, "login.html", data)
}

func (t *templates) renderRegister(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.register, "register.html", data)
}

func (t *templates) renderForgot(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.forgot, "forgot.html", data)
}

func (t *templates) renderReset(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.reset, "reset.html", data)
}

func (t *templates) renderHome(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.home, "home.html", data)
}

func (t *templates) renderApply(w http.ResponseWriter, status int, data any) {
	renderHTML(w, status, t.apply, "apply.html", data)
}

func (t *templates) renderError(w http.ResponseWriter, status int, title, msg string) {
	renderHTML(w, status, t.errorT, "error.html", viewData{Title: title, Error: msg})
}
