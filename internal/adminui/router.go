package adminui

import (
	"io/fs"
	"log/slog"
	"net/http"

	"confportal/internal/auth"
	"confportal/internal/domain"
	"confportal/internal/service"
)

type Opts struct {
	Logger *slog.Logger

	Auth  *service.AuthService
	Admin *service.AdminService

	CookieCodec auth.CookieCodec
}

func New(opts Opts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &app{
		logger:      logger,
		authSvc:     opts.Auth,
		adminSvc:    opts.Admin,
		cookieCodec: opts.CookieCodec,
	}

	t, err := parseTemplates()
	if err != nil {
		logger.Error("adminui: parse templates failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	app.templates = t

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin", app.redirectAdmin)
	mux.HandleFunc("GET /admin/", app.requireAdmin(app.handleDashboard))
	mux.HandleFunc("GET /admin/applications", app.requireAdmin(app.handleApplications))
	mux.HandleFunc("POST /admin/applications/{id}/status", app.requireAdmin(app.handleApplicationStatus))
	mux.HandleFunc("GET /admin/theses", app.requireAdmin(app.handleTheses))
	mux.HandleFunc("POST /admin/theses/{id}/status", app.requireAdmin(app.handleThesisStatus))
	mux.HandleFunc("GET /admin/users", app.requireAdmin(app.handleUsers))
	mux.HandleFunc("POST /admin/users/{id}/promote", app.requireAdmin(app.handlePromote))
	mux.HandleFunc("POST /admin/users/{id}/delete", app.requireAdmin(app.handleDeleteUser))

	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		logger.Error("adminui: static fs setup failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	static := http.StripPrefix("/admin/static/", http.FileServer(http.FS(staticFS)))
	mux.Handle("GET /admin/static/", static)

	return mux
}

type app struct {
	logger *slog.Logger

	authSvc  *service.AuthService
	adminSvc *service.AdminService

	cookieCodec auth.CookieCodec

	templates *templates
}

func (a *app) redirectAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/", http.StatusFound)
}

// requireAdmin resolves the session cookie. An anonymous visitor goes to
// the regular login page; a logged-in non-admin gets a 403 page.
func (a *app) requireAdmin(next func(http.ResponseWriter, *http.Request, domain.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.currentUser(r)
		if !ok {
			http.Redirect(w, r, "/app/login", http.StatusFound)
			return
		}
		if !user.IsAdmin {
			a.templates.renderError(w, http.StatusForbidden, "Forbidden", "This area is for administrators only.")
			return
		}
		next(w, r, user)
	}
}

func (a *app) currentUser(r *http.Request) (domain.User, bool) {
	if a.authSvc == nil {
		return domain.User{}, false
	}
	c, err := r.Cookie(auth.SessionCookieName)
	if err != nil || c.Value == "" {
		return domain.User{}, false
	}
	token, ok := a.cookieCodec.DecodeToken(c.Value)
	if !ok {
		return domain.User{}, false
	}
	u, err := a.authSvc.GetUserForSession(r.Context(), token)
	if err != nil {
		return domain.User{}, false
	}
	return u, true
}
