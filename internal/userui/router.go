package userui

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"confportal/internal/auth"
	"confportal/internal/domain"
	"confportal/internal/service"
)

type Opts struct {
	Logger *slog.Logger

	Auth         *service.AuthService
	Applications *service.ApplicationService
	Theses       *service.ThesisService
	Reset        *service.PasswordResetService

	CookieCodec  auth.CookieCodec
	CookieSecure bool
	SessionTTL   time.Duration
	RememberTTL  time.Duration
}

func New(opts Opts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &app{
		logger:       logger,
		authSvc:      opts.Auth,
		appsSvc:      opts.Applications,
		thesesSvc:    opts.Theses,
		resetSvc:     opts.Reset,
		cookieCodec:  opts.CookieCodec,
		cookieSecure: opts.CookieSecure,
		sessionTTL:   opts.SessionTTL,
		rememberTTL:  opts.RememberTTL,
	}

	t, err := parseTemplates()
	if err != nil {
		logger.Error("userui: parse templates failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	app.templates = t

	mux := http.NewServeMux()
	mux.HandleFunc("GET /app", app.redirectApp)
	mux.HandleFunc("GET /app/", app.requireAuth(app.handleHome))
	mux.HandleFunc("GET /app/login", app.handleLoginGet)
	mux.HandleFunc("POST /app/login", app.handleLoginPost)
	mux.HandleFunc("GET /app/register", app.handleRegisterGet)
	mux.HandleFunc("POST /app/register", app.handleRegisterPost)
	mux.HandleFunc("GET /app/forgot", app.handleForgotGet)
	mux.HandleFunc("POST /app/forgot", app.handleForgotPost)
	mux.HandleFunc("GET /app/reset", app.handleResetGet)
	mux.HandleFunc("POST /app/reset", app.handleResetPost)
	mux.HandleFunc("POST /app/logout", app.handleLogoutPost)
	mux.HandleFunc("GET /app/apply", app.requireAuth(app.handleApplyGet))
	mux.HandleFunc("POST /app/apply", app.requireAuth(app.handleApplyPost))
	mux.HandleFunc("POST /app/theses", app.requireAuth(app.handleThesisCreate))
	mux.HandleFunc("POST /app/theses/{id}/edit", app.requireAuth(app.handleThesisEdit))
	mux.HandleFunc("POST /app/theses/{id}/delete", app.requireAuth(app.handleThesisDelete))

	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		logger.Error("userui: static fs setup failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	static := http.StripPrefix("/app/static/", http.FileServer(http.FS(staticFS)))
	mux.Handle("GET /app/static/", static)
	mux.Handle("HEAD /app/static/", static)

	return mux
}

type app struct {
	logger *slog.Logger

	authSvc   *service.AuthService
	appsSvc   *service.ApplicationService
	thesesSvc *service.ThesisService
	resetSvc  *service.PasswordResetService

	cookieCodec  auth.CookieCodec
	cookieSecure bool
	sessionTTL   time.Duration
	rememberTTL  time.Duration

	templates *templates
}

func (a *app) redirectApp(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/app/", http.StatusFound)
}

func (a *app) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := a.currentUser(r)
		if !ok {
			http.Redirect(w, r, "/app/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func (a *app) currentUser(r *http.Request) (domain.User, string, bool) {
	if a.authSvc == nil {
		return domain.User{}, "", false
	}
	c, err := r.Cookie(auth.SessionCookieName)
	if err != nil || c.Value == "" {
		return domain.User{}, "", false
	}
	token, ok := a.cookieCodec.DecodeToken(c.Value)
	if !ok {
		return domain.User{}, "", false
	}
	u, err := a.authSvc.GetUserForSession(r.Context(), token)
	if err != nil {
		return domain.User{}, "", false
	}
	return u, token, true
}
