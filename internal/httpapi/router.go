package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"confportal/internal/auth"
	"confportal/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	Auth         *service.AuthService
	Resets       *service.PasswordResetService
	Applications *service.ApplicationService
	Theses       *service.ThesisService
	Admin        *service.AdminService

	Codec        auth.CookieCodec
	CookieSecure bool
	SessionTTL   time.Duration
	RememberTTL  time.Duration

	// DBPing reports storage health for /healthz. Nil means no storage
	// check, the endpoint only confirms the process is serving.
	DBPing func(ctx context.Context) error

	// LoginLimiter throttles the credential endpoints. Nil disables
	// throttling (tests).
	LoginLimiter *RateLimiter
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authH := &authHandler{
		auth:         opts.Auth,
		codec:        opts.Codec,
		cookieSecure: opts.CookieSecure,
		sessionTTL:   opts.SessionTTL,
		rememberTTL:  opts.RememberTTL,
		logger:       logger,
	}
	resetH := &passwordResetHandler{resets: opts.Resets, logger: logger}
	appH := &applicationHandler{applications: opts.Applications}
	thesisH := &thesisHandler{theses: opts.Theses}
	adminH := &adminHandler{admin: opts.Admin, logger: logger}

	requireAuth := RequireAuth(opts.Auth, opts.Codec)
	authed := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		if opts.LoginLimiter == nil {
			return h
		}
		return opts.LoginLimiter.Limit(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if opts.DBPing != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := opts.DBPing(ctx); err != nil {
				logger.Error("health check failed", "error", err)
				WriteError(w, http.StatusServiceUnavailable, "unhealthy", "storage unavailable")
				return
			}
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /v1/auth/register", authH.register)
	mux.HandleFunc("POST /v1/auth/login", limited(authH.login))
	mux.Handle("POST /v1/auth/logout", authed(authH.logout))
	mux.Handle("GET /v1/users/me", authed(authH.me))

	mux.HandleFunc("POST /v1/auth/password/forgot", limited(resetH.forgot))
	mux.HandleFunc("POST /v1/auth/password/reset", resetH.reset)

	mux.Handle("POST /v1/application", authed(appH.submit))
	mux.Handle("GET /v1/application", authed(appH.mine))

	mux.Handle("POST /v1/theses", authed(thesisH.submit))
	mux.Handle("GET /v1/theses", authed(thesisH.mine))
	mux.Handle("PUT /v1/theses/{id}", authed(thesisH.edit))
	mux.Handle("DELETE /v1/theses/{id}", authed(thesisH.delete))

	mux.Handle("GET /v1/admin/users", authed(adminH.listUsers))
	mux.Handle("POST /v1/admin/users/{id}/promote", authed(adminH.promoteUser))
	mux.Handle("DELETE /v1/admin/users/{id}", authed(adminH.deleteUser))
	mux.Handle("GET /v1/admin/applications", authed(adminH.listApplications))
	mux.Handle("POST /v1/admin/applications/{id}/status", authed(adminH.setApplicationStatus))
	mux.Handle("GET /v1/admin/theses", authed(adminH.listTheses))
	mux.Handle("POST /v1/admin/theses/{id}/status", authed(adminH.setThesisStatus))

	var handler http.Handler = mux
	handler = Recoverer(logger, opts.IsProd)(handler)
	handler = RequestLogger(logger)(handler)
	handler = RequestID()(handler)
	return handler
}
