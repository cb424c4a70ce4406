package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"confportal/internal/adminui"
	"confportal/internal/auth"
	"confportal/internal/config"
	"confportal/internal/domain"
	"confportal/internal/email"
	"confportal/internal/httpapi"
	"confportal/internal/obs"
	"confportal/internal/service"
	"confportal/internal/store/memory"
	"confportal/internal/store/postgres"
	"confportal/internal/userui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)

	var (
		users        service.UsersStore
		sessions     service.SessionsStore
		resets       service.PasswordResetsStore
		applications service.ApplicationsStore
		theses       service.ThesesStore
		adminUsers   service.AdminUsersStore
		bootstrap    bootstrapStore
		dbPing       func(context.Context) error
	)

	if cfg.DBDSN != "" {
		pgPool, err := postgres.Open(context.Background(), cfg.DBDSN)
		if err != nil {
			logger.Error("db open failed", "err", err)
			os.Exit(1)
		}
		defer pgPool.Close()

		usersStore := postgres.NewUsersStore(pgPool)
		users = usersStore
		sessions = postgres.NewSessionsStore(pgPool)
		resets = postgres.NewPasswordResetsStore(pgPool)
		applications = postgres.NewApplicationsStore(pgPool)
		theses = postgres.NewThesesStore(pgPool)
		adminUsers = usersStore
		bootstrap = usersStore
		dbPing = pgPool.Ping
	} else {
		logger.Warn("APP_DB_DSN not set, using in-memory store; data will not survive a restart")
		mem := memory.New()
		users = mem
		sessions = mem
		resets = mem
		applications = mem
		theses = mem
		adminUsers = mem
		bootstrap = mem
	}

	if err := bootstrapAdminUser(context.Background(), logger, bootstrap, cfg.AdminBootstrapEmail, cfg.AdminBootstrapFullName, cfg.AdminBootstrapPassword); err != nil {
		logger.Error("bootstrap admin failed", "err", err)
		os.Exit(1)
	}

	authSvc := &service.AuthService{
		Users:       users,
		Sessions:    sessions,
		SessionTTL:  cfg.SessionTTL,
		RememberTTL: cfg.RememberTTL,
	}
	resetSvc := &service.PasswordResetService{
		Resets:   resets,
		Users:    users,
		Sender:   &email.Sender{SMTP: cfg.SMTP, FromName: "Conference Portal", Logger: logger},
		TokenTTL: cfg.ResetTokenTTL,
		ResetURL: resetURLBuilder(cfg),
	}
	appSvc := &service.ApplicationService{Applications: applications}
	thesisSvc := &service.ThesisService{Theses: theses}
	adminSvc := &service.AdminService{
		Users:        adminUsers,
		Applications: applications,
		Theses:       theses,
	}

	codec := auth.NewCookieCodec([]byte(cfg.CookieSecret))

	apiRouter := httpapi.NewRouter(httpapi.RouterOpts{
		Logger:       logger,
		IsProd:       cfg.IsProd(),
		DBPing:       dbPing,
		Auth:         authSvc,
		Resets:       resetSvc,
		Applications: appSvc,
		Theses:       thesisSvc,
		Admin:        adminSvc,
		Codec:        codec,
		CookieSecure: cfg.CookieSecure(),
		SessionTTL:   cfg.SessionTTL,
		RememberTTL:  cfg.RememberTTL,
		LoginLimiter: httpapi.NewRateLimiter(30, 10),
	})

	userRouter := userui.New(userui.Opts{
		Logger:       logger,
		Auth:         authSvc,
		Applications: appSvc,
		Theses:       thesisSvc,
		Reset:        resetSvc,
		CookieCodec:  codec,
		CookieSecure: cfg.CookieSecure(),
		SessionTTL:   cfg.SessionTTL,
		RememberTTL:  cfg.RememberTTL,
	})

	adminRouter := adminui.New(adminui.Opts{
		Logger:      logger,
		Auth:        authSvc,
		Admin:       adminSvc,
		CookieCodec: codec,
	})

	root := http.NewServeMux()
	root.Handle("/", apiRouter)
	root.Handle("/app", userRouter)
	root.Handle("/app/", userRouter)
	root.Handle("/admin", adminRouter)
	root.Handle("/admin/", adminRouter)
	root.Handle("/metrics", obs.Handler())
	root.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/app/", http.StatusFound)
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           obs.Instrument(root),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "env", cfg.Env, "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}
}

func resetURLBuilder(cfg config.Config) func(token string) string {
	base := "http://" + cfg.Addr
	if cfg.PublicURL != nil {
		base = strings.TrimRight(cfg.PublicURL.String(), "/")
	}
	return func(token string) string {
		return base + "/app/reset?token=" + url.QueryEscape(token)
	}
}

type bootstrapStore interface {
	GetUserByEmail(ctx context.Context, email string) (domain.UserWithPassword, error)
	CreateUser(ctx context.Context, email, fullName, passwordHash string) (domain.User, error)
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
}

// bootstrapAdminUser creates the first administrator from env config, or
// promotes the account if it already exists.
func bootstrapAdminUser(ctx context.Context, logger *slog.Logger, users bootstrapStore, adminEmail, fullName, password string) error {
	if password == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	if len(password) < 8 {
		return errors.New("APP_ADMIN_BOOTSTRAP_PASSWORD: must be at least 8 characters")
	}
	if adminEmail == "" {
		return errors.New("admin bootstrap: email is required")
	}
	if fullName == "" {
		fullName = "Administrator"
	}

	existing, err := users.GetUserByEmail(ctx, adminEmail)
	if err == nil {
		if existing.IsAdmin {
			logger.Info("admin bootstrap: admin already exists", "email", adminEmail)
			return nil
		}
		if err := users.SetAdmin(ctx, existing.ID, true); err != nil {
			return fmt.Errorf("admin bootstrap: promote user: %w", err)
		}
		logger.Info("admin bootstrap: promoted existing user", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("admin bootstrap: lookup user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("admin bootstrap: hash password: %w", err)
	}

	created, err := users.CreateUser(ctx, adminEmail, fullName, hash)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			logger.Info("admin bootstrap: user already exists", "email", adminEmail)
			return nil
		}
		return fmt.Errorf("admin bootstrap: create user: %w", err)
	}
	if err := users.SetAdmin(ctx, created.ID, true); err != nil {
		return fmt.Errorf("admin bootstrap: set admin flag: %w", err)
	}

	logger.Info("admin bootstrap: created admin user", "email", adminEmail)
	return nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsProd() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
