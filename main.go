package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/msomdec/projectpad/internal/config"
	"github.com/msomdec/projectpad/internal/handler"
	"github.com/msomdec/projectpad/internal/repository/sqlite"
	"github.com/msomdec/projectpad/internal/service"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		slog.Error("failed to parse configuration", "error", err)
		os.Exit(1)
	}

	if err := initLogger(cfg.App); err != nil {
		slog.Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	authService := service.NewAuthService(db.Users(), cfg.Auth.JWTSecret, cfg.Auth.BcryptCost)
	projectService := service.NewProjectService(db.Projects())
	noteService := service.NewNoteService(db.Notes(), db.Projects())
	loginLimiter := service.NewTokenBucket(cfg.Auth.LoginRate, cfg.Auth.LoginBurst)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, authService, projectService, noteService, loginLimiter, cfg.Auth.CookieSecure)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.RequestID(handler.SecurityHeaders(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// initLogger installs the global slog handler: tinted output for local
// development, JSON otherwise.
func initLogger(cfg config.AppConfig) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return err
	}

	var h slog.Handler
	if cfg.Pretty {
		h = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(h))
	return nil
}
