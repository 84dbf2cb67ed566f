package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mailblast/internal/auth"
	"mailblast/internal/bulk"
	"mailblast/internal/config"
	"mailblast/internal/http_server/handlers/login"
	"mailblast/internal/http_server/handlers/sendemails"
	"mailblast/internal/http_server/handlers/signup"
	"mailblast/internal/http_server/handlers/testemail"
	"mailblast/internal/http_server/handlers/upload"
	"mailblast/internal/mailer"
	"mailblast/internal/middleware/authjwt"
	rateLimit "mailblast/internal/middleware/ratelimit"
	"mailblast/internal/storage/postgres"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting mailblast", slog.String("env", cfg.Env))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("Shutdown signal received")
		cancel()
	}()

	storage, err := postgres.New(ctx, cfg)
	if err != nil {
		log.Error("failed to connect postgres", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	authService := auth.New(log, storage, storage, cfg.Tokens.Secret, cfg.Tokens.AccessTokenTTL)
	dispatcher := mailer.New(log, cfg.Mail)
	orchestrator := bulk.New(log, dispatcher)

	router := setupRouter(log, cfg, authService, dispatcher, orchestrator)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server is running", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", slog.String("err", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down HTTP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", slog.String("err", err.Error()))
	} else {
		log.Info("Server stopped gracefully")
	}

	log.Info("Main service stopped")
}

func setupRouter(
	log *slog.Logger,
	cfg *config.Config,
	authService *auth.Auth,
	dispatcher *mailer.Mailer,
	orchestrator *bulk.Orchestrator,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://127.0.0.1:5500", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	validate := validator.New()

	r.With(rateLimit.Signup()).Post("/signup",
		signup.New(log, validate, authService),
	)
	r.With(rateLimit.Login()).Post("/login",
		login.New(log, validate, authService),
	)
	r.Post("/upload",
		upload.New(log, cfg.UploadDir),
	)

	sendHandler := sendemails.New(log, validate, orchestrator)
	if cfg.HTTPServer.SendRequiresAuth {
		r.With(rateLimit.SendEmails(), authjwt.New(log, cfg.Tokens.Secret)).
			Post("/send-emails", sendHandler)
	} else {
		r.With(rateLimit.SendEmails()).Post("/send-emails", sendHandler)
	}

	r.Get("/test-email",
		testemail.New(log, dispatcher, cfg.Mail.TestRecipient),
	)

	return r
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
