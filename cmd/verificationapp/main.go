package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/noracamacho/verificationapp/pkg/config"
	"github.com/noracamacho/verificationapp/pkg/emailcode"
	"github.com/noracamacho/verificationapp/pkg/notice"
	"github.com/noracamacho/verificationapp/pkg/notification"
	"github.com/noracamacho/verificationapp/pkg/router"
	"github.com/noracamacho/verificationapp/pkg/tokengenerator"
	"github.com/noracamacho/verificationapp/pkg/user"
	"github.com/noracamacho/verificationapp/pkg/user/api"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("Failed to load .env file", "error", err)
	}

	var cfg config.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := pgxpool.New(context.Background(), cfg.Db.ToDatabaseURL())
	if err != nil {
		slog.Error("Failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	notificationManager, err := notice.NewNotificationManager(notification.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     int(cfg.Email.Port),
		TLS:      cfg.Email.TLS,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	if err != nil {
		slog.Error("Failed to set up notifications", "error", err)
		os.Exit(1)
	}

	codeService := emailcode.NewService(emailcode.NewPostgresRepository(pool), notificationManager)
	tokenService := tokengenerator.NewJwtService(cfg.Jwt.Secret,
		tokengenerator.WithIssuer(cfg.Jwt.Issuer),
	)
	userService := user.NewUserService(user.NewPostgresRepository(pool), codeService, tokenService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	router.SetupRoutes(r, router.Config{
		UserHandle: api.NewHandle(userService),
		Auth:       tokenService.Auth(),
	})

	slog.Info("Starting server", "addr", cfg.App.Addr())
	if err := http.ListenAndServe(cfg.App.Addr(), r); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
