// Command inmem runs the service against in-memory storage with notices
// logged instead of emailed. Useful for local development without
// Postgres or an SMTP server: the verification and reset links show up
// in the server log.
package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/noracamacho/verificationapp/pkg/config"
	"github.com/noracamacho/verificationapp/pkg/emailcode"
	"github.com/noracamacho/verificationapp/pkg/notification"
	"github.com/noracamacho/verificationapp/pkg/router"
	"github.com/noracamacho/verificationapp/pkg/tokengenerator"
	"github.com/noracamacho/verificationapp/pkg/user"
	"github.com/noracamacho/verificationapp/pkg/user/api"
)

// logNotifier writes each notice to the log instead of delivering it.
type logNotifier struct{}

func (logNotifier) Send(noticeType notification.NoticeType, data notification.NotificationData, _ notification.NoticeTemplate) error {
	slog.Info("Notice", "type", noticeType, "to", data.To, "link", data.Data["Link"])
	return nil
}

func main() {
	var cfg config.Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	notificationManager := notification.NewNotificationManager()
	notificationManager.RegisterNotifier(notification.EmailSystem, logNotifier{})
	for _, noticeType := range []notification.NoticeType{
		notification.EmailVerifyNotice,
		notification.PasswordResetNotice,
	} {
		template := notification.NoticeTemplate{
			Subject: string(noticeType),
			Text:    "{{.Link}}",
		}
		if err := notificationManager.RegisterNotification(noticeType, notification.EmailSystem, template); err != nil {
			slog.Error("Failed to register notice", "type", noticeType, "error", err)
			os.Exit(1)
		}
	}

	codeService := emailcode.NewService(emailcode.NewInMemoryRepository(), notificationManager)
	tokenService := tokengenerator.NewJwtService(cfg.Jwt.Secret,
		tokengenerator.WithIssuer(cfg.Jwt.Issuer),
	)
	userService := user.NewUserService(user.NewInMemoryRepository(), codeService, tokenService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	router.SetupRoutes(r, router.Config{
		UserHandle: api.NewHandle(userService),
		Auth:       tokenService.Auth(),
	})

	slog.Info("Starting server with in-memory storage", "addr", cfg.App.Addr())
	if err := http.ListenAndServe(cfg.App.Addr(), r); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
