package notice

import (
	"embed"
	"log/slog"

	"github.com/noracamacho/verificationapp/pkg/notification"
)

//go:embed templates/*
var templateFiles embed.FS

func loadTemplate(filename string) string {
	content, err := templateFiles.ReadFile(filename)
	if err != nil {
		slog.Error("Error reading template file!", "err", err, "filename", filename)
		return ""
	}
	return string(content)
}

// NewNotificationManager creates a notification manager with the email
// notifier and the account notice templates registered.
func NewNotificationManager(smtpConfig notification.SMTPConfig) (*notification.NotificationManager, error) {
	notificationManager := notification.NewNotificationManager()

	emailNotifier, err := notification.NewEmailNotifier(smtpConfig)
	if err != nil {
		return nil, err
	}

	notificationManager.RegisterNotifier(notification.EmailSystem, emailNotifier)

	err = notificationManager.RegisterNotification(notification.EmailVerifyNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Verificate email for user app",
		Html:    loadTemplate("templates/email/email_verification.html"),
	})
	if err != nil {
		slog.Error("failed to register email verification notification", "error", err)
		return nil, err
	}

	err = notificationManager.RegisterNotification(notification.PasswordResetNotice, notification.EmailSystem, notification.NoticeTemplate{
		Subject: "Password recovery for user app",
		Html:    loadTemplate("templates/email/password_reset.html"),
	})
	if err != nil {
		slog.Error("failed to register password reset notification", "error", err)
		return nil, err
	}

	return notificationManager, nil
}
