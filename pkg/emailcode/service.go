package emailcode

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/noracamacho/verificationapp/pkg/notification"
)

// Kind selects which email a code is delivered with and which link the
// recipient follows.
type Kind string

const (
	KindVerification Kind = "verification"
	KindReset        Kind = "reset"
)

// Recipient identifies the user a code is issued for.
type Recipient struct {
	UserID    uuid.UUID
	Email     string
	FirstName string
	LastName  string
}

// Service manages the one-time code lifecycle: issue, email, redeem.
type Service struct {
	repo                Repository
	notificationManager *notification.NotificationManager
}

// NewService creates a new email code service.
func NewService(repo Repository, notificationManager *notification.NotificationManager) *Service {
	return &Service{
		repo:                repo,
		notificationManager: notificationManager,
	}
}

// generateCode generates a cryptographically secure random code.
func generateCode() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// Issue generates a code for the recipient, emails the matching link and
// persists the code. The email is sent before the code is stored, so a
// delivery failure never leaves behind a code the user cannot redeem.
// Issuing a new code replaces any outstanding one for the same user.
func (s *Service) Issue(ctx context.Context, recipient Recipient, kind Kind, baseURL string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	var link string
	var noticeType notification.NoticeType
	switch kind {
	case KindReset:
		link = fmt.Sprintf("%s/reset_password/%s", baseURL, code)
		noticeType = notification.PasswordResetNotice
	default:
		link = fmt.Sprintf("%s/verify_email/%s", baseURL, code)
		noticeType = notification.EmailVerifyNotice
	}

	err = s.notificationManager.Send(noticeType, notification.NotificationData{
		To: recipient.Email,
		Data: map[string]string{
			"FirstName": recipient.FirstName,
			"LastName":  recipient.LastName,
			"Link":      link,
		},
	})
	if err != nil {
		slog.Error("Failed to send code email", "user_id", recipient.UserID, "kind", kind, "error", err)
		return "", fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	if _, err := s.repo.Upsert(ctx, recipient.UserID, code); err != nil {
		slog.Error("Failed to store code", "user_id", recipient.UserID, "error", err)
		return "", fmt.Errorf("failed to store code: %w", err)
	}

	slog.Info("Code issued", "user_id", recipient.UserID, "kind", kind)
	return code, nil
}

// Redeem consumes a code and returns the owning user id. The code is deleted
// atomically with the lookup, so it can never be redeemed twice; the caller
// applies the state change the code authorizes.
func (s *Service) Redeem(ctx context.Context, code string) (uuid.UUID, error) {
	if code == "" {
		return uuid.Nil, ErrCodeInvalid
	}

	userID, err := s.repo.Redeem(ctx, code)
	if err != nil {
		return uuid.Nil, err
	}

	slog.Info("Code redeemed", "user_id", userID)
	return userID, nil
}
