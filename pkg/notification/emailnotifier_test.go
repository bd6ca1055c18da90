package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmailNotifier(t *testing.T) {
	tests := []struct {
		name   string
		config SMTPConfig
	}{
		{
			name: "plaintext without auth",
			config: SMTPConfig{
				Host: "localhost",
				Port: 1025,
				From: "noreply@example.com",
			},
		},
		{
			name: "tls with auth",
			config: SMTPConfig{
				Host:     "smtp.example.com",
				Port:     587,
				TLS:      true,
				Username: "mailer",
				Password: "secret",
				From:     "noreply@example.com",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier, err := NewEmailNotifier(tt.config)
			require.NoError(t, err)
			require.NotNil(t, notifier.client)
			assert.Equal(t, tt.config, notifier.SMTPConfig)
		})
	}
}

func TestEmailNotifierRequiresRecipient(t *testing.T) {
	notifier, err := NewEmailNotifier(SMTPConfig{
		Host: "localhost",
		Port: 1025,
		From: "noreply@example.com",
	})
	require.NoError(t, err)

	err = notifier.Send(EmailVerifyNotice, NotificationData{}, NoticeTemplate{
		Subject: "Verify",
		Text:    "{{.Link}}",
	})
	assert.Error(t, err)
}
