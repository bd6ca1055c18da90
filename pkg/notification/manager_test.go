package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNotification(t *testing.T) {
	nm := NewNotificationManager()

	tests := []struct {
		name        string
		notifType   NoticeType
		system      NotificationSystem
		template    NoticeTemplate
		shouldError bool
	}{
		{
			name:      "valid registration with html body",
			notifType: EmailVerifyNotice,
			system:    EmailSystem,
			template:  NoticeTemplate{Subject: "Verify", Html: "<p>{{.Link}}</p>"},
		},
		{
			name:      "valid registration with text body",
			notifType: PasswordResetNotice,
			system:    EmailSystem,
			template:  NoticeTemplate{Subject: "Reset", Text: "{{.Link}}"},
		},
		{
			name:        "empty notification type",
			notifType:   "",
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Verify", Html: "<p>hi</p>"},
			shouldError: true,
		},
		{
			name:        "empty system",
			notifType:   EmailVerifyNotice,
			system:      "",
			template:    NoticeTemplate{Subject: "Verify", Html: "<p>hi</p>"},
			shouldError: true,
		},
		{
			name:        "template without body",
			notifType:   EmailVerifyNotice,
			system:      EmailSystem,
			template:    NoticeTemplate{Subject: "Verify"},
			shouldError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := nm.RegisterNotification(tt.notifType, tt.system, tt.template)
			if tt.shouldError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSendRoutesToRegisteredNotifier(t *testing.T) {
	nm := NewNotificationManager()
	mock := &MockNotifier{}
	nm.RegisterNotifier(EmailSystem, mock)

	err := nm.RegisterNotification(EmailVerifyNotice, EmailSystem, NoticeTemplate{
		Subject: "Verify your email",
		Html:    "<a href=\"{{.Link}}\">verify</a>",
	})
	require.NoError(t, err)

	err = nm.Send(EmailVerifyNotice, NotificationData{
		To:   "user@example.com",
		Data: map[string]string{"Link": "http://localhost:3000/verify_email/abc"},
	})
	require.NoError(t, err)

	sent, ok := mock.Last()
	require.True(t, ok)
	assert.Equal(t, EmailVerifyNotice, sent.Type)
	assert.Equal(t, "user@example.com", sent.Notification.To)
	assert.Equal(t, "Verify your email", sent.Template.Subject)
}

func TestSendUnknownTypeFails(t *testing.T) {
	nm := NewNotificationManager()
	nm.RegisterNotifier(EmailSystem, &MockNotifier{})

	err := nm.Send(PasswordResetNotice, NotificationData{To: "user@example.com"})
	assert.Error(t, err)
}

func TestSendWithoutNotifierFails(t *testing.T) {
	nm := NewNotificationManager()
	err := nm.RegisterNotification(EmailVerifyNotice, EmailSystem, NoticeTemplate{
		Subject: "Verify your email",
		Html:    "<p>hi</p>",
	})
	require.NoError(t, err)

	err = nm.Send(EmailVerifyNotice, NotificationData{To: "user@example.com"})
	assert.Error(t, err)
}
