package notification

// NotificationSystem represents a delivery channel (e.g. email).
type NotificationSystem string

// NoticeType represents a kind of notice (e.g. "email_verification").
type NoticeType string

const (
	EmailSystem NotificationSystem = "email"

	EmailVerifyNotice   NoticeType = "email_verification"
	PasswordResetNotice NoticeType = "password_reset"
)

// NoticeTemplate holds the subject and body templates for a notice.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

// NotificationData carries the recipient and the template data for one send.
type NotificationData struct {
	To   string
	Data map[string]string
}

// Notifier delivers a rendered notice through one system.
type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
