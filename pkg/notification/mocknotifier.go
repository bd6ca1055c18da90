package notification

// MockNotifier records notifications instead of delivering them. Used in tests.
type MockNotifier struct {
	SentNotifications []SentNotification
}

type SentNotification struct {
	Type         NoticeType
	Notification NotificationData
	Template     NoticeTemplate
}

func (m *MockNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	m.SentNotifications = append(m.SentNotifications, SentNotification{
		Type:         noticeType,
		Notification: notification,
		Template:     template,
	})
	return nil
}

// Last returns the most recently recorded notification.
func (m *MockNotifier) Last() (SentNotification, bool) {
	if len(m.SentNotifications) == 0 {
		return SentNotification{}, false
	}
	return m.SentNotifications[len(m.SentNotifications)-1], true
}
