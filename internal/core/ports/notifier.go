package ports

import "context"

// Notification kinds, used for logging and metrics labels.
const (
	NotificationWelcome  = "client_welcome"
	NotificationOperator = "operator_alert"
)

// Notification is a rendered message ready for transport.
type Notification struct {
	Kind     string
	To       string
	Subject  string
	HTMLBody string
}

// Notifier is the outbound message transport (SMTP in production).
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}

// NotificationDispatcher accepts notifications for asynchronous, best-effort
// delivery. Enqueue never blocks the caller's request cycle.
type NotificationDispatcher interface {
	Enqueue(n Notification)
}
