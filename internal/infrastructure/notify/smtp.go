package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/edis-imaging/client-portal/internal/core/ports"
)

// SMTPNotifier delivers notifications over SMTP using go-mail.
type SMTPNotifier struct {
	client *mail.Client
	from   string
}

// NewSMTPNotifier builds the SMTP transport. Credentials are optional for
// local relays.
func NewSMTPNotifier(host string, port int, username, password, from string) (*SMTPNotifier, error) {
	opts := []mail.Option{mail.WithPort(port)}
	if username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(username),
			mail.WithPassword(password),
		)
	}

	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &SMTPNotifier{client: client, from: from}, nil
}

// Send delivers one rendered notification.
func (n *SMTPNotifier) Send(ctx context.Context, msg ports.Notification) error {
	m := mail.NewMsg()
	if err := m.From(n.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)

	if err := n.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send %s to %s: %w", msg.Kind, msg.To, err)
	}
	return nil
}
