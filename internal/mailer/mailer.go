package mailer

import (
	"context"
	"fmt"
	"net/mail"

	"meetapp.app/api/core/config"
)

// Message is a rendered email ready for delivery.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers rendered messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Address formats a display name and address as an RFC 5322 mailbox.
func Address(name, email string) string {
	return (&mail.Address{Name: name, Address: email}).String()
}

// New returns the sender selected by cfg.Driver.
func New(ctx context.Context, cfg config.MailConfig) (Sender, error) {
	switch cfg.Driver {
	case config.MailDriverSES:
		return NewSES(ctx, cfg)
	case config.MailDriverLog:
		return NewLogSender(nil), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
