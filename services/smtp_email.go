package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-cms-backend/config"
	"gopkg.in/gomail.v2"
)

type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier emails notifications through a plain SMTP relay.
type SMTPNotifier struct {
	from       string
	recipients []string
	dialer     mailDialer
}

func NewSMTPNotifier(cfg config.SMTPConfig, recipients []string) (*SMTPNotifier, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("SMTP_HOST and SMTP_FROM are required for the smtp channel")
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("NOTIFY_EMAIL_TO is required for the smtp channel")
	}
	return &SMTPNotifier{
		from:       cfg.From,
		recipients: recipients,
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}, nil
}

func (n *SMTPNotifier) Name() string { return "smtp" }

func (n *SMTPNotifier) Notify(ctx context.Context, msg Notification) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.recipients...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	// gomail has no context support; give up waiting once ctx is done.
	done := make(chan error, 1)
	go func() { done <- n.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
