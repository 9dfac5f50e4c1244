package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rpupo63/portfolio-cms-backend/models"
	"github.com/rs/zerolog/log"
)

// Notification is one owner alert. Summary is the short form used for SMS.
type Notification struct {
	Subject string
	Text    string
	HTML    string
	Summary string
}

type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg Notification) error
}

// MultiNotifier delivers to every channel, continuing past failures.
type MultiNotifier struct {
	channels []Notifier
}

func NewMultiNotifier(channels ...Notifier) *MultiNotifier {
	return &MultiNotifier{channels: channels}
}

func (m *MultiNotifier) Name() string { return "multi" }

func (m *MultiNotifier) Channels() []string {
	names := make([]string, len(m.channels))
	for i, ch := range m.channels {
		names[i] = ch.Name()
	}
	return names
}

func (m *MultiNotifier) Notify(ctx context.Context, msg Notification) error {
	var errors []string
	var successes []string

	for _, ch := range m.channels {
		if err := ch.Notify(ctx, msg); err != nil {
			log.Error().Err(err).Str("channel", ch.Name()).Msg("Failed to send notification")
			errors = append(errors, fmt.Sprintf("%s: %v", ch.Name(), err))
			continue
		}
		successes = append(successes, ch.Name())
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Msg("Notification delivered")
	}
	if len(errors) > 0 {
		return fmt.Errorf("some channels failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

// NewNotifier builds the channels listed in NOTIFY_CHANNELS. An empty list yields a notifier
// that does nothing.
func NewNotifier(cfg config.AppConfig) (*MultiNotifier, error) {
	var channels []Notifier
	for _, name := range cfg.Notify.Channels {
		var (
			ch  Notifier
			err error
		)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "resend":
			ch, err = NewResendNotifier(cfg.Resend, cfg.Notify.EmailTo)
		case "smtp":
			ch, err = NewSMTPNotifier(cfg.SMTP, cfg.Notify.EmailTo)
		case "twilio", "sms":
			ch, err = NewTwilioNotifier(cfg.Twilio, cfg.Notify.SMSTo)
		case "":
			continue
		default:
			err = fmt.Errorf("unknown notification channel %q", name)
		}
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return NewMultiNotifier(channels...), nil
}

// ContactMessageNotification describes a new contact form submission.
func ContactMessageNotification(msg models.ContactMessage) Notification {
	subject := fmt.Sprintf("New contact message: %s", msg.Subject)
	text := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s\n", msg.Name, msg.Email, msg.Subject, msg.Message)

	var b strings.Builder
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s &lt;%s&gt;</p>", html.EscapeString(msg.Name), html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>", html.EscapeString(msg.Subject))
	fmt.Fprintf(&b, "<p>%s</p>", strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))

	return Notification{
		Subject: subject,
		Text:    text,
		HTML:    b.String(),
		Summary: fmt.Sprintf("New contact message from %s (%s): %s", msg.Name, msg.Email, msg.Subject),
	}
}
