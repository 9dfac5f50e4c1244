package services

import (
	"context"
	"fmt"

	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const maxSMSLength = 320

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioNotifier texts the plain-text notification body to one number.
type TwilioNotifier struct {
	from string
	to   string
	api  messageCreator
}

func NewTwilioNotifier(cfg config.TwilioConfig, to string) (*TwilioNotifier, error) {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" {
		return nil, fmt.Errorf("TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN and TWILIO_FROM_NUMBER are required for the twilio channel")
	}
	if to == "" {
		return nil, fmt.Errorf("NOTIFY_SMS_TO is required for the twilio channel")
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioNotifier{from: cfg.FromNumber, to: to, api: client.Api}, nil
}

func (n *TwilioNotifier) Name() string { return "twilio" }

func (n *TwilioNotifier) Notify(ctx context.Context, msg Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body := msg.Subject
	if msg.Summary != "" {
		body = msg.Summary
	}
	if r := []rune(body); len(r) > maxSMSLength {
		body = string(r[:maxSMSLength-1]) + "…"
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(n.to)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	if resp != nil && resp.ErrorMessage != nil {
		return fmt.Errorf("twilio: %s", *resp.ErrorMessage)
	}
	return nil
}
