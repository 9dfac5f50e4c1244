package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-cms-backend/config"
	"github.com/rs/zerolog/log"
)

const resendBaseURL = "https://api.resend.com"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// ResendNotifier emails notifications through the Resend API.
type ResendNotifier struct {
	apiKey     string
	from       string
	recipients []string
	baseURL    string
	client     *http.Client
}

func NewResendNotifier(cfg config.ResendConfig, recipients []string) (*ResendNotifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY is required for the resend channel")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("RESEND_FROM_EMAIL is required for the resend channel")
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("NOTIFY_EMAIL_TO is required for the resend channel")
	}
	return &ResendNotifier{
		apiKey:     cfg.APIKey,
		from:       cfg.FromEmail,
		recipients: recipients,
		baseURL:    resendBaseURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (n *ResendNotifier) Name() string { return "resend" }

func (n *ResendNotifier) Notify(ctx context.Context, msg Notification) error {
	return n.SendEmail(ctx, msg.Subject, msg.HTML, msg.Text, n.recipients)
}

// SendEmail sends one email to recipients. html is preferred by clients that render it.
func (n *ResendNotifier) SendEmail(ctx context.Context, subject, html, text string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	payload := ResendEmailRequest{
		From:    n.from,
		To:      recipients,
		Subject: subject,
		Html:    html,
		Text:    text,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimSuffix(n.baseURL, "/")+"/emails", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message)
		}
		return fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}

	return nil
}
