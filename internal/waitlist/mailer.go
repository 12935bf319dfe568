package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Mailer delivers an email and returns the provider's message id.
type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}

// ResendMailer sends email through the Resend HTTP API.
type ResendMailer struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewResendMailer creates a mailer for the given API endpoint and key.
func NewResendMailer(endpoint, apiKey string, timeout time.Duration) *ResendMailer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ResendMailer{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Send posts the email to the provider. Any non-2xx status is an error.
func (m *ResendMailer) Send(ctx context.Context, email Email) (string, error) {
	if m.apiKey == "" {
		return "", errors.New("resend api key is not configured")
	}

	payload, err := json.Marshal(resendRequest{
		From:    email.From,
		To:      []string{email.To},
		ReplyTo: email.ReplyTo,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var decoded resendResponse
	_ = json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(decoded.Message)
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		return "", fmt.Errorf("resend returned %d: %s", resp.StatusCode, msg)
	}

	return decoded.ID, nil
}

// LogMailer writes emails to the log instead of sending them.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer creates a development mailer.
func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the email and returns a generated message id.
func (m *LogMailer) Send(ctx context.Context, email Email) (string, error) {
	id := uuid.NewString()
	m.logger.Info().
		Str("message_id", id).
		Str("from", email.From).
		Str("to", email.To).
		Str("reply_to", email.ReplyTo).
		Str("subject", email.Subject).
		Str("html", email.HTML).
		Msg("email not sent (log mailer)")
	return id, nil
}
