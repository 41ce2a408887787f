package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"erp-service/internal/config"
	"erp-service/internal/logger"
)

const defaultSendGridBaseURL = "https://api.sendgrid.com"

// SendGridNotifier delivers mail through the SendGrid v3 API.
type SendGridNotifier struct {
	apiKey    string
	baseURL   string
	fromEmail string
	fromName  string
	client    *http.Client
	log       *logger.Logger
}

// NewSendGrid builds a SendGrid-backed Notifier from the service config. When
// no API key is configured it returns a disabled notifier that only logs, so
// environments without mail credentials still run.
func NewSendGrid(cfg *config.Config, log *logger.Logger) Notifier {
	if strings.TrimSpace(cfg.SendGridAPIKey) == "" {
		log.Warn("sendgrid api key not configured, email notifications disabled")
		return &disabledNotifier{log: log}
	}
	baseURL := strings.TrimRight(cfg.SendGridBaseURL, "/")
	if baseURL == "" {
		baseURL = defaultSendGridBaseURL
	}
	return &SendGridNotifier{
		apiKey:    cfg.SendGridAPIKey,
		baseURL:   baseURL,
		fromEmail: cfg.SendGridFromEmail,
		fromName:  cfg.SendGridFromName,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log.With("component", "sendgrid"),
	}
}

type sendGridAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridPayload struct {
	Personalizations []struct {
		To []sendGridAddress `json:"to"`
	} `json:"personalizations"`
	From    sendGridAddress `json:"from"`
	Subject string          `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// Send posts a single mail/send request.
func (n *SendGridNotifier) Send(ctx context.Context, email Email) error {
	payload := sendGridPayload{
		From:    sendGridAddress{Email: n.fromEmail, Name: n.fromName},
		Subject: email.Subject,
	}
	payload.Personalizations = make([]struct {
		To []sendGridAddress `json:"to"`
	}, 1)
	payload.Personalizations[0].To = []sendGridAddress{{Email: email.To, Name: email.ToName}}
	payload.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/html", Value: email.HTMLBody}}

	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to encode sendgrid payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v3/mail/send", bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to build sendgrid request")
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "sendgrid request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("sendgrid returned %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}

type disabledNotifier struct {
	log *logger.Logger
}

func (n *disabledNotifier) Send(_ context.Context, email Email) error {
	n.log.Info("email notification skipped", "to", email.To, "subject", email.Subject)
	return nil
}
