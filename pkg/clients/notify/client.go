// Package notify delivers short operational messages to a configured
// webhook, used for the close-of-day report.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/foodrepublic/pos-backend/internal/config"
)

// Notifier sends a titled message to an external channel.
type Notifier interface {
	Send(ctx context.Context, title, message string) error
}

// WebhookClient is a resty-backed Notifier posting JSON payloads.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a webhook notifier from configuration.
func NewWebhookClient(cfg config.NotifyConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", "Bearer "+cfg.AuthToken)
	}

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

type webhookPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Send posts the message to the configured webhook.
func (c *WebhookClient) Send(ctx context.Context, title, message string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(webhookPayload{Title: title, Message: message}).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode())
	}
	return nil
}
