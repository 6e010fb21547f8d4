package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/minhph/orderflow/internal/core/domain"
)

// Config holds webhook alerting configuration.
type Config struct {
	URL     string
	Timeout time.Duration
}

// WebhookAlerter posts missing-product alerts to a monitoring webhook
// as a JSON array.
type WebhookAlerter struct {
	url    string
	client *http.Client
}

// NewWebhookAlerter creates an alerter from config.
func NewWebhookAlerter(cfg Config) *WebhookAlerter {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &WebhookAlerter{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}
}

// SendAlerts delivers a batch of alerts in one request.
func (a *WebhookAlerter) SendAlerts(ctx context.Context, alerts []domain.MissingProductAlert) error {
	if len(alerts) == 0 {
		return nil
	}

	payload, err := json.Marshal(alerts)
	if err != nil {
		return fmt.Errorf("failed to marshal alerts: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post alerts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode)
	}
	return nil
}
