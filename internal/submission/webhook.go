package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nurpe/quotation-service/internal/model"
)

const DefaultSecretHeader = "x-flow-secret"

var ErrTransport = errors.New("webhook request failed")

// RejectedError is a non-2xx answer from the workflow endpoint. Body is the
// raw response text.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("webhook rejected submission with status %d: %s", e.StatusCode, e.Body)
}

type WebhookConfig struct {
	URL          string
	Secret       string
	SecretHeader string
	Timeout      time.Duration
}

// WebhookClient posts payloads to the workflow automation trigger. It never
// retries.
type WebhookClient struct {
	url          string
	secret       string
	secretHeader string
	httpClient   *http.Client
}

func NewWebhookClient(cfg WebhookConfig) *WebhookClient {
	header := cfg.SecretHeader
	if header == "" {
		header = DefaultSecretHeader
	}
	return &WebhookClient{
		url:          cfg.URL,
		secret:       cfg.Secret,
		secretHeader: header,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *WebhookClient) Send(ctx context.Context, payload model.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.secretHeader, c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading error body: %v", ErrTransport, err)
	}
	return &RejectedError{StatusCode: resp.StatusCode, Body: string(text)}
}
