package operations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/mmo-observer/mmo_uploader/models"
)

// StatusError is returned when the webhook answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %s", e.Status)
}

// WebhookLogger appends one row per upload to the sheet behind the webhook.
// It never retries and never follows redirects; a 3xx counts as a failure.
type WebhookLogger struct {
	url    string
	client *http.Client
}

func NewWebhookLogger(url string, timeout time.Duration) *WebhookLogger {
	return &WebhookLogger{
		url: url,
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (l *WebhookLogger) Log(ctx context.Context, payload models.LogPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	log.Printf("[webhook] logged row: image=%s project=%q", payload.ImageName, payload.Project)
	return nil
}
