package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// MailClient talks to the internal mailer sidecar, which owns template
// rendering and SMTP delivery.
type MailClient struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	log        *zap.Logger
}

func NewMailClient(baseURL string, timeout time.Duration, maxRetries int, log *zap.Logger) *MailClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MailClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries: maxRetries,
		log:        log,
	}
}

type sendMailRequest struct {
	To            string            `json:"to"`
	RecipientName string            `json:"recipient_name"`
	Template      string            `json:"template"`
	Params        map[string]string `json:"params,omitempty"`
}

func (c *MailClient) SendDecisionMail(ctx context.Context, to, recipientName, template string, params map[string]string) error {
	body, err := json.Marshal(sendMailRequest{
		To:            to,
		RecipientName: recipientName,
		Template:      template,
		Params:        params,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/internal/mail/send", c.baseURL)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("mailer unavailable: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			b, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("mailer returned %d: %s", resp.StatusCode, string(b))
			continue
		}
		resp.Body.Close()
		return nil
	}

	return lastErr
}
