// Package email wraps the outbound notification capability.
package email

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/willimpizza/backend/internal/upstream"
)

// Sender delivers a plain-text message. A non-2xx reply surfaces as
// *upstream.Error.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// MailgunClient sends mail through the Mailgun messages API.
type MailgunClient struct {
	apiKey  string
	domain  string
	baseURL string
	client  *http.Client
}

// NewMailgunClient builds a client for the given sending domain.
func NewMailgunClient(apiKey, domain string) *MailgunClient {
	return &MailgunClient{
		apiKey:  apiKey,
		domain:  domain,
		baseURL: "https://api.mailgun.net",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts a form-encoded message request.
func (c *MailgunClient) Send(ctx context.Context, to, subject, body string) error {
	form := url.Values{
		"from":    {fmt.Sprintf("Willim Pizza <postmaster@%s>", c.domain)},
		"to":      {to},
		"subject": {subject},
		"text":    {body},
	}

	endpoint := fmt.Sprintf("%s/v3/%s/messages", c.baseURL, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &upstream.Error{Status: resp.StatusCode}
	}
	return nil
}
