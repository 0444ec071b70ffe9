// Package payments wraps the outbound card-charging capability.
package payments

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/willimpizza/backend/internal/upstream"
)

// Charger charges a payment source. Amounts are in minor units of the given
// currency. A non-2xx reply surfaces as *upstream.Error.
type Charger interface {
	Charge(ctx context.Context, amountMinorUnits int, currency, source, description string) error
}

// StripeClient charges cards through the Stripe charges API.
type StripeClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewStripeClient builds a client authenticating with apiKey. Outbound calls
// carry a bounded timeout; the original had none.
func NewStripeClient(apiKey string) *StripeClient {
	return &StripeClient{
		apiKey:  apiKey,
		baseURL: "https://api.stripe.com",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Charge posts a form-encoded charge request.
func (c *StripeClient) Charge(ctx context.Context, amountMinorUnits int, currency, source, description string) error {
	form := url.Values{
		"amount":      {strconv.Itoa(amountMinorUnits)},
		"currency":    {currency},
		"source":      {source},
		"description": {description},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/charges", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build charge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.apiKey, "")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("charge request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return &upstream.Error{Status: resp.StatusCode}
	}
	return nil
}
