// internal/adapters/mailgun/client.go
package mailgun

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
	"golang.org/x/time/rate"

	"estate_inquiry/internal/adapters/observability"
	"estate_inquiry/internal/domain"
)

const DefaultBaseURL = "https://api.mailgun.net"

// Client sends messages through the Mailgun v3 API. It does not retry.
type Client struct {
	mg *mg.MailgunImpl
	rl *rate.Limiter
}

// New does not check key or domain: a missing value surfaces as an error on Send.
func New(base, domain, key string, rps int) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if rps <= 0 {
		rps = 5
	}
	impl := mg.NewMailgun(domain, key)
	impl.SetAPIBase(strings.TrimRight(base, "/") + "/v3")
	impl.SetClient(&http.Client{Timeout: 20 * time.Second})
	return &Client{
		mg: impl,
		rl: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) Send(ctx context.Context, e domain.Email) (domain.Receipt, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return domain.Receipt{}, err
	}

	m := c.mg.NewMessage(e.From, e.Subject, e.Text, e.To)

	start := time.Now()
	msg, id, err := c.mg.Send(ctx, m)
	if err != nil {
		var ure *mg.UnexpectedResponseError
		if errors.As(err, &ure) {
			observability.ObserveExternal("mailgun", "messages", ure.Actual, time.Since(start))
			return domain.Receipt{}, fmt.Errorf("mailgun: %d: %s", ure.Actual, errorMessage(ure.Data))
		}
		observability.ObserveExternal("mailgun", "messages", 0, time.Since(start))
		if ctx.Err() != nil {
			return domain.Receipt{}, ctx.Err()
		}
		return domain.Receipt{}, fmt.Errorf("mailgun: %w", err)
	}
	observability.ObserveExternal("mailgun", "messages", http.StatusOK, time.Since(start))
	return domain.Receipt{ID: id, Message: msg}, nil
}

// errorMessage prefers Mailgun's JSON "message", else the trimmed raw body.
func errorMessage(b []byte) string {
	var r struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &r); err == nil && r.Message != "" {
		return r.Message
	}
	if s := strings.TrimSpace(string(b)); s != "" {
		return s
	}
	return "empty response"
}
