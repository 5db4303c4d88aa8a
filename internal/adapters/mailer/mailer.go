// Package mailer selects the outbound email driver and provides the
// non-delivering drivers used in development and end-to-end environments.
package mailer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"estate_inquiry/internal/adapters/mailgun"
	"estate_inquiry/internal/domain"
)

const (
	DriverMailgun = "mailgun"
	DriverLog     = "log"
	DriverRedis   = "redis"
)

type Options struct {
	Driver     string
	Domain     string
	APIKey     string
	MailgunURL string
	RPS        int
}

// New builds the domain.Mailer for opts.Driver. rc is only used by the redis driver.
func New(opts Options, rc *redis.Client) (domain.Mailer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case "", DriverMailgun:
		return mailgun.New(opts.MailgunURL, opts.Domain, opts.APIKey, opts.RPS), nil
	case DriverLog:
		return NewLogSender(opts.Domain), nil
	case DriverRedis:
		if rc == nil {
			return nil, fmt.Errorf("mailer: redis driver needs a redis client")
		}
		return NewRedisSender(rc, opts.Domain), nil
	default:
		return nil, fmt.Errorf("mailer: unknown driver %q", opts.Driver)
	}
}

// syntheticID mimics the provider's "<id@domain>" message ids.
func syntheticID(domain string) string {
	if domain == "" {
		domain = "localhost"
	}
	return fmt.Sprintf("<%s@%s>", uuid.NewString(), domain)
}
