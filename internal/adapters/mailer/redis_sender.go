package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"estate_inquiry/internal/domain"
)

const redisMailTTL = 15 * time.Minute

// RedisSender stores messages in Redis so end-to-end suites can read them back.
type RedisSender struct {
	client *redis.Client
	domain string
}

func NewRedisSender(c *redis.Client, domain string) *RedisSender {
	return &RedisSender{client: c, domain: domain}
}

type storedEmail struct {
	domain.Email
	ID     string `json:"id"`
	SentAt string `json:"sent_at"`
}

// MailKey is where a message to addr with receipt id is stored.
func MailKey(to, id string) string { return fmt.Sprintf("mail:%s:%s", to, id) }

func (s *RedisSender) Send(ctx context.Context, e domain.Email) (domain.Receipt, error) {
	id := syntheticID(s.domain)
	b, err := json.Marshal(storedEmail{Email: e, ID: id, SentAt: time.Now().UTC().Format(time.RFC3339Nano)})
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("marshal email: %w", err)
	}
	key := MailKey(e.To, id)
	if err := s.client.Set(ctx, key, b, redisMailTTL).Err(); err != nil {
		return domain.Receipt{}, fmt.Errorf("store email in redis key %q: %w", key, err)
	}
	return domain.Receipt{ID: id, Message: "Stored."}, nil
}
