package mailer

import (
	"context"

	"github.com/rs/zerolog/log"

	"estate_inquiry/internal/domain"
)

// LogSender writes the message to the global logger instead of sending it.
type LogSender struct {
	domain string
}

func NewLogSender(domain string) *LogSender { return &LogSender{domain: domain} }

func (s *LogSender) Send(ctx context.Context, e domain.Email) (domain.Receipt, error) {
	id := syntheticID(s.domain)
	log.Info().
		Str("id", id).
		Str("from", e.From).
		Str("to", e.To).
		Str("subject", e.Subject).
		Str("text", e.Text).
		Msg("email logged, not sent")
	return domain.Receipt{ID: id, Message: "Logged."}, nil
}
