package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"estate_inquiry/internal/adapters/observability"
	"estate_inquiry/internal/domain"
)

const defaultSenderName = "Contact Immo"

// MailSettings is the sender identity used for agent notifications.
type MailSettings struct {
	Domain     string
	SenderName string
}

type InquiryService struct {
	repo   domain.ResidenceRepository
	mailer domain.Mailer
	mail   MailSettings
}

func NewInquiryService(r domain.ResidenceRepository, m domain.Mailer, s MailSettings) *InquiryService {
	if s.SenderName == "" {
		s.SenderName = defaultSenderName
	}
	return &InquiryService{repo: r, mailer: m, mail: s}
}

// Handle notifies the agent of in.ResidenceID about the inquiry and returns the
// provider's receipt. Lookup failures are reported before any email is attempted.
func (s *InquiryService) Handle(ctx context.Context, in domain.Inquiry) (domain.Receipt, error) {
	// 1) Residence + agent. Both must exist.
	res, err := s.repo.FindResidenceWithAgent(ctx, in.ResidenceID)
	if err != nil {
		observability.ObserveInquiry("lookup_error")
		return domain.Receipt{}, fmt.Errorf("find residence %d: %w", in.ResidenceID, err)
	}
	if res == nil {
		observability.ObserveInquiry("not_found")
		return domain.Receipt{}, &domain.NotFoundError{Resource: "residence", ID: in.ResidenceID}
	}
	if res.Agent == nil {
		observability.ObserveInquiry("not_found")
		return domain.Receipt{}, &domain.NotFoundError{Resource: "agent", ID: res.ID}
	}

	// 2) One send, no retry.
	msg := composeEmail(s.mail, in, *res)
	receipt, err := s.mailer.Send(ctx, msg)
	if err != nil {
		observability.ObserveInquiry("delivery_error")
		log.Warn().Err(err).Int64("residence", res.ID).Msg("inquiry delivery failed")
		return domain.Receipt{}, &domain.DeliveryError{Err: err}
	}

	observability.ObserveInquiry("sent")
	log.Info().
		Int64("residence", res.ID).
		Int64("agent", res.Agent.ID).
		Str("receipt", receipt.ID).
		Msg("inquiry sent")
	return receipt, nil
}
