package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estate_inquiry/internal/app"
	"estate_inquiry/internal/domain"
)

type fakeMailer struct {
	sent    []domain.Email
	receipt domain.Receipt
	err     error
}

func (m *fakeMailer) Send(_ context.Context, e domain.Email) (domain.Receipt, error) {
	m.sent = append(m.sent, e)
	if m.err != nil {
		return domain.Receipt{}, m.err
	}
	return m.receipt, nil
}

func newRepo() *fakeRepo {
	return &fakeRepo{
		byID: map[int64]domain.Residence{
			3: {ID: 3, Title: "Luxury Penthouse Suite", AgentID: ptr(int64(1))},
			8: {ID: 8, Title: "Mountain View Retreat"},
		},
		agents: map[int64]domain.Agent{1: {ID: 1, Name: "Agent", Email: "agent@firm.com"}},
	}
}

var settings = app.MailSettings{Domain: "mg.example.com"}

func TestHandle_UnknownResidence(t *testing.T) {
	for _, id := range []int64{0, 2, 99, -1} {
		m := &fakeMailer{}
		svc := app.NewInquiryService(newRepo(), m, settings)

		_, err := svc.Handle(context.Background(), domain.Inquiry{Name: "Jane", ResidenceID: id})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrNotFound), "id %d", id)
		var nf *domain.NotFoundError
		require.True(t, errors.As(err, &nf))
		assert.Equal(t, "residence", nf.Resource)
		assert.Empty(t, m.sent, "no email for id %d", id)
	}
}

func TestHandle_ResidenceWithoutAgent(t *testing.T) {
	m := &fakeMailer{}
	svc := app.NewInquiryService(newRepo(), m, settings)

	_, err := svc.Handle(context.Background(), domain.Inquiry{ResidenceID: 8})

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "agent", nf.Resource)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, m.sent)
}

func TestHandle_LookupErrorIsNotNotFound(t *testing.T) {
	repo := newRepo()
	repo.findErr = errors.New("connection refused")
	m := &fakeMailer{}
	svc := app.NewInquiryService(repo, m, settings)

	_, err := svc.Handle(context.Background(), domain.Inquiry{ResidenceID: 3})

	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Empty(t, m.sent)
}

func TestHandle_SendsOneEmailToAgent(t *testing.T) {
	m := &fakeMailer{receipt: domain.Receipt{ID: "<20261018.1@mg.example.com>", Message: "Queued. Thank you."}}
	svc := app.NewInquiryService(newRepo(), m, settings)

	in := domain.Inquiry{Name: "Jane", Email: "jane@x.com", Message: "Interested", ResidenceID: 3}
	receipt, err := svc.Handle(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, m.receipt, receipt)
	require.Len(t, m.sent, 1)

	e := m.sent[0]
	assert.Equal(t, "agent@firm.com", e.To)
	assert.Equal(t, "Contact Immo <noreply@mg.example.com>", e.From)
	assert.Contains(t, e.Subject, "#3")
	for _, want := range []string{"Jane", "jane@x.com", "Interested", "Luxury Penthouse Suite"} {
		assert.Contains(t, e.Text, want)
	}
	assert.Equal(t, "Name: Jane\nEmail: jane@x.com\nMessage: Interested\nResidence: Luxury Penthouse Suite", e.Text)

	// input is left untouched
	assert.Equal(t, domain.Inquiry{Name: "Jane", Email: "jane@x.com", Message: "Interested", ResidenceID: 3}, in)
}

func TestHandle_CustomSenderName(t *testing.T) {
	m := &fakeMailer{}
	svc := app.NewInquiryService(newRepo(), m, app.MailSettings{Domain: "d.io", SenderName: "Listings"})

	_, err := svc.Handle(context.Background(), domain.Inquiry{ResidenceID: 3})

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, "Listings <noreply@d.io>", m.sent[0].From)
}

func TestHandle_DeliveryFailure(t *testing.T) {
	providerErr := errors.New("mailgun: 401: Forbidden")
	m := &fakeMailer{err: providerErr, receipt: domain.Receipt{ID: "never"}}
	svc := app.NewInquiryService(newRepo(), m, settings)

	receipt, err := svc.Handle(context.Background(), domain.Inquiry{Name: "Jane", ResidenceID: 3})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDelivery))
	assert.True(t, errors.Is(err, providerErr))
	assert.Contains(t, err.Error(), "mailgun: 401: Forbidden")
	assert.Equal(t, domain.Receipt{}, receipt)
	assert.Len(t, m.sent, 1, "no retry")
}
