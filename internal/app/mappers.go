package app

import (
	"fmt"
	"strings"

	"estate_inquiry/internal/domain"
)

func senderAddress(s MailSettings) string {
	return fmt.Sprintf("%s <noreply@%s>", s.SenderName, s.Domain)
}

func inquirySubject(residenceID int64) string {
	return fmt.Sprintf("New inquiry for residence #%d", residenceID)
}

// inquiryText is the fixed plain-text template agents receive.
func inquiryText(in domain.Inquiry, title string) string {
	var b strings.Builder
	b.WriteString("Name: " + in.Name + "\n")
	b.WriteString("Email: " + in.Email + "\n")
	b.WriteString("Message: " + in.Message + "\n")
	b.WriteString("Residence: " + title)
	return b.String()
}

func composeEmail(s MailSettings, in domain.Inquiry, r domain.Residence) domain.Email {
	return domain.Email{
		From:    senderAddress(s),
		To:      r.Agent.Email,
		Subject: inquirySubject(r.ID),
		Text:    inquiryText(in, r.Title),
	}
}

/********** catalog filters **********/

func normalizeFilter(f domain.ResidenceFilter) domain.ResidenceFilter {
	f.City = strings.TrimSpace(f.City)
	f.Type = strings.TrimSpace(f.Type)
	return f
}

// filterKey is a stable cache key for a normalized filter.
func filterKey(f domain.ResidenceFilter) string {
	return fmt.Sprintf("residences:list:city=%s:type=%s:min=%s:max=%s:beds=%s",
		strings.ToLower(f.City), strings.ToLower(f.Type),
		fmtFloat(f.MinPrice), fmtFloat(f.MaxPrice), fmtInt(f.MinBedrooms))
}

func fmtFloat(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *p)
}

func fmtInt(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *p)
}
