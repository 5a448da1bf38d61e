package mapping

import (
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/SscSPs/donation_payment_app/internal/models"
)

// ToModelDonation converts a domain Donation to a model Donation
func ToModelDonation(d domain.Donation) models.Donation {
	return models.Donation{
		DonationID:           d.DonationID,
		DonationCode:         d.DonationCode,
		ProgramID:            d.ProgramID,
		Amount:               d.Amount,
		Status:               string(d.Status),
		PaymentSource:        string(d.PaymentSource),
		DonorName:            d.DonorName,
		DonorEmail:           d.DonorEmail,
		Message:              d.Message,
		ProofURL:             d.ProofURL,
		GatewayOrderID:       d.GatewayOrderID,
		GatewayTransactionID: d.GatewayTransactionID,
		SessionToken:         d.SessionToken,
		RedirectURL:          d.RedirectURL,
		RawGatewayPayload:    d.RawGatewayPayload,
		PaidAt:               d.PaidAt,
		ConfirmedBy:          d.ConfirmedBy,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDonation converts a model Donation to a domain Donation
func ToDomainDonation(m models.Donation) domain.Donation {
	return domain.Donation{
		DonationID:           m.DonationID,
		DonationCode:         m.DonationCode,
		ProgramID:            m.ProgramID,
		Amount:               m.Amount,
		Status:               domain.DonationStatus(m.Status),
		PaymentSource:        domain.PaymentSource(m.PaymentSource),
		DonorName:            m.DonorName,
		DonorEmail:           m.DonorEmail,
		Message:              m.Message,
		ProofURL:             m.ProofURL,
		GatewayOrderID:       m.GatewayOrderID,
		GatewayTransactionID: m.GatewayTransactionID,
		SessionToken:         m.SessionToken,
		RedirectURL:          m.RedirectURL,
		RawGatewayPayload:    m.RawGatewayPayload,
		PaidAt:               m.PaidAt,
		ConfirmedBy:          m.ConfirmedBy,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDonationSlice converts a slice of model Donations to a slice of domain Donations
func ToDomainDonationSlice(ms []models.Donation) []domain.Donation {
	ds := make([]domain.Donation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDonation(m)
	}
	return ds
}

// ToModelGatewayNotification converts a domain NotificationLog to its row shape
func ToModelGatewayNotification(d domain.NotificationLog) models.GatewayNotification {
	var target *string
	if d.TargetStatus != nil {
		s := string(*d.TargetStatus)
		target = &s
	}
	return models.GatewayNotification{
		NotificationID:    d.NotificationID,
		DonationID:        d.DonationID,
		GatewayOrderID:    d.GatewayOrderID,
		TransactionStatus: d.TransactionStatus,
		TargetStatus:      target,
		Outcome:           string(d.Outcome),
		Detail:            d.Detail,
		Payload:           d.Payload,
		ReceivedAt:        d.ReceivedAt,
	}
}
