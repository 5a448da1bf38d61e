package services

import (
	"context"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/SscSPs/donation_payment_app/internal/dto"
)

// DonationReaderSvc defines read operations for donations
type DonationReaderSvc interface {
	GetDonationByCode(ctx context.Context, code string) (*domain.Donation, error)
	GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)
	ListDonations(ctx context.Context, req dto.ListDonationsParams) (*dto.ListDonationsResponse, error)
	AuditProgramLedger(ctx context.Context, programID string) (*domain.LedgerAudit, error)
}

// DonationWriterSvc defines donor intake and operator resolution
type DonationWriterSvc interface {
	// CreateDonation records a pending donation and, for gateway payments, opens a checkout session.
	CreateDonation(ctx context.Context, req dto.CreateDonationRequest) (*domain.Donation, error)

	// ConfirmDonation moves a pending donation to paid on behalf of an operator.
	ConfirmDonation(ctx context.Context, donationID, operatorID string) (*domain.Donation, error)

	// RejectDonation moves a pending donation to failed, or reverses a paid one.
	RejectDonation(ctx context.Context, donationID, operatorID string) (*domain.Donation, error)
}

// DonationSvcFacade combines all donation-related service interfaces
type DonationSvcFacade interface {
	DonationReaderSvc
	DonationWriterSvc
}

// ReconcilerSvc applies asynchronous gateway notifications.
type ReconcilerSvc interface {
	// Reconcile authenticates and applies a notification. Unmapped statuses and amount
	// mismatches are recorded and returned as apperrors.ErrUnmappedGatewayStatus and
	// apperrors.ErrAmountMismatch alongside a nil result; neither changes state.
	Reconcile(ctx context.Context, notification domain.GatewayNotification) (*domain.ReconcileResult, error)
}

// ExpirySweepSvc expires pending donations whose payment never arrived.
type ExpirySweepSvc interface {
	// ExpireStale moves pending donations older than the configured TTL to expired and
	// returns how many were expired.
	ExpireStale(ctx context.Context) (int, error)
}
