package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
)

// DonationReader defines read operations for donation data
type DonationReader interface {
	// FindDonationByID retrieves a donation by its unique identifier.
	FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)

	// FindDonationByCode retrieves a donation by its human-readable code.
	FindDonationByCode(ctx context.Context, code string) (*domain.Donation, error)

	// ListDonations retrieves a page of donations, newest first, optionally filtered by status.
	ListDonations(ctx context.Context, status *domain.DonationStatus, limit int, nextToken *string) ([]domain.Donation, *string, error)

	// ListStalePendingDonationIDs returns ids of pending donations created before cutoff.
	ListStalePendingDonationIDs(ctx context.Context, cutoff time.Time, limit int) ([]string, error)
}

// DonationWriter defines write operations for donation data
type DonationWriter interface {
	// SaveDonation persists a new donation. Unique violations return apperrors.ErrDuplicate.
	SaveDonation(ctx context.Context, donation domain.Donation) error

	// UpdateCheckoutSession stores the gateway session details after a checkout was opened.
	UpdateCheckoutSession(ctx context.Context, donationID string, sessionToken, redirectURL, gatewayTransactionID *string, now time.Time) error

	// DeleteDonation removes a pending donation whose checkout could not be opened.
	DeleteDonation(ctx context.Context, donationID string) error
}

// DonationRepositoryFacade combines all donation-related repository interfaces
type DonationRepositoryFacade interface {
	DonationReader
	DonationWriter
}
