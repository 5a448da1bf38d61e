package repositories

import (
	"context"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
)

// TransitionStore is the view of storage available inside a single atomic unit.
// Every method runs in the same database transaction.
type TransitionStore interface {
	// LockDonationByOrderID loads and row-locks a donation by gateway order id.
	LockDonationByOrderID(ctx context.Context, orderID string) (*domain.Donation, error)

	// LockDonationByID loads and row-locks a donation by id.
	LockDonationByID(ctx context.Context, donationID string) (*domain.Donation, error)

	// UpdateDonationState writes status, paid_at, gateway fields and audit fields.
	UpdateDonationState(ctx context.Context, donation domain.Donation) error

	// ProgramLedger applies deltas to programs in the same transaction.
	ProgramLedger

	// SaveNotificationLog records a processed gateway notification.
	SaveNotificationLog(ctx context.Context, entry domain.NotificationLog) error
}

// UnitOfWork runs fn inside one database transaction. The transaction commits when fn
// returns nil and rolls back otherwise. Serialization failures surface as
// apperrors.ErrLedgerWriteConflict.
type UnitOfWork interface {
	WithinTransition(ctx context.Context, fn func(ctx context.Context, store TransitionStore) error) error
}
