package repositories

import (
	"context"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProgramReader defines read operations for program data
type ProgramReader interface {
	// FindProgramByID retrieves a program by its ID.
	FindProgramByID(ctx context.Context, programID string) (*domain.Program, error)

	// AuditProgramLedger compares collected_amount with the sum of paid donations.
	AuditProgramLedger(ctx context.Context, programID string) (*domain.LedgerAudit, error)
}

// ProgramLedger adjusts a program's collected amount. It is only reachable through a
// TransitionStore, so every delta commits together with the donation transition.
// Implementations must apply the delta as a single atomic read-modify-write.
type ProgramLedger interface {
	// ApplyDelta adds signedAmount to collected_amount and returns the new total.
	ApplyDelta(ctx context.Context, programID string, signedAmount decimal.Decimal) (decimal.Decimal, error)
}

// ProgramRepositoryFacade combines all program-related repository interfaces
type ProgramRepositoryFacade interface {
	ProgramReader
}
