package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// transitionRunner executes donation state changes inside a unit of work and
// publishes the ones that committed.
type transitionRunner struct {
	BaseService
	uow         portsrepo.UnitOfWork
	publisher   portssvc.EventPublisher
	maxAttempts int
}

func newTransitionRunner(base BaseService, uow portsrepo.UnitOfWork, publisher portssvc.EventPublisher, maxAttempts int) *transitionRunner {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &transitionRunner{BaseService: base, uow: uow, publisher: publisher, maxAttempts: maxAttempts}
}

// run executes fn in a fresh unit of work, retrying the whole unit on write conflicts.
// fn must reset any state it captures since it may be invoked more than once.
func (r *transitionRunner) run(ctx context.Context, fn func(ctx context.Context, store portsrepo.TransitionStore) error) error {
	var err error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err = r.uow.WithinTransition(ctx, fn)
		if !errors.Is(err, apperrors.ErrLedgerWriteConflict) {
			return err
		}
		if attempt < r.maxAttempts {
			metrics.LedgerConflictRetries.Inc()
			r.GetLogger(ctx).Warn("Ledger write conflict, retrying unit of work", slog.Int("attempt", attempt))
		}
	}
	return err
}

// applyTransition moves d towards change.Target if that is an edge of the state machine,
// adjusting the program ledger by the resulting delta. When it is not an edge only the
// gateway fields are refreshed, and nothing is written if there are none.
func applyTransition(ctx context.Context, store portsrepo.TransitionStore, d *domain.Donation, change domain.StateChange) (domain.TransitionOutcome, error) {
	prev := d.Status
	applied := domain.CanTransition(prev, change.Target) &&
		(change.Reversal || !domain.IsReversal(prev, change.Target))
	outcome := domain.TransitionOutcome{PreviousStatus: prev, Applied: applied, LedgerDelta: decimal.Zero}

	if !applied && change.GatewayTransactionID == nil && change.RawGatewayPayload == nil {
		outcome.Donation = *d
		return outcome, nil
	}

	d.Apply(change, applied)
	if err := store.UpdateDonationState(ctx, *d); err != nil {
		return domain.TransitionOutcome{}, fmt.Errorf("failed to update donation %s: %w", d.DonationID, err)
	}
	outcome.Donation = *d

	if !applied || !d.HasProgram() {
		return outcome, nil
	}
	delta := domain.LedgerDeltaFor(prev, change.Target, d.Amount)
	if delta.IsZero() {
		return outcome, nil
	}
	total, err := store.ApplyDelta(ctx, *d.ProgramID, delta)
	if err != nil {
		return domain.TransitionOutcome{}, fmt.Errorf("failed to apply %s to program %s: %w", delta, *d.ProgramID, err)
	}
	outcome.LedgerDelta = delta
	outcome.CollectedAmount = &total
	return outcome, nil
}

// publish emits an event for a committed transition. Sink failures are logged only;
// the transition is already durable.
func (r *transitionRunner) publish(ctx context.Context, outcome domain.TransitionOutcome, trigger string) {
	if !outcome.Applied {
		return
	}
	d := outcome.Donation
	metrics.TransitionsTotal.WithLabelValues(string(outcome.PreviousStatus), string(d.Status), trigger).Inc()

	if r.publisher == nil {
		return
	}
	event := domain.DonationEvent{
		EventID:         uuid.NewString(),
		Type:            domain.EventDonationStatusChanged,
		DonationID:      d.DonationID,
		DonationCode:    d.DonationCode,
		ProgramID:       d.ProgramID,
		From:            outcome.PreviousStatus,
		To:              d.Status,
		Amount:          d.Amount,
		LedgerDelta:     outcome.LedgerDelta,
		CollectedAmount: outcome.CollectedAmount,
		Trigger:         trigger,
		OccurredAt:      d.LastUpdatedAt,
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.LogError(ctx, err, "Failed to publish donation event",
			slog.String("donation_id", d.DonationID),
			slog.String("to", string(d.Status)))
	}
}
