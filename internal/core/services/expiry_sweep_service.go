package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/platform/metrics"
)

type expirySweepService struct {
	BaseService
	donationRepo portsrepo.DonationReader
	runner       *transitionRunner
	ttl          time.Duration
	batchSize    int
}

// NewExpirySweepService creates the sweep that expires abandoned gateway checkouts.
func NewExpirySweepService(donationRepo portsrepo.DonationReader, uow portsrepo.UnitOfWork, publisher portssvc.EventPublisher, ttl time.Duration, batchSize, maxAttempts int, base BaseService) portssvc.ExpirySweepSvc {
	return &expirySweepService{
		BaseService:  base,
		donationRepo: donationRepo,
		runner:       newTransitionRunner(base, uow, publisher, maxAttempts),
		ttl:          ttl,
		batchSize:    batchSize,
	}
}

var _ portssvc.ExpirySweepSvc = (*expirySweepService)(nil)

// ExpireStale handles at most one batch per call. A donation that fails to expire is
// logged and left for the next run.
func (s *expirySweepService) ExpireStale(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	cutoff := s.Now().Add(-s.ttl)
	ids, err := s.donationRepo.ListStalePendingDonationIDs(ctx, cutoff, s.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale pending donations: %w", err)
	}

	expired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}

		var outcome domain.TransitionOutcome
		err := s.runner.run(ctx, func(ctx context.Context, store portsrepo.TransitionStore) error {
			outcome = domain.TransitionOutcome{}

			d, err := store.LockDonationByID(ctx, id)
			if err != nil {
				return err
			}
			// Re-check under the row lock; a notification may have landed since listing.
			if d.Status != domain.DonationPending || d.PaymentSource != domain.PaymentSourceGateway || d.CreatedAt.After(cutoff) {
				return nil
			}
			outcome, err = applyTransition(ctx, store, d, domain.StateChange{
				Target: domain.DonationExpired,
				At:     s.Now(),
				Actor:  domain.SystemActor,
			})
			return err
		})
		if err != nil {
			s.LogError(ctx, err, "Failed to expire donation", slog.String("donation_id", id))
			continue
		}
		if outcome.Applied {
			expired++
			s.runner.publish(ctx, outcome, domain.TriggerExpiry)
		}
	}

	metrics.ExpiredTotal.Add(float64(expired))
	if expired > 0 {
		s.LogInfo(ctx, "Expired stale pending donations", slog.Int("count", expired), slog.Time("cutoff", cutoff))
	}
	return expired, nil
}
