package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconcilerConfig holds the settings the reconciler needs.
type ReconcilerConfig struct {
	ServerKey     string
	SkipSignature bool
	MaxAttempts   int
}

type reconciliationService struct {
	BaseService
	runner        *transitionRunner
	serverKey     string
	skipSignature bool
}

// NewReconciliationService creates the webhook reconciler.
func NewReconciliationService(uow portsrepo.UnitOfWork, publisher portssvc.EventPublisher, cfg ReconcilerConfig, base BaseService) portssvc.ReconcilerSvc {
	return &reconciliationService{
		BaseService:   base,
		runner:        newTransitionRunner(base, uow, publisher, cfg.MaxAttempts),
		serverKey:     cfg.ServerKey,
		skipSignature: cfg.SkipSignature,
	}
}

var _ portssvc.ReconcilerSvc = (*reconciliationService)(nil)

func (s *reconciliationService) Reconcile(ctx context.Context, n domain.GatewayNotification) (*domain.ReconcileResult, error) {
	logger := s.GetLogger(ctx).With(
		slog.String("order_id", n.OrderID),
		slog.String("transaction_status", n.TransactionStatus),
	)

	if s.skipSignature {
		logger.Warn("Notification signature check is disabled")
	} else if !VerifyNotificationSignature(n, s.serverKey) {
		logger.Warn("Rejected notification with invalid signature")
		metrics.NotificationsTotal.WithLabelValues(n.TransactionStatus, "rejected").Inc()
		return nil, apperrors.ErrInvalidSignature
	}

	target, mapErr := MapGatewayStatus(n.TransactionStatus, n.FraudStatus)
	if mapErr != nil {
		logger.Error("Unmapped gateway transaction status", slog.String("fraud_status", n.FraudStatus), slog.String("error", mapErr.Error()))
	}

	var (
		outcome    domain.TransitionOutcome
		logOutcome domain.NotificationOutcome
		ignoredErr error
	)
	err := s.runner.run(ctx, func(ctx context.Context, store portsrepo.TransitionStore) error {
		outcome, logOutcome, ignoredErr = domain.TransitionOutcome{}, "", nil

		d, err := store.LockDonationByOrderID(ctx, n.OrderID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: %s", apperrors.ErrDonationNotFound, n.OrderID)
			}
			return err
		}

		entry := domain.NotificationLog{
			NotificationID:    uuid.NewString(),
			DonationID:        d.DonationID,
			GatewayOrderID:    n.OrderID,
			TransactionStatus: n.TransactionStatus,
			Payload:           n.RawPayload,
			ReceivedAt:        s.Now(),
		}

		switch {
		case mapErr != nil:
			ignoredErr = mapErr
			outcome = domain.TransitionOutcome{Donation: *d, PreviousStatus: d.Status}
		case target == domain.DonationPaid && !amountMatches(n.GrossAmount, d.Amount):
			ignoredErr = fmt.Errorf("%w: notified %q, expected %s", apperrors.ErrAmountMismatch, n.GrossAmount, d.Amount)
			entry.TargetStatus = &target
			outcome = domain.TransitionOutcome{Donation: *d, PreviousStatus: d.Status}
		default:
			entry.TargetStatus = &target
			outcome, err = applyTransition(ctx, store, d, domain.StateChange{
				Target:               target,
				Reversal:             IsReversalStatus(n.TransactionStatus),
				GatewayTransactionID: optionalString(n.TransactionID),
				RawGatewayPayload:    n.RawPayload,
				At:                   entry.ReceivedAt,
				Actor:                domain.SystemActor,
			})
			if err != nil {
				return err
			}
		}

		logOutcome = classifyOutcome(outcome, target, ignoredErr)
		entry.Outcome = logOutcome
		if ignoredErr != nil {
			entry.Detail = ignoredErr.Error()
		}
		return store.SaveNotificationLog(ctx, entry)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDonationNotFound) {
			logger.Warn("Notification for unknown gateway order")
			metrics.NotificationsTotal.WithLabelValues(n.TransactionStatus, "unknown_order").Inc()
		} else {
			logger.Error("Failed to reconcile notification", slog.String("error", err.Error()))
			metrics.NotificationsTotal.WithLabelValues(n.TransactionStatus, "error").Inc()
		}
		return nil, err
	}

	metrics.NotificationsTotal.WithLabelValues(n.TransactionStatus, string(logOutcome)).Inc()
	s.runner.publish(ctx, outcome, domain.TriggerWebhook)

	if ignoredErr != nil {
		logger.Warn("Notification recorded without state change", slog.String("reason", ignoredErr.Error()))
		return nil, ignoredErr
	}

	if !outcome.Applied && target == domain.DonationPaid && outcome.PreviousStatus != domain.DonationPaid {
		logger.Warn("Payment reported for a donation that can no longer be paid",
			slog.String("donation_id", outcome.Donation.DonationID),
			slog.String("status", string(outcome.PreviousStatus)))
	}

	logger.Info("Notification reconciled",
		slog.String("donation_id", outcome.Donation.DonationID),
		slog.String("from", string(outcome.PreviousStatus)),
		slog.String("to", string(outcome.Donation.Status)),
		slog.String("outcome", string(logOutcome)))

	return &domain.ReconcileResult{
		DonationID:     outcome.Donation.DonationID,
		OrderID:        n.OrderID,
		PreviousStatus: outcome.PreviousStatus,
		CurrentStatus:  outcome.Donation.Status,
		Outcome:        logOutcome,
		LedgerDelta:    outcome.LedgerDelta,
	}, nil
}

func classifyOutcome(outcome domain.TransitionOutcome, target domain.DonationStatus, ignoredErr error) domain.NotificationOutcome {
	switch {
	case ignoredErr != nil:
		return domain.OutcomeIgnored
	case outcome.Applied:
		return domain.OutcomeApplied
	case outcome.PreviousStatus == target:
		return domain.OutcomeDuplicate
	}
	return domain.OutcomeIgnored
}

// amountMatches compares the notified gross amount with the donation amount numerically,
// so "50000" and "50000.00" are equal.
func amountMatches(grossAmount string, amount decimal.Decimal) bool {
	notified, err := decimal.NewFromString(strings.TrimSpace(grossAmount))
	if err != nil {
		return false
	}
	return notified.Equal(amount)
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
