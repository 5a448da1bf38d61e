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
	"github.com/SscSPs/donation_payment_app/internal/dto"
	"github.com/SscSPs/donation_payment_app/internal/platform/metrics"
	"github.com/google/uuid"
)

const (
	defaultListLimit = 20
	// maxOrderIDAttempts bounds retries when a generated gateway order id collides.
	maxOrderIDAttempts = 3
)

type donationService struct {
	BaseService
	donationRepo portsrepo.DonationRepositoryFacade
	programRepo  portsrepo.ProgramReader
	identifiers  portssvc.IdentifierSvc
	gateway      portssvc.GatewayClient
	runner       *transitionRunner
}

// DonationServiceDeps groups the collaborators of the donation service.
type DonationServiceDeps struct {
	DonationRepo portsrepo.DonationRepositoryFacade
	ProgramRepo  portsrepo.ProgramReader
	UnitOfWork   portsrepo.UnitOfWork
	Identifiers  portssvc.IdentifierSvc
	Gateway      portssvc.GatewayClient
	Publisher    portssvc.EventPublisher
	MaxAttempts  int
}

// NewDonationService creates the donor intake and operator resolution service.
func NewDonationService(deps DonationServiceDeps, base BaseService) portssvc.DonationSvcFacade {
	return &donationService{
		BaseService:  base,
		donationRepo: deps.DonationRepo,
		programRepo:  deps.ProgramRepo,
		identifiers:  deps.Identifiers,
		gateway:      deps.Gateway,
		runner:       newTransitionRunner(base, deps.UnitOfWork, deps.Publisher, deps.MaxAttempts),
	}
}

var _ portssvc.DonationSvcFacade = (*donationService)(nil)

func (s *donationService) CreateDonation(ctx context.Context, req dto.CreateDonationRequest) (*domain.Donation, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	source := domain.PaymentSource(req.PaymentSource)
	if source != domain.PaymentSourceGateway && source != domain.PaymentSourceManual {
		return nil, fmt.Errorf("%w: unknown payment source %q", apperrors.ErrValidation, req.PaymentSource)
	}
	if source == domain.PaymentSourceManual && strings.TrimSpace(req.ProofURL) == "" {
		return nil, fmt.Errorf("%w: proof of transfer is required for manual donations", apperrors.ErrValidation)
	}

	var program *domain.Program
	if req.ProgramID != nil && *req.ProgramID != "" {
		p, err := s.programRepo.FindProgramByID(ctx, *req.ProgramID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: program %s does not exist", apperrors.ErrValidation, *req.ProgramID)
			}
			return nil, fmt.Errorf("failed to load program %s: %w", *req.ProgramID, err)
		}
		if !p.IsActive {
			return nil, fmt.Errorf("%w: program %s is not accepting donations", apperrors.ErrValidation, p.ProgramID)
		}
		program = p
	}

	now := s.Now()
	code, err := s.identifiers.NextDonationCode(ctx, now)
	if err != nil {
		return nil, err
	}

	donation := domain.Donation{
		DonationID:    uuid.NewString(),
		DonationCode:  code,
		Amount:        req.Amount,
		Status:        domain.DonationPending,
		PaymentSource: source,
		DonorName:     strings.TrimSpace(req.DonorName),
		DonorEmail:    strings.TrimSpace(req.DonorEmail),
		Message:       req.Message,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemActor,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemActor,
		},
	}
	if program != nil {
		donation.ProgramID = &program.ProgramID
	}

	if source == domain.PaymentSourceManual {
		donation.ProofURL = req.ProofURL
		if err := s.donationRepo.SaveDonation(ctx, donation); err != nil {
			return nil, fmt.Errorf("failed to save manual donation: %w", err)
		}
		s.LogInfo(ctx, "Manual donation recorded", slog.String("donation_code", code))
		return &donation, nil
	}

	if err := s.saveWithFreshOrderID(ctx, &donation); err != nil {
		return nil, err
	}

	checkout := domain.CheckoutRequest{
		OrderID:      *donation.GatewayOrderID,
		Amount:       donation.Amount,
		DonorName:    donation.DonorName,
		DonorEmail:   donation.DonorEmail,
		DonationCode: donation.DonationCode,
		ItemName:     "Donation",
	}
	if program != nil {
		checkout.ItemName = program.Title
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, checkout)
	if err != nil {
		reason := "error"
		switch {
		case errors.Is(err, apperrors.ErrGatewayUnavailable):
			reason = "unavailable"
		case errors.Is(err, apperrors.ErrGatewayRejected):
			reason = "rejected"
		}
		metrics.CheckoutFailures.WithLabelValues(reason).Inc()
		s.LogError(ctx, err, "Failed to open checkout session", slog.String("order_id", checkout.OrderID))

		// The donation was never payable; remove it so it cannot linger as pending.
		if delErr := s.donationRepo.DeleteDonation(ctx, donation.DonationID); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove donation after checkout failure", slog.String("donation_id", donation.DonationID))
		}
		return nil, fmt.Errorf("failed to open checkout session: %w", err)
	}

	donation.SessionToken = optionalString(session.SessionToken)
	donation.RedirectURL = optionalString(session.RedirectURL)
	donation.GatewayTransactionID = optionalString(session.GatewayTransactionID)

	// The checkout already exists at the gateway; a failed write here must not fail the donor.
	if err := s.donationRepo.UpdateCheckoutSession(ctx, donation.DonationID, donation.SessionToken, donation.RedirectURL, donation.GatewayTransactionID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to persist checkout session", slog.String("donation_id", donation.DonationID))
	}

	s.LogInfo(ctx, "Gateway donation created", slog.String("donation_code", code), slog.String("order_id", checkout.OrderID))
	return &donation, nil
}

func (s *donationService) saveWithFreshOrderID(ctx context.Context, donation *domain.Donation) error {
	var lastErr error
	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		orderID, err := s.identifiers.NextGatewayOrderID(ctx, donation.CreatedAt)
		if err != nil {
			return err
		}
		donation.GatewayOrderID = &orderID
		lastErr = s.donationRepo.SaveDonation(ctx, *donation)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, apperrors.ErrDuplicate) {
			return fmt.Errorf("failed to save gateway donation: %w", lastErr)
		}
		s.LogDebug(ctx, "Gateway order id collided, regenerating", slog.String("order_id", orderID))
	}
	return fmt.Errorf("failed to allocate a unique gateway order id: %w", lastErr)
}

func (s *donationService) GetDonationByCode(ctx context.Context, code string) (*domain.Donation, error) {
	donation, err := s.donationRepo.FindDonationByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get donation by code in service: %w", err)
	}
	return donation, nil
}

func (s *donationService) GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	donation, err := s.donationRepo.FindDonationByID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donation by id in service: %w", err)
	}
	return donation, nil
}

func (s *donationService) ListDonations(ctx context.Context, req dto.ListDonationsParams) (*dto.ListDonationsResponse, error) {
	var status *domain.DonationStatus
	if req.Status != "" {
		st := domain.DonationStatus(req.Status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, req.Status)
		}
		status = &st
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	donations, nextToken, err := s.donationRepo.ListDonations(ctx, status, limit, req.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list donations in service: %w", err)
	}
	return &dto.ListDonationsResponse{
		Donations: dto.ToDonationResponses(donations),
		NextToken: nextToken,
	}, nil
}

func (s *donationService) AuditProgramLedger(ctx context.Context, programID string) (*domain.LedgerAudit, error) {
	audit, err := s.programRepo.AuditProgramLedger(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to audit program ledger in service: %w", err)
	}
	if !audit.Drift.IsZero() {
		s.GetLogger(ctx).Warn("Program ledger drift detected",
			slog.String("program_id", programID),
			slog.String("collected", audit.CollectedAmount.String()),
			slog.String("paid_sum", audit.PaidSum.String()))
	}
	return audit, nil
}

// ConfirmDonation resolves a manual donation as paid. Gateway donations are settled by
// notifications only.
func (s *donationService) ConfirmDonation(ctx context.Context, donationID, operatorID string) (*domain.Donation, error) {
	return s.resolve(ctx, donationID, operatorID, domain.DonationPaid, true)
}

func (s *donationService) RejectDonation(ctx context.Context, donationID, operatorID string) (*domain.Donation, error) {
	return s.resolve(ctx, donationID, operatorID, domain.DonationFailed, false)
}

func (s *donationService) resolve(ctx context.Context, donationID, operatorID string, target domain.DonationStatus, manualOnly bool) (*domain.Donation, error) {
	if operatorID == "" {
		return nil, fmt.Errorf("%w: operator is required", apperrors.ErrValidation)
	}

	var outcome domain.TransitionOutcome
	err := s.runner.run(ctx, func(ctx context.Context, store portsrepo.TransitionStore) error {
		outcome = domain.TransitionOutcome{}

		d, err := store.LockDonationByID(ctx, donationID)
		if err != nil {
			return err
		}
		if manualOnly && d.PaymentSource != domain.PaymentSourceManual {
			return fmt.Errorf("%w: gateway donations are confirmed by the payment gateway", apperrors.ErrValidation)
		}
		if !domain.CanTransition(d.Status, target) {
			return fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, d.Status, target)
		}

		outcome, err = applyTransition(ctx, store, d, domain.StateChange{
			Target:      target,
			Reversal:    domain.IsReversal(d.Status, target),
			ConfirmedBy: &operatorID,
			At:          s.Now(),
			Actor:       operatorID,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to move donation %s to %s: %w", donationID, target, err)
	}

	s.runner.publish(ctx, outcome, domain.TriggerOperator)
	s.LogInfo(ctx, "Donation resolved by operator",
		slog.String("donation_id", donationID),
		slog.String("from", string(outcome.PreviousStatus)),
		slog.String("to", string(target)))

	resolved := outcome.Donation
	return &resolved, nil
}
