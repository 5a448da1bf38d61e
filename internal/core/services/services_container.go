package services

import (
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gateway portssvc.GatewayClient, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	base := BaseService{}
	container := &portssvc.ServiceContainer{}

	// Identifiers first since donation intake depends on them
	container.Identifier = NewIdentifierService(repos.SequenceRepo, cfg.DonationCodePrefix, cfg.GatewayOrderPrefix, cfg.AppTimezone)

	container.Donation = NewDonationService(DonationServiceDeps{
		DonationRepo: repos.DonationRepo,
		ProgramRepo:  repos.ProgramRepo,
		UnitOfWork:   repos.UnitOfWork,
		Identifiers:  container.Identifier,
		Gateway:      gateway,
		Publisher:    publisher,
		MaxAttempts:  cfg.ReconcileMaxAttempts,
	}, base)

	container.Reconciler = NewReconciliationService(repos.UnitOfWork, publisher, ReconcilerConfig{
		ServerKey:     cfg.MidtransServerKey,
		SkipSignature: cfg.SkipWebhookSignature,
		MaxAttempts:   cfg.ReconcileMaxAttempts,
	}, base)

	container.Sweep = NewExpirySweepService(repos.DonationRepo, repos.UnitOfWork, publisher,
		cfg.PendingDonationTTL, cfg.ExpirySweepBatch, cfg.ReconcileMaxAttempts, base)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.IdentifierSvc     = (*identifierService)(nil)
	_ portssvc.DonationSvcFacade = (*donationService)(nil)
	_ portssvc.ReconcilerSvc     = (*reconciliationService)(nil)
	_ portssvc.ExpirySweepSvc    = (*expirySweepService)(nil)
)
