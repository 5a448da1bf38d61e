package services

// ServiceContainer holds all the service interfaces needed by handlers and jobs.
type ServiceContainer struct {
	Donation   DonationSvcFacade
	Reconciler ReconcilerSvc
	Sweep      ExpirySweepSvc
	Identifier IdentifierSvc
}
