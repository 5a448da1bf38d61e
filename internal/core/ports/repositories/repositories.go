package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	DonationRepo DonationRepositoryFacade
	ProgramRepo  ProgramRepositoryFacade
	SequenceRepo SequenceRepository
	UnitOfWork   UnitOfWork
}
