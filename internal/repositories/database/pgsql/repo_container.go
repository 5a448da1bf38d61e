package pgsql

import (
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		DonationRepo: newPgxDonationRepository(dbPool),
		ProgramRepo:  newPgxProgramRepository(dbPool),
		SequenceRepo: newPgxSequenceRepository(dbPool),
		UnitOfWork:   newPgxUnitOfWork(dbPool),
	}
}
