package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	"github.com/SscSPs/donation_payment_app/internal/models"
	"github.com/SscSPs/donation_payment_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxProgramRepository struct {
	BaseRepository
}

func newPgxProgramRepository(pool *pgxpool.Pool) portsrepo.ProgramRepositoryFacade {
	return &PgxProgramRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProgramRepositoryFacade = (*PgxProgramRepository)(nil)

// FindProgramByID retrieves a program by its ID.
func (r *PgxProgramRepository) FindProgramByID(ctx context.Context, programID string) (*domain.Program, error) {
	query := `
		SELECT program_id, title, target_amount, collected_amount, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		FROM programs
		WHERE program_id = $1;`
	var m models.Program
	err := r.Pool.QueryRow(ctx, query, programID).Scan(
		&m.ProgramID,
		&m.Title,
		&m.TargetAmount,
		&m.CollectedAmount,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("find program %s", programID))
	}
	p := mapping.ToDomainProgram(m)
	return &p, nil
}

// pgxProgramLedger applies deltas through q, normally the transition's pgx.Tx.
type pgxProgramLedger struct {
	q querier
}

var _ portsrepo.ProgramLedger = pgxProgramLedger{}

// ApplyDelta adjusts collected_amount. The read-modify-write is a single UPDATE so
// concurrent callers cannot lose updates.
func (l pgxProgramLedger) ApplyDelta(ctx context.Context, programID string, signedAmount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE programs
		SET collected_amount = collected_amount + $2,
			last_updated_at = NOW(),
			last_updated_by = $3
		WHERE program_id = $1
		RETURNING collected_amount;`
	var total decimal.Decimal
	if err := l.q.QueryRow(ctx, query, programID, signedAmount, domain.SystemActor).Scan(&total); err != nil {
		return decimal.Zero, mapError(err, fmt.Sprintf("apply delta to program %s", programID))
	}
	return total, nil
}

// AuditProgramLedger recomputes the paid total from donations and reports drift against the stored aggregate.
func (r *PgxProgramRepository) AuditProgramLedger(ctx context.Context, programID string) (*domain.LedgerAudit, error) {
	query := `
		SELECT p.collected_amount,
			COALESCE(SUM(d.amount), 0),
			COUNT(d.donation_id)
		FROM programs p
		LEFT JOIN donations d ON d.program_id = p.program_id AND d.status = 'paid'
		WHERE p.program_id = $1
		GROUP BY p.program_id, p.collected_amount;`
	audit := domain.LedgerAudit{ProgramID: programID}
	err := r.Pool.QueryRow(ctx, query, programID).Scan(&audit.CollectedAmount, &audit.PaidSum, &audit.PaidCount)
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("audit program %s", programID))
	}
	audit.Drift = audit.CollectedAmount.Sub(audit.PaidSum)
	return &audit, nil
}
