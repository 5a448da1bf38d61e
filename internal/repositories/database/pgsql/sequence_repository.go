package pgsql

import (
	"context"
	"fmt"

	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NextValue reserves the next number for scope. The upsert holds the row lock for the
// statement only, so callers never see the same value and values are never skipped.
func (r *PgxSequenceRepository) NextValue(ctx context.Context, scope string) (int64, error) {
	query := `
		INSERT INTO id_sequences (scope, last_value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (scope) DO UPDATE
		SET last_value = id_sequences.last_value + 1,
			updated_at = NOW()
		RETURNING last_value;`
	var value int64
	if err := r.Pool.QueryRow(ctx, query, scope).Scan(&value); err != nil {
		return 0, mapError(err, fmt.Sprintf("reserve sequence value for %s", scope))
	}
	return value, nil
}
