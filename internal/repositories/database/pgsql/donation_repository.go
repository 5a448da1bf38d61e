package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	"github.com/SscSPs/donation_payment_app/internal/models"
	"github.com/SscSPs/donation_payment_app/internal/utils/mapping"
	"github.com/SscSPs/donation_payment_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const donationColumns = `donation_id, donation_code, program_id, amount, status, payment_source,
	donor_name, donor_email, message, proof_url, gateway_order_id, gateway_transaction_id,
	session_token, redirect_url, raw_gateway_payload, paid_at, confirmed_by,
	created_at, created_by, last_updated_at, last_updated_by`

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxDonationRepository struct {
	BaseRepository
}

func newPgxDonationRepository(pool *pgxpool.Pool) portsrepo.DonationRepositoryFacade {
	return &PgxDonationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DonationRepositoryFacade = (*PgxDonationRepository)(nil)

func scanDonation(row pgx.Row) (models.Donation, error) {
	var m models.Donation
	err := row.Scan(
		&m.DonationID,
		&m.DonationCode,
		&m.ProgramID,
		&m.Amount,
		&m.Status,
		&m.PaymentSource,
		&m.DonorName,
		&m.DonorEmail,
		&m.Message,
		&m.ProofURL,
		&m.GatewayOrderID,
		&m.GatewayTransactionID,
		&m.SessionToken,
		&m.RedirectURL,
		&m.RawGatewayPayload,
		&m.PaidAt,
		&m.ConfirmedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func findDonation(ctx context.Context, q querier, where string, arg any, op string) (*domain.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE ` + where
	m, err := scanDonation(q.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, op)
	}
	d := mapping.ToDomainDonation(m)
	return &d, nil
}

// jsonbOrNil keeps empty payloads out of the JSONB column.
func jsonbOrNil(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}

// SaveDonation inserts a new donation.
func (r *PgxDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	m := mapping.ToModelDonation(donation)
	query := `INSERT INTO donations (` + donationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);`

	_, err := r.Pool.Exec(ctx, query,
		m.DonationID,
		m.DonationCode,
		m.ProgramID,
		m.Amount,
		m.Status,
		m.PaymentSource,
		m.DonorName,
		m.DonorEmail,
		m.Message,
		m.ProofURL,
		m.GatewayOrderID,
		m.GatewayTransactionID,
		m.SessionToken,
		m.RedirectURL,
		jsonbOrNil(m.RawGatewayPayload),
		m.PaidAt,
		m.ConfirmedBy,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, fmt.Sprintf("save donation %s", m.DonationID))
}

// FindDonationByID retrieves a donation by its ID.
func (r *PgxDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	return findDonation(ctx, r.Pool, "donation_id = $1", donationID, "find donation by id")
}

// FindDonationByCode retrieves a donation by its public code.
func (r *PgxDonationRepository) FindDonationByCode(ctx context.Context, code string) (*domain.Donation, error) {
	return findDonation(ctx, r.Pool, "donation_code = $1", code, "find donation by code")
}

// ListDonations returns donations newest first using keyset pagination on (created_at, donation_id).
func (r *PgxDonationRepository) ListDonations(ctx context.Context, status *domain.DonationStatus, limit int, nextToken *string) ([]domain.Donation, *string, error) {
	var (
		conditions []string
		args       []any
	)
	if status != nil {
		args = append(args, string(*status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, createdAt, id)
		conditions = append(conditions, fmt.Sprintf("(created_at, donation_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + donationColumns + ` FROM donations`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// Fetch one extra row to know whether another page exists
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, donation_id DESC LIMIT $%d", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, mapError(err, "list donations")
	}
	defer rows.Close()

	var ms []models.Donation
	for rows.Next() {
		m, err := scanDonation(rows)
		if err != nil {
			return nil, nil, mapError(err, "scan donation row")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, mapError(err, "iterate donation rows")
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeToken(last.CreatedAt, last.DonationID)
		token = &t
	}
	return mapping.ToDomainDonationSlice(ms), token, nil
}

// ListStalePendingDonationIDs returns gateway donations still pending after cutoff, oldest first.
func (r *PgxDonationRepository) ListStalePendingDonationIDs(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	query := `
		SELECT donation_id FROM donations
		WHERE status = 'pending' AND payment_source = 'gateway' AND created_at < $1
		ORDER BY created_at
		LIMIT $2;`
	rows, err := r.Pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, mapError(err, "list stale pending donations")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, mapError(err, "collect stale pending donations")
	}
	return ids, nil
}

// UpdateCheckoutSession stores the session handed back by the gateway. Only pending rows are touched.
func (r *PgxDonationRepository) UpdateCheckoutSession(ctx context.Context, donationID string, sessionToken, redirectURL, gatewayTransactionID *string, now time.Time) error {
	query := `
		UPDATE donations
		SET session_token = $2,
			redirect_url = $3,
			gateway_transaction_id = COALESCE($4, gateway_transaction_id),
			last_updated_at = $5,
			last_updated_by = $6
		WHERE donation_id = $1 AND status = 'pending';`
	tag, err := r.Pool.Exec(ctx, query, donationID, sessionToken, redirectURL, gatewayTransactionID, now, domain.SystemActor)
	if err != nil {
		return mapError(err, "update checkout session")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update checkout session %s: %w", donationID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteDonation removes a donation that never reached the gateway.
func (r *PgxDonationRepository) DeleteDonation(ctx context.Context, donationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM donations WHERE donation_id = $1 AND status = 'pending';`, donationID)
	if err != nil {
		return mapError(err, "delete donation")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete donation %s: %w", donationID, apperrors.ErrNotFound)
	}
	return nil
}
