package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	"github.com/SscSPs/donation_payment_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxUnitOfWork runs donation transitions inside a single READ COMMITTED transaction.
// Donation rows are taken with SELECT ... FOR UPDATE so concurrent units on the same
// donation queue behind each other.
type PgxUnitOfWork struct {
	txm portsrepo.TransactionManager
}

func newPgxUnitOfWork(pool *pgxpool.Pool) portsrepo.UnitOfWork {
	return &PgxUnitOfWork{txm: &BaseRepository{Pool: pool}}
}

var _ portsrepo.UnitOfWork = (*PgxUnitOfWork)(nil)

// WithinTransition commits when fn returns nil and rolls back otherwise.
func (u *PgxUnitOfWork) WithinTransition(ctx context.Context, fn func(ctx context.Context, store portsrepo.TransitionStore) error) error {
	tx, err := u.txm.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// No-op after a successful commit
		_ = u.txm.Rollback(ctx, tx)
	}()

	if err := fn(ctx, newPgxTransitionStore(tx)); err != nil {
		return err
	}
	return u.txm.Commit(ctx, tx)
}

type pgxTransitionStore struct {
	pgxProgramLedger
	tx pgx.Tx
}

func newPgxTransitionStore(tx pgx.Tx) *pgxTransitionStore {
	return &pgxTransitionStore{pgxProgramLedger: pgxProgramLedger{q: tx}, tx: tx}
}

var _ portsrepo.TransitionStore = (*pgxTransitionStore)(nil)

func (s *pgxTransitionStore) LockDonationByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	return findDonation(ctx, s.tx, "gateway_order_id = $1 FOR UPDATE", orderID, "lock donation by order id")
}

func (s *pgxTransitionStore) LockDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	return findDonation(ctx, s.tx, "donation_id = $1 FOR UPDATE", donationID, "lock donation by id")
}

func (s *pgxTransitionStore) UpdateDonationState(ctx context.Context, donation domain.Donation) error {
	m := mapping.ToModelDonation(donation)
	query := `
		UPDATE donations
		SET status = $2,
			paid_at = $3,
			gateway_transaction_id = $4,
			raw_gateway_payload = COALESCE($5, raw_gateway_payload),
			confirmed_by = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE donation_id = $1;`
	tag, err := s.tx.Exec(ctx, query,
		m.DonationID,
		m.Status,
		m.PaidAt,
		m.GatewayTransactionID,
		jsonbOrNil(m.RawGatewayPayload),
		m.ConfirmedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update donation state")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update donation state %s: %w", m.DonationID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *pgxTransitionStore) SaveNotificationLog(ctx context.Context, entry domain.NotificationLog) error {
	m := mapping.ToModelGatewayNotification(entry)
	query := `
		INSERT INTO gateway_notifications (notification_id, donation_id, gateway_order_id, transaction_status,
			target_status, outcome, detail, payload, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	_, err := s.tx.Exec(ctx, query,
		m.NotificationID,
		m.DonationID,
		m.GatewayOrderID,
		m.TransactionStatus,
		m.TargetStatus,
		m.Outcome,
		m.Detail,
		jsonbOrNil(m.Payload),
		m.ReceivedAt,
	)
	return mapError(err, "save notification log")
}
