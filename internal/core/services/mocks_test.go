package services_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portsrepo "github.com/SscSPs/donation_payment_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock DonationRepository ---
type MockDonationRepository struct {
	mock.Mock
}

func (m *MockDonationRepository) FindDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindDonationByCode(ctx context.Context, code string) (*domain.Donation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationRepository) ListDonations(ctx context.Context, status *domain.DonationStatus, limit int, nextToken *string) ([]domain.Donation, *string, error) {
	args := m.Called(ctx, status, limit, nextToken)
	var donations []domain.Donation
	if args.Get(0) != nil {
		donations = args.Get(0).([]domain.Donation)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return donations, token, args.Error(2)
}

func (m *MockDonationRepository) ListStalePendingDonationIDs(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDonationRepository) SaveDonation(ctx context.Context, donation domain.Donation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *MockDonationRepository) UpdateCheckoutSession(ctx context.Context, donationID string, sessionToken, redirectURL, gatewayTransactionID *string, now time.Time) error {
	args := m.Called(ctx, donationID, sessionToken, redirectURL, gatewayTransactionID, now)
	return args.Error(0)
}

func (m *MockDonationRepository) DeleteDonation(ctx context.Context, donationID string) error {
	args := m.Called(ctx, donationID)
	return args.Error(0)
}

// --- Mock ProgramRepository ---
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) FindProgramByID(ctx context.Context, programID string) (*domain.Program, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Program), args.Error(1)
}

func (m *MockProgramRepository) AuditProgramLedger(ctx context.Context, programID string) (*domain.LedgerAudit, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAudit), args.Error(1)
}

// --- Mock IdentifierSvc ---
type MockIdentifierService struct {
	mock.Mock
}

func (m *MockIdentifierService) NextDonationCode(ctx context.Context, at time.Time) (string, error) {
	args := m.Called(ctx, at)
	return args.String(0), args.Error(1)
}

func (m *MockIdentifierService) NextGatewayOrderID(ctx context.Context, at time.Time) (string, error) {
	args := m.Called(ctx, at)
	return args.String(0), args.Error(1)
}

// --- Mock GatewayClient ---
type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) CreateCheckoutSession(ctx context.Context, req domain.CheckoutRequest) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}

// --- Mock EventPublisher ---
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event domain.DonationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- In-memory unit of work ---

// memoryLedger is an in-memory UnitOfWork. Units of work are serialized by a mutex, which
// stands in for the row lock taken by the database. Writes are staged and only become
// visible when fn returns nil.
type memoryLedger struct {
	mu        sync.Mutex
	donations map[string]domain.Donation
	byOrder   map[string]string
	programs  map[string]decimal.Decimal
	logs      []domain.NotificationLog

	// conflicts makes the next n units of work fail with a write conflict.
	conflicts int
	attempts  int
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{
		donations: map[string]domain.Donation{},
		byOrder:   map[string]string{},
		programs:  map[string]decimal.Decimal{},
	}
}

func (m *memoryLedger) addProgram(programID string, collected decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.programs[programID] = collected
}

func (m *memoryLedger) addDonation(d domain.Donation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.donations[d.DonationID] = d
	if d.GatewayOrderID != nil {
		m.byOrder[*d.GatewayOrderID] = d.DonationID
	}
}

func (m *memoryLedger) donation(id string) domain.Donation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.donations[id]
}

func (m *memoryLedger) collected(programID string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.programs[programID]
}

func (m *memoryLedger) notificationLogs() []domain.NotificationLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.NotificationLog(nil), m.logs...)
}

func (m *memoryLedger) WithinTransition(ctx context.Context, fn func(ctx context.Context, store portsrepo.TransitionStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	if m.conflicts > 0 {
		m.conflicts--
		return apperrors.ErrLedgerWriteConflict
	}

	tx := &memoryTx{
		parent:    m,
		donations: map[string]domain.Donation{},
		deltas:    map[string]decimal.Decimal{},
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	for id, d := range tx.donations {
		m.donations[id] = d
	}
	for id, delta := range tx.deltas {
		m.programs[id] = m.programs[id].Add(delta)
	}
	m.logs = append(m.logs, tx.logs...)
	return nil
}

type memoryTx struct {
	parent    *memoryLedger
	donations map[string]domain.Donation
	deltas    map[string]decimal.Decimal
	logs      []domain.NotificationLog
}

func (t *memoryTx) load(id string) (*domain.Donation, error) {
	if d, ok := t.donations[id]; ok {
		return &d, nil
	}
	d, ok := t.parent.donations[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (t *memoryTx) LockDonationByOrderID(ctx context.Context, orderID string) (*domain.Donation, error) {
	id, ok := t.parent.byOrder[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return t.load(id)
}

func (t *memoryTx) LockDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	return t.load(donationID)
}

func (t *memoryTx) UpdateDonationState(ctx context.Context, donation domain.Donation) error {
	if _, err := t.load(donation.DonationID); err != nil {
		return err
	}
	t.donations[donation.DonationID] = donation
	return nil
}

func (t *memoryTx) ApplyDelta(ctx context.Context, programID string, signedAmount decimal.Decimal) (decimal.Decimal, error) {
	current, ok := t.parent.programs[programID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: program %s", apperrors.ErrNotFound, programID)
	}
	t.deltas[programID] = t.deltas[programID].Add(signedAmount)
	return current.Add(t.deltas[programID]), nil
}

func (t *memoryTx) SaveNotificationLog(ctx context.Context, entry domain.NotificationLog) error {
	t.logs = append(t.logs, entry)
	return nil
}

// memorySequence is an in-memory SequenceRepository.
type memorySequence struct {
	mu     sync.Mutex
	values map[string]int64
}

func newMemorySequence() *memorySequence {
	return &memorySequence{values: map[string]int64{}}
}

func (s *memorySequence) NextValue(ctx context.Context, scope string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[scope]++
	return s.values[scope], nil
}

var (
	_ portsrepo.UnitOfWork         = (*memoryLedger)(nil)
	_ portsrepo.SequenceRepository = (*memorySequence)(nil)
)
