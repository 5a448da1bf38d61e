package handlers_test

import (
	"context"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock DonationService ---
type MockDonationService struct {
	mock.Mock
}

func (m *MockDonationService) GetDonationByCode(ctx context.Context, code string) (*domain.Donation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) GetDonationByID(ctx context.Context, donationID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) ListDonations(ctx context.Context, req dto.ListDonationsParams) (*dto.ListDonationsResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListDonationsResponse), args.Error(1)
}

func (m *MockDonationService) AuditProgramLedger(ctx context.Context, programID string) (*domain.LedgerAudit, error) {
	args := m.Called(ctx, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAudit), args.Error(1)
}

func (m *MockDonationService) CreateDonation(ctx context.Context, req dto.CreateDonationRequest) (*domain.Donation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) ConfirmDonation(ctx context.Context, donationID, operatorID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

func (m *MockDonationService) RejectDonation(ctx context.Context, donationID, operatorID string) (*domain.Donation, error) {
	args := m.Called(ctx, donationID, operatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Donation), args.Error(1)
}

// --- Mock Reconciler ---
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, notification domain.GatewayNotification) (*domain.ReconcileResult, error) {
	args := m.Called(ctx, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconcileResult), args.Error(1)
}

// Ensure mocks implement the interfaces
var (
	_ portssvc.DonationSvcFacade = (*MockDonationService)(nil)
	_ portssvc.ReconcilerSvc     = (*MockReconciler)(nil)
)
