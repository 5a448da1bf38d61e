package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExpirySweepServiceTestSuite struct {
	suite.Suite
	donationRepo *MockDonationRepository
	publisher    *MockEventPublisher
	ledger       *memoryLedger
	service      portssvc.ExpirySweepSvc
	now          time.Time
	ttl          time.Duration
}

func (suite *ExpirySweepServiceTestSuite) SetupTest() {
	suite.donationRepo = new(MockDonationRepository)
	suite.publisher = new(MockEventPublisher)
	suite.ledger = newMemoryLedger()
	suite.now = time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	suite.ttl = 24 * time.Hour

	suite.service = services.NewExpirySweepService(suite.donationRepo, suite.ledger, suite.publisher,
		suite.ttl, 50, 3, services.BaseService{Clock: func() time.Time { return suite.now }})
}

func (suite *ExpirySweepServiceTestSuite) seed(id string, status domain.DonationStatus, source domain.PaymentSource, createdAt time.Time) {
	suite.ledger.addDonation(domain.Donation{
		DonationID:    id,
		Amount:        decimal.NewFromInt(1000),
		Status:        status,
		PaymentSource: source,
		AuditFields:   domain.AuditFields{CreatedAt: createdAt},
	})
}

func (suite *ExpirySweepServiceTestSuite) TestExpireStale_ExpiresOrphanedGatewayDonation() {
	cutoff := suite.now.Add(-suite.ttl)
	suite.seed("orphan", domain.DonationPending, domain.PaymentSourceGateway, cutoff.Add(-time.Hour))

	suite.donationRepo.On("ListStalePendingDonationIDs", mock.Anything, cutoff, 50).Return([]string{"orphan"}, nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.DonationEvent) bool {
		return e.DonationID == "orphan" && e.To == domain.DonationExpired && e.Trigger == domain.TriggerExpiry
	})).Return(nil).Once()

	count, err := suite.service.ExpireStale(context.Background())

	suite.Require().NoError(err)
	suite.Equal(1, count)
	suite.Equal(domain.DonationExpired, suite.ledger.donation("orphan").Status)
	suite.publisher.AssertExpectations(suite.T())
}

func (suite *ExpirySweepServiceTestSuite) TestExpireStale_SkipsDonationsResolvedSinceListing() {
	cutoff := suite.now.Add(-suite.ttl)
	suite.seed("paid", domain.DonationPaid, domain.PaymentSourceGateway, cutoff.Add(-time.Hour))
	suite.seed("manual", domain.DonationPending, domain.PaymentSourceManual, cutoff.Add(-time.Hour))
	suite.seed("fresh", domain.DonationPending, domain.PaymentSourceGateway, cutoff.Add(time.Minute))

	suite.donationRepo.On("ListStalePendingDonationIDs", mock.Anything, cutoff, 50).
		Return([]string{"paid", "manual", "fresh"}, nil).Once()

	count, err := suite.service.ExpireStale(context.Background())

	suite.Require().NoError(err)
	suite.Equal(0, count)
	suite.Equal(domain.DonationPaid, suite.ledger.donation("paid").Status)
	suite.Equal(domain.DonationPending, suite.ledger.donation("manual").Status)
	suite.Equal(domain.DonationPending, suite.ledger.donation("fresh").Status)
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

func (suite *ExpirySweepServiceTestSuite) TestExpireStale_ContinuesPastMissingDonation() {
	cutoff := suite.now.Add(-suite.ttl)
	suite.seed("orphan", domain.DonationPending, domain.PaymentSourceGateway, cutoff.Add(-time.Hour))

	suite.donationRepo.On("ListStalePendingDonationIDs", mock.Anything, cutoff, 50).
		Return([]string{"deleted", "orphan"}, nil).Once()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()

	count, err := suite.service.ExpireStale(context.Background())

	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func (suite *ExpirySweepServiceTestSuite) TestExpireStale_ListError() {
	suite.donationRepo.On("ListStalePendingDonationIDs", mock.Anything, mock.Anything, 50).Return(nil, assert.AnError).Once()

	count, err := suite.service.ExpireStale(context.Background())

	suite.Equal(0, count)
	suite.ErrorIs(err, assert.AnError)
}

func TestExpirySweepServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExpirySweepServiceTestSuite))
}
