package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/SscSPs/donation_payment_app/internal/dto"
	"github.com/SscSPs/donation_payment_app/internal/handlers"
	"github.com/SscSPs/donation_payment_app/internal/middleware"
	"github.com/SscSPs/donation_payment_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OperatorHandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	service    *MockDonationService
	jwtSecret  string
	operatorID string
}

// generateTestToken creates a signed operator JWT for testing.
func (suite *OperatorHandlerTestSuite) generateTestToken(subject, role string) string {
	signed, err := utils.GenerateOperatorJWT(subject, role, suite.jwtSecret, time.Hour, "donation-admin")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *OperatorHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.operatorID = uuid.NewString()
	suite.service = new(MockDonationService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, "donation-admin"))
	handlers.RegisterOperatorRoutes(v1, suite.service)
}

func (suite *OperatorHandlerTestSuite) do(method, url, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *OperatorHandlerTestSuite) TestConfirmDonation_Success() {
	donationID := uuid.NewString()
	operator := suite.operatorID
	suite.service.On("ConfirmDonation", mock.Anything, donationID, suite.operatorID).Return(&domain.Donation{
		DonationID:  donationID,
		Amount:      decimal.NewFromInt(25000),
		Status:      domain.DonationPaid,
		ConfirmedBy: &operator,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/donations/"+donationID+"/confirm", suite.generateTestToken(suite.operatorID, "operator"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DonationResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("paid", resp.Status)
	suite.Require().NotNil(resp.ConfirmedBy)
	suite.Equal(suite.operatorID, *resp.ConfirmedBy)
	suite.service.AssertExpectations(suite.T())
}

func (suite *OperatorHandlerTestSuite) TestRejectDonation_ErrorMapping() {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict},
		{"validation", apperrors.ErrValidation, http.StatusBadRequest},
		{"conflict", apperrors.ErrLedgerWriteConflict, http.StatusServiceUnavailable},
		{"internal", errInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.service.On("RejectDonation", mock.Anything, "d1", suite.operatorID).Return(nil, tt.err).Once()
			w := suite.do(http.MethodPost, "/api/v1/donations/d1/reject", suite.generateTestToken(suite.operatorID, "admin"))
			suite.Equal(tt.code, w.Code)
		})
	}
}

func (suite *OperatorHandlerTestSuite) TestAuthRequired() {
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/v1/donations/d1/confirm", "").Code)
	suite.Equal(http.StatusUnauthorized, suite.do(http.MethodPost, "/api/v1/donations/d1/confirm", "garbage").Code)
	suite.Equal(http.StatusForbidden, suite.do(http.MethodPost, "/api/v1/donations/d1/confirm", suite.generateTestToken(suite.operatorID, "donor")).Code)
	suite.service.AssertNotCalled(suite.T(), "ConfirmDonation", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OperatorHandlerTestSuite) TestListDonations() {
	next := "cursor"
	suite.service.On("ListDonations", mock.Anything, mock.MatchedBy(func(p dto.ListDonationsParams) bool {
		return p.Status == "pending" && p.Limit == 10
	})).Return(&dto.ListDonationsResponse{
		Donations: []dto.DonationResponse{{DonationID: "d1", Status: "pending"}},
		NextToken: &next,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/donations?status=pending&limit=10", suite.generateTestToken(suite.operatorID, "operator"))

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDonationsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Donations, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("cursor", *resp.NextToken)
}

func (suite *OperatorHandlerTestSuite) TestListDonations_InvalidQuery() {
	token := suite.generateTestToken(suite.operatorID, "operator")
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/donations?status=refunded", token).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/donations?limit=1000", token).Code)
}

func (suite *OperatorHandlerTestSuite) TestAuditProgramLedger() {
	suite.service.On("AuditProgramLedger", mock.Anything, "p1").Return(&domain.LedgerAudit{
		ProgramID:       "p1",
		CollectedAmount: decimal.NewFromInt(150000),
		PaidSum:         decimal.NewFromInt(150000),
		PaidCount:       3,
	}, nil).Once()
	suite.service.On("AuditProgramLedger", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	token := suite.generateTestToken(suite.operatorID, "operator")
	w := suite.do(http.MethodGet, "/api/v1/programs/p1/ledger", token)
	suite.Equal(http.StatusOK, w.Code)
	var resp dto.LedgerAuditResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Consistent)
	suite.Equal(int64(3), resp.PaidCount)

	suite.Equal(http.StatusNotFound, suite.do(http.MethodGet, "/api/v1/programs/missing/ledger", token).Code)
}

func TestOperatorHandler(t *testing.T) {
	suite.Run(t, new(OperatorHandlerTestSuite))
}
