package services_test

import (
	"testing"

	"github.com/SscSPs/donation_payment_app/internal/apperrors"
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/SscSPs/donation_payment_app/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestMapGatewayStatus(t *testing.T) {
	tests := []struct {
		status string
		fraud  string
		want   domain.DonationStatus
	}{
		{"settlement", "", domain.DonationPaid},
		{"settlement", "accept", domain.DonationPaid},
		{"capture", "accept", domain.DonationPaid},
		{"capture", "", domain.DonationPaid},
		{"capture", "challenge", domain.DonationPending},
		{"capture", "deny", domain.DonationFailed},
		{"pending", "", domain.DonationPending},
		{"authorize", "", domain.DonationPending},
		{"deny", "", domain.DonationFailed},
		{"cancel", "", domain.DonationFailed},
		{"failure", "", domain.DonationFailed},
		{"expire", "", domain.DonationExpired},
		{"refund", "", domain.DonationFailed},
		{"partial_refund", "", domain.DonationFailed},
		{"chargeback", "", domain.DonationFailed},
		{"partial_chargeback", "", domain.DonationFailed},
		{"SETTLEMENT", "", domain.DonationPaid},
	}

	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.fraud, func(t *testing.T) {
			got, err := services.MapGatewayStatus(tt.status, tt.fraud)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapGatewayStatus_UnknownIsNeverPaid(t *testing.T) {
	for _, status := range []string{"", "success", "paid", "settled", "unknown", "capture_pending"} {
		t.Run(status, func(t *testing.T) {
			got, err := services.MapGatewayStatus(status, "")
			assert.ErrorIs(t, err, apperrors.ErrUnmappedGatewayStatus)
			assert.NotEqual(t, domain.DonationPaid, got)
		})
	}

	got, err := services.MapGatewayStatus("capture", "review")
	assert.ErrorIs(t, err, apperrors.ErrUnmappedGatewayStatus)
	assert.NotEqual(t, domain.DonationPaid, got)
}

func TestIsReversalStatus(t *testing.T) {
	for _, status := range []string{"refund", "partial_refund", "chargeback", "Partial_Chargeback"} {
		assert.True(t, services.IsReversalStatus(status), status)
	}
	for _, status := range []string{"deny", "cancel", "failure", "expire", "settlement", ""} {
		assert.False(t, services.IsReversalStatus(status), status)
	}
}
