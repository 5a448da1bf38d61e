package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from domain.DonationStatus
		to   domain.DonationStatus
		want bool
	}{
		{"pending to paid", domain.DonationPending, domain.DonationPaid, true},
		{"pending to failed", domain.DonationPending, domain.DonationFailed, true},
		{"pending to expired", domain.DonationPending, domain.DonationExpired, true},
		{"paid to failed (reversal)", domain.DonationPaid, domain.DonationFailed, true},
		{"paid to paid", domain.DonationPaid, domain.DonationPaid, false},
		{"paid to expired", domain.DonationPaid, domain.DonationExpired, false},
		{"paid to pending", domain.DonationPaid, domain.DonationPending, false},
		{"failed to paid", domain.DonationFailed, domain.DonationPaid, false},
		{"failed to pending", domain.DonationFailed, domain.DonationPending, false},
		{"expired to paid", domain.DonationExpired, domain.DonationPaid, false},
		{"expired to failed", domain.DonationExpired, domain.DonationFailed, false},
		{"pending to pending", domain.DonationPending, domain.DonationPending, false},
		{"unknown source state", domain.DonationStatus("refunded"), domain.DonationFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsReversal(t *testing.T) {
	assert.True(t, domain.IsReversal(domain.DonationPaid, domain.DonationFailed))
	assert.False(t, domain.IsReversal(domain.DonationPending, domain.DonationFailed))
	assert.False(t, domain.IsReversal(domain.DonationPaid, domain.DonationExpired))
}

func TestLedgerDeltaFor(t *testing.T) {
	amount := decimal.NewFromInt(50000)

	tests := []struct {
		name string
		from domain.DonationStatus
		to   domain.DonationStatus
		want decimal.Decimal
	}{
		{"entering paid adds amount", domain.DonationPending, domain.DonationPaid, amount},
		{"leaving paid subtracts amount", domain.DonationPaid, domain.DonationFailed, amount.Neg()},
		{"pending to failed has no effect", domain.DonationPending, domain.DonationFailed, decimal.Zero},
		{"pending to expired has no effect", domain.DonationPending, domain.DonationExpired, decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.LedgerDeltaFor(tt.from, tt.to, amount)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDonation_Apply(t *testing.T) {
	first := time.Date(2025, 1, 1, 12, 30, 0, 0, time.UTC)
	later := first.Add(time.Hour)
	txnID := "txn-1"

	t.Run("applied transition to paid sets paidAt once", func(t *testing.T) {
		d := domain.Donation{Status: domain.DonationPending}
		d.Apply(domain.StateChange{Target: domain.DonationPaid, GatewayTransactionID: &txnID, At: first, Actor: domain.SystemActor}, true)

		assert.Equal(t, domain.DonationPaid, d.Status)
		if assert.NotNil(t, d.PaidAt) {
			assert.Equal(t, first, *d.PaidAt)
		}
		assert.Equal(t, &txnID, d.GatewayTransactionID)

		d.Apply(domain.StateChange{Target: domain.DonationFailed, At: later, Actor: domain.SystemActor}, true)
		assert.Equal(t, domain.DonationFailed, d.Status)
		assert.Equal(t, first, *d.PaidAt, "paidAt must not move after the first payment")
	})

	t.Run("skipped transition refreshes gateway fields only", func(t *testing.T) {
		d := domain.Donation{Status: domain.DonationExpired}
		payload := []byte(`{"transaction_status":"settlement"}`)
		d.Apply(domain.StateChange{Target: domain.DonationPaid, GatewayTransactionID: &txnID, RawGatewayPayload: payload, At: later, Actor: domain.SystemActor}, false)

		assert.Equal(t, domain.DonationExpired, d.Status)
		assert.Nil(t, d.PaidAt)
		assert.Equal(t, payload, d.RawGatewayPayload)
		assert.Equal(t, &txnID, d.GatewayTransactionID)
		assert.Equal(t, later, d.LastUpdatedAt)
	})
}
