package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventDonationStatusChanged is emitted after a committed donation transition.
const EventDonationStatusChanged = "donation.status_changed"

// DonationEvent is the payload handed to event sinks.
type DonationEvent struct {
	EventID         string           `json:"eventID"`
	Type            string           `json:"type"`
	DonationID      string           `json:"donationID"`
	DonationCode    string           `json:"donationCode"`
	ProgramID       *string          `json:"programID,omitempty"`
	From            DonationStatus   `json:"from"`
	To              DonationStatus   `json:"to"`
	Amount          decimal.Decimal  `json:"amount"`
	LedgerDelta     decimal.Decimal  `json:"ledgerDelta"`
	CollectedAmount *decimal.Decimal `json:"collectedAmount,omitempty"`
	Trigger         string           `json:"trigger"`
	OccurredAt      time.Time        `json:"occurredAt"`
}

// Event triggers.
const (
	TriggerWebhook  = "webhook"
	TriggerOperator = "operator"
	TriggerExpiry   = "expiry"
)
