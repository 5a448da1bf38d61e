package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GatewayNotification is an inbound asynchronous payment status callback.
type GatewayNotification struct {
	OrderID           string
	TransactionStatus string
	FraudStatus       string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
	TransactionID     string
	PaymentType       string
	RawPayload        []byte
}

// NotificationOutcome records what reconciliation did with a notification.
type NotificationOutcome string

const (
	OutcomeApplied   NotificationOutcome = "applied"
	OutcomeDuplicate NotificationOutcome = "duplicate"
	OutcomeIgnored   NotificationOutcome = "ignored"
)

// NotificationLog is the persisted trace of a notification for a known order.
type NotificationLog struct {
	NotificationID    string              `json:"notificationID"`
	DonationID        string              `json:"donationID"`
	GatewayOrderID    string              `json:"gatewayOrderID"`
	TransactionStatus string              `json:"transactionStatus"`
	TargetStatus      *DonationStatus     `json:"targetStatus"`
	Outcome           NotificationOutcome `json:"outcome"`
	Detail            string              `json:"detail"`
	Payload           []byte              `json:"-"`
	ReceivedAt        time.Time           `json:"receivedAt"`
}

// ReconcileResult is returned to the webhook caller.
type ReconcileResult struct {
	DonationID     string              `json:"donationID"`
	OrderID        string              `json:"orderID"`
	PreviousStatus DonationStatus      `json:"previousStatus"`
	CurrentStatus  DonationStatus      `json:"currentStatus"`
	Outcome        NotificationOutcome `json:"outcome"`
	LedgerDelta    decimal.Decimal     `json:"ledgerDelta"`
}
