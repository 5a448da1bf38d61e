package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is the row shape of the donations table.
type Donation struct {
	DonationID           string          `db:"donation_id"`
	DonationCode         string          `db:"donation_code"`
	ProgramID            *string         `db:"program_id"` // Nullable
	Amount               decimal.Decimal `db:"amount"`
	Status               string          `db:"status"`
	PaymentSource        string          `db:"payment_source"`
	DonorName            string          `db:"donor_name"`
	DonorEmail           string          `db:"donor_email"`
	Message              string          `db:"message"`
	ProofURL             string          `db:"proof_url"`
	GatewayOrderID       *string         `db:"gateway_order_id"`
	GatewayTransactionID *string         `db:"gateway_transaction_id"`
	SessionToken         *string         `db:"session_token"`
	RedirectURL          *string         `db:"redirect_url"`
	RawGatewayPayload    []byte          `db:"raw_gateway_payload"` // JSONB
	PaidAt               *time.Time      `db:"paid_at"`
	ConfirmedBy          *string         `db:"confirmed_by"`
	AuditFields
}

// GatewayNotification is the row shape of the gateway_notifications table.
type GatewayNotification struct {
	NotificationID    string    `db:"notification_id"`
	DonationID        string    `db:"donation_id"`
	GatewayOrderID    string    `db:"gateway_order_id"`
	TransactionStatus string    `db:"transaction_status"`
	TargetStatus      *string   `db:"target_status"`
	Outcome           string    `db:"outcome"`
	Detail            string    `db:"detail"`
	Payload           []byte    `db:"payload"`
	ReceivedAt        time.Time `db:"received_at"`
}
