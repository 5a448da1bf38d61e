package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DonationStatus is the lifecycle state of a donation.
type DonationStatus string

const (
	DonationPending DonationStatus = "pending"
	DonationPaid    DonationStatus = "paid"
	DonationFailed  DonationStatus = "failed"
	DonationExpired DonationStatus = "expired"
)

// IsValid reports whether s is one of the known lifecycle states.
func (s DonationStatus) IsValid() bool {
	switch s {
	case DonationPending, DonationPaid, DonationFailed, DonationExpired:
		return true
	}
	return false
}

// PaymentSource records how a donation is paid.
type PaymentSource string

const (
	PaymentSourceManual  PaymentSource = "manual"
	PaymentSourceGateway PaymentSource = "gateway"
)

// Donation represents a single monetary contribution, online or offline.
type Donation struct {
	DonationID           string          `json:"donationID"`           // Primary Key (UUID)
	DonationCode         string          `json:"donationCode"`         // <PREFIX>-<YYYYMMDD>-<seq>, unique
	ProgramID            *string         `json:"programID"`            // Nil means general fund
	Amount               decimal.Decimal `json:"amount"`               // Positive, immutable
	Status               DonationStatus  `json:"status"`
	PaymentSource        PaymentSource   `json:"paymentSource"`
	DonorName            string          `json:"donorName"`
	DonorEmail           string          `json:"donorEmail"`
	Message              string          `json:"message"`
	ProofURL             string          `json:"proofURL"`             // Manual donations only
	GatewayOrderID       *string         `json:"gatewayOrderID"`       // Gateway donations only, unique
	GatewayTransactionID *string         `json:"gatewayTransactionID"` // Last reported by the gateway
	SessionToken         *string         `json:"sessionToken"`
	RedirectURL          *string         `json:"redirectURL"`
	RawGatewayPayload    []byte          `json:"-"` // Last notification body as received
	PaidAt               *time.Time      `json:"paidAt"`
	ConfirmedBy          *string         `json:"confirmedBy"` // Operator who resolved a manual donation
	AuditFields
}

// HasProgram reports whether the donation counts toward a program's collected amount.
func (d *Donation) HasProgram() bool {
	return d.ProgramID != nil && *d.ProgramID != ""
}

// transitions lists the permitted edges of the donation state machine.
var transitions = map[DonationStatus]map[DonationStatus]bool{
	DonationPending: {
		DonationPaid:    true,
		DonationFailed:  true,
		DonationExpired: true,
	},
	// Reversal / chargeback.
	DonationPaid: {
		DonationFailed: true,
	},
}

// CanTransition reports whether from -> to is an edge of the state machine.
func CanTransition(from, to DonationStatus) bool {
	return transitions[from][to]
}

// IsReversal reports whether from -> to undoes a settled payment. Such an edge is only
// taken when the StateChange carries Reversal.
func IsReversal(from, to DonationStatus) bool {
	return from == DonationPaid && to == DonationFailed
}

// LedgerDeltaFor returns the signed amount a program's collected total changes by
// when a donation of the given amount moves from -> to. Zero when the edge does not
// enter or leave paid.
func LedgerDeltaFor(from, to DonationStatus, amount decimal.Decimal) decimal.Decimal {
	switch {
	case from != DonationPaid && to == DonationPaid:
		return amount
	case from == DonationPaid && to != DonationPaid:
		return amount.Neg()
	}
	return decimal.Zero
}

// StateChange is the set of fields written by a single transition attempt.
type StateChange struct {
	Target               DonationStatus
	GatewayTransactionID *string
	RawGatewayPayload    []byte
	ConfirmedBy          *string
	At                   time.Time
	Actor                string

	// Reversal permits paid -> failed. Without it a failed target against a paid
	// donation only refreshes the gateway fields.
	Reversal bool
}

// Apply mutates d according to change. When applied is false only the
// non-authoritative gateway fields are refreshed.
func (d *Donation) Apply(change StateChange, applied bool) {
	if change.GatewayTransactionID != nil && *change.GatewayTransactionID != "" {
		d.GatewayTransactionID = change.GatewayTransactionID
	}
	if change.RawGatewayPayload != nil {
		d.RawGatewayPayload = change.RawGatewayPayload
	}
	d.LastUpdatedAt = change.At
	d.LastUpdatedBy = change.Actor
	if !applied {
		return
	}
	d.Status = change.Target
	if change.Target == DonationPaid && d.PaidAt == nil {
		paidAt := change.At
		d.PaidAt = &paidAt
	}
	if change.ConfirmedBy != nil {
		d.ConfirmedBy = change.ConfirmedBy
	}
}

// TransitionOutcome describes the committed result of a transition attempt.
type TransitionOutcome struct {
	Donation        Donation
	PreviousStatus  DonationStatus
	Applied         bool
	LedgerDelta     decimal.Decimal
	CollectedAmount *decimal.Decimal // Program total after the delta, when one was applied
}
