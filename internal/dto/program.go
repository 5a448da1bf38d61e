package dto

import (
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/SscSPs/donation_payment_app/internal/utils"
)

// LedgerAuditResponse reports how a program's collected amount compares with its paid donations.
type LedgerAuditResponse struct {
	ProgramID       string `json:"programID"`
	CollectedAmount string `json:"collectedAmount"`
	PaidSum         string `json:"paidSum"`
	PaidCount       int64  `json:"paidCount"`
	Drift           string `json:"drift"`
	Consistent      bool   `json:"consistent"`
}

// ToLedgerAuditResponse converts a domain.LedgerAudit to LedgerAuditResponse DTO.
func ToLedgerAuditResponse(a *domain.LedgerAudit) LedgerAuditResponse {
	return LedgerAuditResponse{
		ProgramID:       a.ProgramID,
		CollectedAmount: utils.FormatAmount(a.CollectedAmount),
		PaidSum:         utils.FormatAmount(a.PaidSum),
		PaidCount:       a.PaidCount,
		Drift:           utils.FormatAmount(a.Drift),
		Consistent:      a.Drift.IsZero(),
	}
}
