package domain

import "github.com/shopspring/decimal"

// Program is a fundraising campaign. Only CollectedAmount is mutated by payment reconciliation.
type Program struct {
	ProgramID       string          `json:"programID"`
	Title           string          `json:"title"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}

// LedgerAudit compares a program's stored aggregate with the sum of its paid donations.
type LedgerAudit struct {
	ProgramID       string          `json:"programID"`
	CollectedAmount decimal.Decimal `json:"collectedAmount"`
	PaidSum         decimal.Decimal `json:"paidSum"`
	PaidCount       int64           `json:"paidCount"`
	Drift           decimal.Decimal `json:"drift"`
}
