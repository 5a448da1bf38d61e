package models

import "github.com/shopspring/decimal"

// Program is the row shape of the programs table.
type Program struct {
	ProgramID       string          `db:"program_id"`
	Title           string          `db:"title"`
	TargetAmount    decimal.Decimal `db:"target_amount"`
	CollectedAmount decimal.Decimal `db:"collected_amount"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}
