package mapping

import (
	"github.com/SscSPs/donation_payment_app/internal/core/domain"
	"github.com/SscSPs/donation_payment_app/internal/models"
)

// ToDomainProgram converts a model Program to a domain Program
func ToDomainProgram(m models.Program) domain.Program {
	return domain.Program{
		ProgramID:       m.ProgramID,
		Title:           m.Title,
		TargetAmount:    m.TargetAmount,
		CollectedAmount: m.CollectedAmount,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
