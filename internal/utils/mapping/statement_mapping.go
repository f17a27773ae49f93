package mapping

import (
	"github.com/contaflux/checking_account_api/internal/core/domain"
	"github.com/contaflux/checking_account_api/internal/models"
)

// ToModelStatement converts a domain.Statement to its DB model.
func ToModelStatement(d domain.Statement) models.Statement {
	return models.Statement{
		StatementID: d.StatementID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		Description: d.Description,
		EntryType:   models.EntryType(d.EntryType),
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainStatement converts a DB model row back to the domain representation.
func ToDomainStatement(m models.Statement) domain.Statement {
	return domain.Statement{
		StatementID: m.StatementID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Description: m.Description,
		EntryType:   domain.EntryType(m.EntryType),
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainStatements converts a slice of statement rows.
func ToDomainStatements(ms []models.Statement) []domain.Statement {
	out := make([]domain.Statement, len(ms))
	for i, m := range ms {
		out[i] = ToDomainStatement(m)
	}
	return out
}
