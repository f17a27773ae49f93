package mapping

import (
	"github.com/contaflux/checking_account_api/internal/core/domain"
	"github.com/contaflux/checking_account_api/internal/models"
)

// ToModelAccount converts a domain.CheckingAccount to its DB model.
func ToModelAccount(d domain.CheckingAccount) models.CheckingAccount {
	return models.CheckingAccount{
		AccountID:     d.AccountID,
		Name:          d.Name,
		Email:         d.Email,
		Number:        d.Number,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainAccount converts a DB model row back to the domain representation.
func ToDomainAccount(m models.CheckingAccount) domain.CheckingAccount {
	return domain.CheckingAccount{
		AccountID:     m.AccountID,
		Name:          m.Name,
		Email:         m.Email,
		Number:        m.Number,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
