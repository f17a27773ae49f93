package services

import (
	"context"

	"github.com/contaflux/checking_account_api/internal/core/domain"
	"github.com/contaflux/checking_account_api/internal/dto"
)

// AccountReaderSvc defines read operations for checking accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.CheckingAccount, error)

	// ListAccounts retrieves accounts, optionally filtered by a name fragment.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.CheckingAccount, error)
}

// AccountWriterSvc defines write operations for checking accounts.
type AccountWriterSvc interface {
	// CreateAccount opens a new checking account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.CheckingAccount, error)

	// UpdateAccount updates the holder details of an existing account.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.CheckingAccount, error)

	// DeleteAccount removes an account.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
