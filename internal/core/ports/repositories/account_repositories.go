package repositories

import (
	"context"
	"time"

	"github.com/contaflux/checking_account_api/internal/core/domain"
)

// AccountReader defines read operations for checking account data.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	// Returns apperrors.ErrNotFound when no such account exists.
	FindAccountByID(ctx context.Context, accountID string) (*domain.CheckingAccount, error)

	// ListAccounts retrieves a paginated list of accounts ordered by name.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.CheckingAccount, error)

	// FindAccountsByName retrieves accounts whose name contains the given
	// fragment (case-insensitive), ordered by name ascending.
	FindAccountsByName(ctx context.Context, name string) ([]domain.CheckingAccount, error)
}

// AccountWriter defines write operations for checking account data.
type AccountWriter interface {
	// SaveAccount inserts a new account row.
	SaveAccount(ctx context.Context, account domain.CheckingAccount) error

	// UpdateAccount updates the mutable fields of an existing account.
	// Returns apperrors.ErrNotFound when the account does not exist.
	UpdateAccount(ctx context.Context, account domain.CheckingAccount, updatedAt time.Time) error

	// DeleteAccount removes an account row.
	// Returns apperrors.ErrNotFound when the account does not exist.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
