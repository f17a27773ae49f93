package services

import (
	"context"
	"time"

	"github.com/contaflux/checking_account_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StatementWriterSvc defines the four movement operations of the ledger.
// Every operation validates amount and description before touching storage
// and returns the created entry on success.
type StatementWriterSvc interface {
	// Deposit appends a credit entry. Credits are always accepted.
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error)

	// Withdraw appends a debit entry, subject to the overdraft rule.
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error)

	// Pix appends a debit entry with a "PIX - " description prefix.
	Pix(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error)

	// Ted appends a debit entry with a "TED - " description prefix.
	Ted(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error)
}

// StatementReaderSvc defines the read operations of the ledger.
type StatementReaderSvc interface {
	// GetAll retrieves the account's full history, most recent first.
	GetAll(ctx context.Context, accountID string) ([]domain.Statement, error)

	// GetByPeriod retrieves the entries created within [start, end] inclusive.
	GetByPeriod(ctx context.Context, accountID string, start, end time.Time) ([]domain.Statement, error)

	// GetBalance folds the account's history into its current balance.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// StatementSvcFacade combines all statement service interfaces.
type StatementSvcFacade interface {
	StatementWriterSvc
	StatementReaderSvc
}
