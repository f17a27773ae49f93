package repositories

import (
	"context"
	"time"

	"github.com/contaflux/checking_account_api/internal/core/domain"
)

// StatementReader defines read operations for statement (ledger entry) data.
type StatementReader interface {
	// FindStatementsByAccountID retrieves every entry for the account,
	// ordered by created_at descending (most recent first).
	FindStatementsByAccountID(ctx context.Context, accountID string) ([]domain.Statement, error)

	// FindStatementsByPeriod retrieves the entries whose created_at lies in
	// the inclusive range [start, end], ordered by created_at ascending.
	FindStatementsByPeriod(ctx context.Context, accountID string, start, end time.Time) ([]domain.Statement, error)
}

// StatementWriter defines write operations for statement data.
// The ledger is append-only: there is deliberately no update or delete.
type StatementWriter interface {
	// SaveStatement appends a new entry.
	SaveStatement(ctx context.Context, statement domain.Statement) error
}

// StatementRepositoryFacade combines all statement repository interfaces.
type StatementRepositoryFacade interface {
	StatementReader
	StatementWriter
}
