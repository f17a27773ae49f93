package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType mirrors domain.EntryType at the persistence layer.
type EntryType string

const (
	Credit EntryType = "credit"
	Debit  EntryType = "debit"
)

// Statement is the DB-facing representation of a statement row.
// Note: Amount uses a precise decimal type; the column is NUMERIC.
type Statement struct {
	StatementID string          `db:"statement_id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	EntryType   EntryType       `db:"entry_type"`
	CreatedAt   time.Time       `db:"created_at"`
}
