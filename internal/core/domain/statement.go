package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType indicates whether a statement entry adds or removes funds.
type EntryType string

const (
	Credit EntryType = "credit"
	Debit  EntryType = "debit"
)

// Statement represents a single immutable ledger entry against a checking
// account. Entries are append-only: once persisted they are never updated
// or deleted, and the account balance is always derived from them.
type Statement struct {
	StatementID string          `json:"statementID"` // Primary Key (UUID)
	AccountID   string          `json:"accountID"`   // FK -> CheckingAccount.AccountID (Not Null)
	Amount      decimal.Decimal `json:"amount"`      // Always positive; sign of effect carried by EntryType
	Description string          `json:"description"` // Non-empty; pix/ted entries carry a "PIX - "/"TED - " prefix
	EntryType   EntryType       `json:"entryType"`   // credit or debit (Not Null)
	CreatedAt   time.Time       `json:"createdAt"`   // Assignment timestamp, used for ordering and period queries
}
