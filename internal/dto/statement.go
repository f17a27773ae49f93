package dto

import (
	"time"

	"github.com/contaflux/checking_account_api/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRequest defines the body shared by deposit, withdraw, pix and ted.
// Amount positivity and description content are enforced by the service so the
// rules hold for every caller, not only the HTTP surface.
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Description string          `json:"description" binding:"required"`
}

// StatementResponse defines the data returned for a single ledger entry.
type StatementResponse struct {
	StatementID string          `json:"statementID"`
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	EntryType   string          `json:"entryType"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListStatementsResponse wraps a list of ledger entries.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// PeriodParams defines the query parameters of the period statement endpoint.
// Bounds are kept as raw strings; the handler parses and validates them.
type PeriodParams struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

// ToStatementResponse converts a domain.Statement to its response DTO.
func ToStatementResponse(s *domain.Statement) StatementResponse {
	return StatementResponse{
		StatementID: s.StatementID,
		AccountID:   s.AccountID,
		Amount:      s.Amount,
		Description: s.Description,
		EntryType:   string(s.EntryType),
		CreatedAt:   s.CreatedAt,
	}
}

// ToStatementResponses converts a slice of domain statements to response DTOs.
func ToStatementResponses(statements []domain.Statement) []StatementResponse {
	res := make([]StatementResponse, len(statements))
	for i, s := range statements {
		res[i] = ToStatementResponse(&s)
	}
	return res
}
