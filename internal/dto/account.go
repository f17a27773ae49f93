package dto

import (
	"time"

	"github.com/contaflux/checking_account_api/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new checking account.
type CreateAccountRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Number string `json:"number" binding:"required"`
}

// UpdateAccountRequest defines the data allowed when updating an account.
// All three fields are required, matching creation.
type UpdateAccountRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Number string `json:"number" binding:"required"`
}

// AccountResponse defines the data returned for a checking account.
type AccountResponse struct {
	AccountID     string    `json:"accountID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Number        string    `json:"number"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListAccountsParams defines query parameters for listing accounts.
// Name, when present, switches the listing to a case-insensitive name search.
type ListAccountsParams struct {
	Name   string `form:"name"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.CheckingAccount to its response DTO.
func ToAccountResponse(acc *domain.CheckingAccount) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Email:         acc.Email,
		Number:        acc.Number,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts to response DTOs.
func ToAccountResponses(accounts []domain.CheckingAccount) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
