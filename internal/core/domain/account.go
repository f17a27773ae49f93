package domain

import "time"

// CheckingAccount represents a customer checking account within the core domain.
// This is the primary representation used by services; statements reference it
// by AccountID only and never mutate it.
type CheckingAccount struct {
	AccountID     string    `json:"accountID"` // Primary Key (UUID)
	Name          string    `json:"name"`      // Account holder name
	Email         string    `json:"email"`     // Account holder email
	Number        string    `json:"number"`    // Customer-facing account number
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
