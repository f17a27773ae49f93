package models

import "time"

// CheckingAccount is the DB-facing representation of a checking account row.
type CheckingAccount struct {
	AccountID     string    `db:"account_id"`
	Name          string    `db:"name"`
	Email         string    `db:"email"`
	Number        string    `db:"number"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
