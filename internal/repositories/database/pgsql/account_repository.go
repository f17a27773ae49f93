package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/contaflux/checking_account_api/internal/apperrors"
	"github.com/contaflux/checking_account_api/internal/core/domain"
	portsrepo "github.com/contaflux/checking_account_api/internal/core/ports/repositories"
	"github.com/contaflux/checking_account_api/internal/models"
	"github.com/contaflux/checking_account_api/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for checking account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.CheckingAccount) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO checking_accounts (account_id, name, email, number, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Email,
		modelAcc.Number,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: account with number %s already exists", apperrors.ErrDuplicate, modelAcc.Number)
		}
		return apperrors.NewAppError(500, "failed to save account "+modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.CheckingAccount, error) {
	query := `
		SELECT account_id, name, email, number, created_at, last_updated_at
		FROM checking_accounts
		WHERE account_id = $1;
	`
	var modelAcc models.CheckingAccount
	err := r.Pool.QueryRow(ctx, query, accountID).Scan(
		&modelAcc.AccountID,
		&modelAcc.Name,
		&modelAcc.Email,
		&modelAcc.Number,
		&modelAcc.CreatedAt,
		&modelAcc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// ListAccounts retrieves a paginated list of accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.CheckingAccount, error) {
	query := `
		SELECT account_id, name, email, number, created_at, last_updated_at
		FROM checking_accounts
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// FindAccountsByName retrieves accounts whose name contains the fragment,
// case-insensitively, ordered by name ascending.
func (r *PgxAccountRepository) FindAccountsByName(ctx context.Context, name string) ([]domain.CheckingAccount, error) {
	query := `
		SELECT account_id, name, email, number, created_at, last_updated_at
		FROM checking_accounts
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, name)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to find accounts by name", err)
	}
	defer rows.Close()

	return scanAccounts(rows)
}

// UpdateAccount updates the mutable fields of an existing account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.CheckingAccount, updatedAt time.Time) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE checking_accounts
		SET name = $2, email = $3, number = $4, last_updated_at = $5
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Email,
		modelAcc.Number,
		updatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+modelAcc.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account row.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	query := `DELETE FROM checking_accounts WHERE account_id = $1;`

	tag, err := r.Pool.Exec(ctx, query, accountID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete account "+accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// scanAccounts collects account rows into domain accounts.
func scanAccounts(rows pgx.Rows) ([]domain.CheckingAccount, error) {
	accounts := []domain.CheckingAccount{}
	for rows.Next() {
		var m models.CheckingAccount
		if err := rows.Scan(
			&m.AccountID,
			&m.Name,
			&m.Email,
			&m.Number,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return accounts, nil
}
