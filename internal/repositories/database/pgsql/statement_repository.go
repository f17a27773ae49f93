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

type PgxStatementRepository struct {
	BaseRepository
}

// newPgxStatementRepository creates a new repository for statement (ledger entry) data.
func newPgxStatementRepository(pool *pgxpool.Pool) portsrepo.StatementRepositoryFacade {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxStatementRepository implements portsrepo.StatementRepositoryFacade
var _ portsrepo.StatementRepositoryFacade = (*PgxStatementRepository)(nil)

// SaveStatement appends a new ledger entry. The table carries no update path;
// entries are immutable once inserted.
func (r *PgxStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	modelSt := mapping.ToModelStatement(statement)

	query := `
		INSERT INTO statements (statement_id, account_id, amount, description, entry_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelSt.StatementID,
		modelSt.AccountID,
		modelSt.Amount,
		modelSt.Description,
		modelSt.EntryType,
		modelSt.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: statement with ID %s already exists", apperrors.ErrDuplicate, modelSt.StatementID)
			}
			if pgErr.Code == "23503" { // Foreign key violation: account row gone
				return fmt.Errorf("%w: checking account %s", apperrors.ErrNotFound, modelSt.AccountID)
			}
		}
		return apperrors.NewAppError(500, "failed to save statement "+modelSt.StatementID, err)
	}
	return nil
}

// FindStatementsByAccountID retrieves every entry for the account, most recent first.
func (r *PgxStatementRepository) FindStatementsByAccountID(ctx context.Context, accountID string) ([]domain.Statement, error) {
	query := `
		SELECT statement_id, account_id, amount, description, entry_type, created_at
		FROM statements
		WHERE account_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query statements for account "+accountID, err)
	}
	defer rows.Close()

	return scanStatements(rows)
}

// FindStatementsByPeriod retrieves entries with created_at in [start, end]
// inclusive, oldest first for deterministic period listings.
func (r *PgxStatementRepository) FindStatementsByPeriod(ctx context.Context, accountID string, start, end time.Time) ([]domain.Statement, error) {
	query := `
		SELECT statement_id, account_id, amount, description, entry_type, created_at
		FROM statements
		WHERE account_id = $1
		  AND created_at >= $2
		  AND created_at <= $3
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query statements by period for account "+accountID, err)
	}
	defer rows.Close()

	return scanStatements(rows)
}

// scanStatements collects statement rows into domain statements.
func scanStatements(rows pgx.Rows) ([]domain.Statement, error) {
	statements := []models.Statement{}
	for rows.Next() {
		var m models.Statement
		if err := rows.Scan(
			&m.StatementID,
			&m.AccountID,
			&m.Amount,
			&m.Description,
			&m.EntryType,
			&m.CreatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan statement row", err)
		}
		statements = append(statements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate statement rows", err)
	}
	return mapping.ToDomainStatements(statements), nil
}
