package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaflux/checking_account_api/internal/apperrors"
	"github.com/contaflux/checking_account_api/internal/core/domain"
	portsrepo "github.com/contaflux/checking_account_api/internal/core/ports/repositories"
	portssvc "github.com/contaflux/checking_account_api/internal/core/ports/services"
	"github.com/contaflux/checking_account_api/internal/middleware"
)

var (
	// ErrInvalidAmount is returned when a movement amount is zero or negative.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)

	// ErrInvalidDescription is returned when a movement description is empty after trimming.
	ErrInvalidDescription = fmt.Errorf("%w: description must not be empty", apperrors.ErrValidation)

	// ErrInvalidDateRange is returned when a period bound fails to parse as a timestamp.
	ErrInvalidDateRange = fmt.Errorf("%w: invalid date range", apperrors.ErrValidation)

	// ErrInsufficientFunds is returned when a debit would exceed the current balance.
	ErrInsufficientFunds = apperrors.ErrInsufficientFunds
)

const (
	pixPrefix = "PIX - "
	tedPrefix = "TED - "
)

// statementService implements the ledger engine: it creates credit and debit
// entries against the append-only statement store and derives balances from
// the stored history. The service itself holds no account state; all mutable
// state lives in the repository.
type statementService struct {
	statementRepo portsrepo.StatementRepositoryFacade
	locker        *accountLocker
}

// NewStatementService creates a new statement service.
func NewStatementService(statementRepo portsrepo.StatementRepositoryFacade) portssvc.StatementSvcFacade {
	return &statementService{
		statementRepo: statementRepo,
		locker:        newAccountLocker(),
	}
}

// Ensure statementService implements the portssvc.StatementSvcFacade interface
var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// validateMovement applies the shared input rules of every movement operation.
func validateMovement(amount decimal.Decimal, description string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(description) == "" {
		return ErrInvalidDescription
	}
	return nil
}

// Deposit appends a credit entry. Credits need no balance check.
func (s *statementService) Deposit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateMovement(amount, description); err != nil {
		return nil, err
	}

	statement := domain.Statement{
		StatementID: uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
		EntryType:   domain.Credit,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.statementRepo.SaveStatement(ctx, statement); err != nil {
		logger.Error("Failed to save deposit entry", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save deposit: %w", err)
	}

	logger.Info("Deposit created", slog.String("account_id", accountID), slog.String("statement_id", statement.StatementID))
	return &statement, nil
}

// Withdraw appends a plain debit entry.
func (s *statementService) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
	return s.createDebit(ctx, accountID, amount, description)
}

// Pix appends a debit entry tagged with the PIX prefix.
func (s *statementService) Pix(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
	if err := validateMovement(amount, description); err != nil {
		return nil, err
	}
	return s.createDebit(ctx, accountID, amount, pixPrefix+description)
}

// Ted appends a debit entry tagged with the TED prefix.
func (s *statementService) Ted(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
	if err := validateMovement(amount, description); err != nil {
		return nil, err
	}
	return s.createDebit(ctx, accountID, amount, tedPrefix+description)
}

// createDebit is the shared debit procedure: validate, read the current
// balance, apply the overdraft rule, append. The per-account lock makes the
// read-then-write pair behave as if serialized, so two concurrent debits can
// never both pass the balance check and overdraw the account. Deposits and
// reads deliberately take no lock.
func (s *statementService) createDebit(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateMovement(amount, description); err != nil {
		return nil, err
	}

	lock := s.locker.lockFor(accountID)
	lock.Lock()
	defer lock.Unlock()

	balance, err := s.GetBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(balance) {
		logger.Warn("Debit rejected: insufficient funds",
			slog.String("account_id", accountID),
			slog.String("amount", amount.String()),
			slog.String("balance", balance.String()),
		)
		return nil, ErrInsufficientFunds
	}

	statement := domain.Statement{
		StatementID: uuid.NewString(),
		AccountID:   accountID,
		Amount:      amount,
		Description: description,
		EntryType:   domain.Debit,
		CreatedAt:   time.Now().UTC(),
	}

	// A failed append is surfaced as-is and never retried here: statement
	// writes are not idempotent and a blind retry could double-post.
	if err := s.statementRepo.SaveStatement(ctx, statement); err != nil {
		logger.Error("Failed to save debit entry", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save debit: %w", err)
	}

	logger.Info("Debit created", slog.String("account_id", accountID), slog.String("statement_id", statement.StatementID))
	return &statement, nil
}

// GetBalance folds the account's full history starting at zero: credits add,
// debits subtract. The balance is always derived, never stored.
func (s *statementService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	statements, err := s.statementRepo.FindStatementsByAccountID(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load statements for balance: %w", err)
	}

	balance := decimal.Zero
	for _, st := range statements {
		if st.EntryType == domain.Credit {
			balance = balance.Add(st.Amount)
		} else {
			balance = balance.Sub(st.Amount)
		}
	}
	return balance, nil
}

// GetAll retrieves the account's full history, most recent first.
func (s *statementService) GetAll(ctx context.Context, accountID string) ([]domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	statements, err := s.statementRepo.FindStatementsByAccountID(ctx, accountID)
	if err != nil {
		logger.Error("Failed to list statements", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list statements: %w", err)
	}

	if statements == nil {
		return []domain.Statement{}, nil
	}
	return statements, nil
}

// GetByPeriod retrieves the entries created within [start, end] inclusive.
// An empty result is a valid outcome, not an error.
func (s *statementService) GetByPeriod(ctx context.Context, accountID string, start, end time.Time) ([]domain.Statement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if start.IsZero() || end.IsZero() {
		return nil, ErrInvalidDateRange
	}

	statements, err := s.statementRepo.FindStatementsByPeriod(ctx, accountID, start, end)
	if err != nil {
		logger.Error("Failed to list statements by period", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list statements by period: %w", err)
	}

	if statements == nil {
		return []domain.Statement{}, nil
	}
	return statements, nil
}
