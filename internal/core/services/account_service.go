package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contaflux/checking_account_api/internal/apperrors"
	"github.com/contaflux/checking_account_api/internal/core/domain"
	portsrepo "github.com/contaflux/checking_account_api/internal/core/ports/repositories"
	portssvc "github.com/contaflux/checking_account_api/internal/core/ports/services"
	"github.com/contaflux/checking_account_api/internal/dto"
	"github.com/contaflux/checking_account_api/internal/middleware"
)

// accountService manages the checking account records that statements are
// posted against. Account failures are always reported as structured errors,
// never returned as ambiguous success values.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new checking account.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.CheckingAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateHolderDetails(req.Name, req.Email, req.Number); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.CheckingAccount{
		AccountID:     uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		Number:        strings.TrimSpace(req.Number),
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("account_id", account.AccountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves a specific account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.CheckingAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves accounts; a non-empty Name switches to a
// case-insensitive substring search ordered by name.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.CheckingAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var (
		accounts []domain.CheckingAccount
		err      error
	)
	if name := strings.TrimSpace(params.Name); name != "" {
		accounts, err = s.accountRepo.FindAccountsByName(ctx, name)
	} else {
		accounts, err = s.accountRepo.ListAccounts(ctx, params.Limit, params.Offset)
	}
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.CheckingAccount{}, nil
	}
	return accounts, nil
}

// UpdateAccount updates the holder details of an existing account.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.CheckingAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateHolderDetails(req.Name, req.Email, req.Number); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for update", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, err
	}

	now := time.Now().UTC()
	account.Name = strings.TrimSpace(req.Name)
	account.Email = strings.TrimSpace(req.Email)
	account.Number = strings.TrimSpace(req.Number)
	account.LastUpdatedAt = now

	if err := s.accountRepo.UpdateAccount(ctx, *account, now); err != nil {
		logger.Error("Failed to update account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account record.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}

// validateHolderDetails enforces the shared required-field rule of create and update.
func validateHolderDetails(name, email, number string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(number) == "" {
		return fmt.Errorf("%w: number is required", apperrors.ErrValidation)
	}
	return nil
}
