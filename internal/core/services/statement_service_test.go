package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/contaflux/checking_account_api/internal/apperrors"
	"github.com/contaflux/checking_account_api/internal/core/domain"
	portsrepo "github.com/contaflux/checking_account_api/internal/core/ports/repositories"
	portssvc "github.com/contaflux/checking_account_api/internal/core/ports/services"
	"github.com/contaflux/checking_account_api/internal/core/services"
)

// --- Mock StatementRepository ---
type MockStatementRepository struct {
	mock.Mock
}

var _ portsrepo.StatementRepositoryFacade = (*MockStatementRepository)(nil)

func (m *MockStatementRepository) SaveStatement(ctx context.Context, statement domain.Statement) error {
	args := m.Called(ctx, statement)
	return args.Error(0)
}

func (m *MockStatementRepository) FindStatementsByAccountID(ctx context.Context, accountID string) ([]domain.Statement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Statement), args.Error(1)
}

func (m *MockStatementRepository) FindStatementsByPeriod(ctx context.Context, accountID string, start, end time.Time) ([]domain.Statement, error) {
	args := m.Called(ctx, accountID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Statement), args.Error(1)
}

// --- In-memory statement store ---
// fakeStatementStore backs the scenario tests with real append/read semantics
// so balances derive from an actual history. It mirrors the repository's
// ordering contract and is safe for concurrent use.
type fakeStatementStore struct {
	mu         sync.Mutex
	statements []domain.Statement
}

var _ portsrepo.StatementRepositoryFacade = (*fakeStatementStore)(nil)

func (f *fakeStatementStore) SaveStatement(_ context.Context, statement domain.Statement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statements = append(f.statements, statement)
	return nil
}

func (f *fakeStatementStore) FindStatementsByAccountID(_ context.Context, accountID string) ([]domain.Statement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Statement
	for _, st := range f.statements {
		if st.AccountID == accountID {
			out = append(out, st)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStatementStore) FindStatementsByPeriod(_ context.Context, accountID string, start, end time.Time) ([]domain.Statement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Statement
	for _, st := range f.statements {
		if st.AccountID != accountID {
			continue
		}
		if st.CreatedAt.Before(start) || st.CreatedAt.After(end) {
			continue
		}
		out = append(out, st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeStatementStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.statements)
}

// --- Suite ---
type StatementServiceTestSuite struct {
	suite.Suite
	store     *fakeStatementStore
	service   portssvc.StatementSvcFacade
	ctx       context.Context
	accountID string
}

func (s *StatementServiceTestSuite) SetupTest() {
	s.store = &fakeStatementStore{}
	s.service = services.NewStatementService(s.store)
	s.ctx = context.Background()
	s.accountID = "11111111-1111-1111-1111-111111111111"
}

func TestStatementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StatementServiceTestSuite))
}

func (s *StatementServiceTestSuite) deposit(amount string) {
	_, err := s.service.Deposit(s.ctx, s.accountID, decimal.RequireFromString(amount), "deposit")
	s.Require().NoError(err)
}

func (s *StatementServiceTestSuite) balance() decimal.Decimal {
	balance, err := s.service.GetBalance(s.ctx, s.accountID)
	s.Require().NoError(err)
	return balance
}

func (s *StatementServiceTestSuite) TestDepositCreatesCreditEntry() {
	st, err := s.service.Deposit(s.ctx, s.accountID, decimal.NewFromInt(100), "initial funding")
	s.Require().NoError(err)

	s.Equal(domain.Credit, st.EntryType)
	s.Equal("initial funding", st.Description)
	s.True(st.Amount.Equal(decimal.NewFromInt(100)))
	s.NotEmpty(st.StatementID)
	s.False(st.CreatedAt.IsZero())
}

func (s *StatementServiceTestSuite) TestBalanceEqualsSumOfDeposits() {
	s.deposit("10.50")
	s.deposit("20.25")
	s.deposit("0.25")

	s.True(s.balance().Equal(decimal.RequireFromString("31.00")))
}

func (s *StatementServiceTestSuite) TestBalanceIsZeroForEmptyHistory() {
	s.True(s.balance().IsZero())
}

func (s *StatementServiceTestSuite) TestNonPositiveAmountRejectedOnEveryOperation() {
	ops := map[string]func(decimal.Decimal) error{
		"deposit": func(a decimal.Decimal) error {
			_, err := s.service.Deposit(s.ctx, s.accountID, a, "desc")
			return err
		},
		"withdraw": func(a decimal.Decimal) error {
			_, err := s.service.Withdraw(s.ctx, s.accountID, a, "desc")
			return err
		},
		"pix": func(a decimal.Decimal) error {
			_, err := s.service.Pix(s.ctx, s.accountID, a, "desc")
			return err
		},
		"ted": func(a decimal.Decimal) error {
			_, err := s.service.Ted(s.ctx, s.accountID, a, "desc")
			return err
		},
	}

	for name, op := range ops {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			err := op(amount)
			s.ErrorIs(err, services.ErrInvalidAmount, "operation %s with amount %s", name, amount)
		}
	}
	s.Zero(s.store.count(), "no entry may be persisted for a rejected amount")
}

func (s *StatementServiceTestSuite) TestBlankDescriptionRejectedOnEveryOperation() {
	amount := decimal.NewFromInt(10)
	ops := []func(string) error{
		func(d string) error { _, err := s.service.Deposit(s.ctx, s.accountID, amount, d); return err },
		func(d string) error { _, err := s.service.Withdraw(s.ctx, s.accountID, amount, d); return err },
		func(d string) error { _, err := s.service.Pix(s.ctx, s.accountID, amount, d); return err },
		func(d string) error { _, err := s.service.Ted(s.ctx, s.accountID, amount, d); return err },
	}

	for i, op := range ops {
		s.ErrorIs(op(""), services.ErrInvalidDescription, "operation %d with empty description", i)
		s.ErrorIs(op("   "), services.ErrInvalidDescription, "operation %d with whitespace description", i)
	}
	s.Zero(s.store.count())
}

func (s *StatementServiceTestSuite) TestWithdrawExactBalanceSucceeds() {
	s.deposit("50")

	st, err := s.service.Withdraw(s.ctx, s.accountID, decimal.NewFromInt(50), "empty it out")
	s.Require().NoError(err)
	s.Equal(domain.Debit, st.EntryType)
	s.True(s.balance().IsZero())
}

func (s *StatementServiceTestSuite) TestWithdrawBeyondBalanceFailsAndLeavesHistoryUntouched() {
	s.deposit("50")
	before := s.store.count()

	_, err := s.service.Withdraw(s.ctx, s.accountID, decimal.RequireFromString("50.01"), "too much")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.Equal(before, s.store.count())
	s.True(s.balance().Equal(decimal.NewFromInt(50)))
}

func (s *StatementServiceTestSuite) TestWithdrawFromEmptyAccountFails() {
	_, err := s.service.Withdraw(s.ctx, s.accountID, decimal.NewFromInt(1), "anything")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
}

func (s *StatementServiceTestSuite) TestPixAndTedPrefixDescriptions() {
	s.deposit("100")

	pix, err := s.service.Pix(s.ctx, s.accountID, decimal.NewFromInt(10), "rent")
	s.Require().NoError(err)
	s.Equal("PIX - rent", pix.Description)
	s.Equal(domain.Debit, pix.EntryType)

	ted, err := s.service.Ted(s.ctx, s.accountID, decimal.NewFromInt(10), "car payment")
	s.Require().NoError(err)
	s.Equal("TED - car payment", ted.Description)
	s.Equal(domain.Debit, ted.EntryType)

	// Caller text resembling a tag is still prefixed, never deduplicated.
	pix2, err := s.service.Pix(s.ctx, s.accountID, decimal.NewFromInt(5), "PIX to mom")
	s.Require().NoError(err)
	s.Equal("PIX - PIX to mom", pix2.Description)
}

func (s *StatementServiceTestSuite) TestGetAllReturnsMostRecentFirst() {
	now := time.Now().UTC()
	for i, desc := range []string{"first", "second", "third"} {
		s.Require().NoError(s.store.SaveStatement(s.ctx, domain.Statement{
			StatementID: desc,
			AccountID:   s.accountID,
			Amount:      decimal.NewFromInt(1),
			Description: desc,
			EntryType:   domain.Credit,
			CreatedAt:   now.Add(time.Duration(i) * time.Minute),
		}))
	}

	statements, err := s.service.GetAll(s.ctx, s.accountID)
	s.Require().NoError(err)
	s.Require().Len(statements, 3)
	s.Equal("third", statements[0].Description)
	s.Equal("first", statements[2].Description)
}

func (s *StatementServiceTestSuite) TestGetByPeriodBoundsAreInclusive() {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{
		base.Add(-time.Hour), // before range
		base,                 // on start bound
		base.Add(time.Hour),  // inside
		base.Add(2 * time.Hour), // on end bound
		base.Add(3 * time.Hour), // after range
	}
	for i, ts := range times {
		s.Require().NoError(s.store.SaveStatement(s.ctx, domain.Statement{
			StatementID: string(rune('a' + i)),
			AccountID:   s.accountID,
			Amount:      decimal.NewFromInt(1),
			Description: "entry",
			EntryType:   domain.Credit,
			CreatedAt:   ts,
		}))
	}

	statements, err := s.service.GetByPeriod(s.ctx, s.accountID, base, base.Add(2*time.Hour))
	s.Require().NoError(err)
	s.Require().Len(statements, 3)
	s.Equal("b", statements[0].StatementID)
	s.Equal("d", statements[2].StatementID)
}

func (s *StatementServiceTestSuite) TestGetByPeriodEmptyRangeReturnsEmptySlice() {
	s.deposit("10")

	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	statements, err := s.service.GetByPeriod(s.ctx, s.accountID, start, start.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.NotNil(statements)
	s.Empty(statements)
}

func (s *StatementServiceTestSuite) TestRoundTripScenario() {
	s.deposit("100")
	s.True(s.balance().Equal(decimal.NewFromInt(100)))

	_, err := s.service.Withdraw(s.ctx, s.accountID, decimal.NewFromInt(30), "groceries")
	s.Require().NoError(err)
	s.True(s.balance().Equal(decimal.NewFromInt(70)))

	pix, err := s.service.Pix(s.ctx, s.accountID, decimal.NewFromInt(20), "rent")
	s.Require().NoError(err)
	s.Equal("PIX - rent", pix.Description)
	s.True(s.balance().Equal(decimal.NewFromInt(50)))

	_, err = s.service.Withdraw(s.ctx, s.accountID, decimal.NewFromInt(51), "overreach")
	s.ErrorIs(err, apperrors.ErrInsufficientFunds)
	s.True(s.balance().Equal(decimal.NewFromInt(50)))
}

func (s *StatementServiceTestSuite) TestConcurrentDebitsNeverOverdraw() {
	s.deposit("100")

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, rejected := 0, 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.Withdraw(s.ctx, s.accountID, decimal.NewFromInt(10), "concurrent withdraw")
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				s.ErrorIs(err, apperrors.ErrInsufficientFunds)
				rejected++
			} else {
				succeeded++
			}
		}()
	}
	wg.Wait()

	s.Equal(10, succeeded)
	s.Equal(10, rejected)
	s.True(s.balance().IsZero())
}

// Interaction-level tests use a testify mock to pin down what reaches storage.
func TestDepositPersistsUnmodifiedDescription(t *testing.T) {
	repo := new(MockStatementRepository)
	svc := services.NewStatementService(repo)

	repo.On("SaveStatement", mock.Anything, mock.MatchedBy(func(st domain.Statement) bool {
		return st.EntryType == domain.Credit && st.Description == "salary" && st.Amount.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()

	_, err := svc.Deposit(context.Background(), "acc-1", decimal.NewFromInt(100), "salary")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestDepositSurfacesStorageFailure(t *testing.T) {
	repo := new(MockStatementRepository)
	svc := services.NewStatementService(repo)

	errStorage := errors.New("connection reset")
	repo.On("SaveStatement", mock.Anything, mock.Anything).Return(errStorage).Once()

	_, err := svc.Deposit(context.Background(), "acc-1", decimal.NewFromInt(100), "salary")
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	repo.AssertExpectations(t)
}

func TestDebitDoesNotRetryFailedAppend(t *testing.T) {
	repo := new(MockStatementRepository)
	svc := services.NewStatementService(repo)

	history := []domain.Statement{{
		StatementID: "st-1",
		AccountID:   "acc-1",
		Amount:      decimal.NewFromInt(100),
		EntryType:   domain.Credit,
		CreatedAt:   time.Now().UTC(),
	}}
	errStorage := errors.New("write timeout")

	repo.On("FindStatementsByAccountID", mock.Anything, "acc-1").Return(history, nil).Once()
	repo.On("SaveStatement", mock.Anything, mock.Anything).Return(errStorage).Once()

	_, err := svc.Withdraw(context.Background(), "acc-1", decimal.NewFromInt(50), "bills")
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	repo.AssertNumberOfCalls(t, "SaveStatement", 1)
}

func TestBalanceReadFailurePreventsDebit(t *testing.T) {
	repo := new(MockStatementRepository)
	svc := services.NewStatementService(repo)

	errStorage := errors.New("read failed")
	repo.On("FindStatementsByAccountID", mock.Anything, "acc-1").Return(nil, errStorage).Once()

	_, err := svc.Withdraw(context.Background(), "acc-1", decimal.NewFromInt(10), "bills")
	require.Error(t, err)
	assert.ErrorIs(t, err, errStorage)
	repo.AssertNotCalled(t, "SaveStatement", mock.Anything, mock.Anything)
}
