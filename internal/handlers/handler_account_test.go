package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contaflux/checking_account_api/internal/apperrors"
	"github.com/contaflux/checking_account_api/internal/core/domain"
	"github.com/contaflux/checking_account_api/internal/dto"
)

func setupAccountRouter(t *testing.T) (*gin.Engine, *MockAccountService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accountSvc := new(MockAccountService)
	r := gin.New()
	rg := r.Group("/api/v1")
	registerAccountRoutes(rg, accountSvc)
	return r, accountSvc
}

func TestCreateAccountReturnsCreated(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	now := time.Now().UTC()
	created := &domain.CheckingAccount{
		AccountID:     testAccountID,
		Name:          "Maria Silva",
		Email:         "maria@example.com",
		Number:        "0001-7",
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	accountSvc.On("CreateAccount", mock.Anything, dto.CreateAccountRequest{
		Name:   "Maria Silva",
		Email:  "maria@example.com",
		Number: "0001-7",
	}).Return(created, nil).Once()

	w := performJSON(r, http.MethodPost, "/api/v1/accounts",
		`{"name": "Maria Silva", "email": "maria@example.com", "number": "0001-7"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, testAccountID, resp.AccountID)
	assert.Equal(t, "Maria Silva", resp.Name)
	accountSvc.AssertExpectations(t)
}

func TestCreateAccountRejectsInvalidBody(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	for _, body := range []string{
		`{"email": "maria@example.com", "number": "0001-7"}`,
		`{"name": "Maria", "email": "not-an-email", "number": "0001-7"}`,
		`{"name": "Maria", "email": "maria@example.com"}`,
		`{`,
	} {
		w := performJSON(r, http.MethodPost, "/api/v1/accounts", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
	accountSvc.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

func TestCreateAccountDuplicateNumberConflicts(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	dupErr := fmt.Errorf("%w: account with number 0001-7 already exists", apperrors.ErrDuplicate)
	accountSvc.On("CreateAccount", mock.Anything, mock.Anything).Return(nil, dupErr).Once()

	w := performJSON(r, http.MethodPost, "/api/v1/accounts",
		`{"name": "Maria Silva", "email": "maria@example.com", "number": "0001-7"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestGetAccountNotFound(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	accountSvc.On("GetAccountByID", mock.Anything, "missing").Return(nil, apperrors.ErrNotFound).Once()

	w := performJSON(r, http.MethodGet, "/api/v1/accounts/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Checking account not found")
}

func TestListAccountsPassesQueryParams(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	accounts := []domain.CheckingAccount{{AccountID: "a1", Name: "Maria Silva"}}
	accountSvc.On("ListAccounts", mock.Anything, dto.ListAccountsParams{
		Name:   "maria",
		Limit:  5,
		Offset: 10,
	}).Return(accounts, nil).Once()

	w := performJSON(r, http.MethodGet, "/api/v1/accounts?name=maria&limit=5&offset=10", "")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.ListAccountsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Accounts, 1)
	assert.Equal(t, "Maria Silva", resp.Accounts[0].Name)
	accountSvc.AssertExpectations(t)
}

func TestListAccountsAppliesDefaults(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	accountSvc.On("ListAccounts", mock.Anything, dto.ListAccountsParams{
		Limit:  20,
		Offset: 0,
	}).Return([]domain.CheckingAccount{}, nil).Once()

	w := performJSON(r, http.MethodGet, "/api/v1/accounts", "")

	require.Equal(t, http.StatusOK, w.Code)
	accountSvc.AssertExpectations(t)
}

func TestUpdateAccount(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	updated := &domain.CheckingAccount{AccountID: testAccountID, Name: "New Name", Email: "new@example.com", Number: "0001-7"}
	accountSvc.On("UpdateAccount", mock.Anything, testAccountID, dto.UpdateAccountRequest{
		Name:   "New Name",
		Email:  "new@example.com",
		Number: "0001-7",
	}).Return(updated, nil).Once()

	w := performJSON(r, http.MethodPut, "/api/v1/accounts/"+testAccountID,
		`{"name": "New Name", "email": "new@example.com", "number": "0001-7"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "New Name", resp.Name)
}

func TestUpdateAccountNotFound(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	accountSvc.On("UpdateAccount", mock.Anything, "missing", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := performJSON(r, http.MethodPut, "/api/v1/accounts/missing",
		`{"name": "New Name", "email": "new@example.com", "number": "0001-7"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAccountReturnsNoContent(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	accountSvc.On("DeleteAccount", mock.Anything, testAccountID).Return(nil).Once()

	w := performJSON(r, http.MethodDelete, "/api/v1/accounts/"+testAccountID, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeleteAccountNotFound(t *testing.T) {
	r, accountSvc := setupAccountRouter(t)

	accountSvc.On("DeleteAccount", mock.Anything, "missing").Return(apperrors.ErrNotFound).Once()

	w := performJSON(r, http.MethodDelete, "/api/v1/accounts/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
