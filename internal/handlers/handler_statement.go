package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/contaflux/checking_account_api/internal/apperrors"
	"github.com/contaflux/checking_account_api/internal/core/domain"
	portssvc "github.com/contaflux/checking_account_api/internal/core/ports/services"
	"github.com/contaflux/checking_account_api/internal/core/services"
	"github.com/contaflux/checking_account_api/internal/dto"
	"github.com/contaflux/checking_account_api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// statementHandler handles the ledger endpoints of a checking account.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// newStatementHandler creates a new statementHandler.
func newStatementHandler(ss portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{statementService: ss}
}

// registerStatementRoutes registers the movement and statement routes.
// Every route verifies the target account exists before the ledger runs;
// the ledger engine itself does not check existence.
func registerStatementRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, statementService portssvc.StatementSvcFacade) {
	h := newStatementHandler(statementService)

	account := rg.Group("/accounts/:id", middleware.VerifyAccountExists(accountService))
	{
		account.POST("/deposit", h.deposit)
		account.POST("/withdraw", h.withdraw)
		account.POST("/pix", h.pix)
		account.POST("/ted", h.ted)
		account.GET("/statement", h.getStatement)
		account.GET("/statement/period", h.getStatementByPeriod)
		account.GET("/balance", h.getBalance)
	}
}

// movementFunc is the shared signature of the four movement operations.
type movementFunc func(ctx *gin.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error)

// handleMovement binds the shared request body, invokes the operation and
// translates the ledger's error taxonomy into HTTP statuses.
func (h *statementHandler) handleMovement(c *gin.Context, operation string, fn movementFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for movement", slog.String("operation", operation), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	statement, err := fn(c, accountID, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Movement rejected by validation", slog.String("operation", operation), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Checking account not found"})
		default:
			logger.Error("Movement failed", slog.String("operation", operation), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create " + operation})
		}
		return
	}

	logger.Info("Movement created",
		slog.String("operation", operation),
		slog.String("account_id", accountID),
		slog.String("statement_id", statement.StatementID),
	)
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement))
}

// deposit godoc
// @Summary Deposit into a checking account
// @Description Creates a credit entry for the account
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   movement body dto.TransactionRequest true "Amount and description"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid amount or description"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create deposit"
// @Router /accounts/{id}/deposit [post]
func (h *statementHandler) deposit(c *gin.Context) {
	h.handleMovement(c, "deposit", func(ctx *gin.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
		return h.statementService.Deposit(ctx.Request.Context(), accountID, amount, description)
	})
}

// withdraw godoc
// @Summary Withdraw from a checking account
// @Description Creates a debit entry, rejected when funds are insufficient
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   movement body dto.TransactionRequest true "Amount and description"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient funds"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create withdraw"
// @Router /accounts/{id}/withdraw [post]
func (h *statementHandler) withdraw(c *gin.Context) {
	h.handleMovement(c, "withdraw", func(ctx *gin.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
		return h.statementService.Withdraw(ctx.Request.Context(), accountID, amount, description)
	})
}

// pix godoc
// @Summary Make a PIX transfer from a checking account
// @Description Creates a debit entry whose description is tagged with "PIX - "
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   movement body dto.TransactionRequest true "Amount and description"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient funds"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create pix"
// @Router /accounts/{id}/pix [post]
func (h *statementHandler) pix(c *gin.Context) {
	h.handleMovement(c, "pix", func(ctx *gin.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
		return h.statementService.Pix(ctx.Request.Context(), accountID, amount, description)
	})
}

// ted godoc
// @Summary Make a TED transfer from a checking account
// @Description Creates a debit entry whose description is tagged with "TED - "
// @Tags statements
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   movement body dto.TransactionRequest true "Amount and description"
// @Success 201 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient funds"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create ted"
// @Router /accounts/{id}/ted [post]
func (h *statementHandler) ted(c *gin.Context) {
	h.handleMovement(c, "ted", func(ctx *gin.Context, accountID string, amount decimal.Decimal, description string) (*domain.Statement, error) {
		return h.statementService.Ted(ctx.Request.Context(), accountID, amount, description)
	})
}

// getStatement godoc
// @Summary Get the full statement of a checking account
// @Description Retrieves every ledger entry for the account, most recent first
// @Tags statements
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.ListStatementsResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve statement"
// @Router /accounts/{id}/statement [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	statements, err := h.statementService.GetAll(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to get statement", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ListStatementsResponse{Statements: dto.ToStatementResponses(statements)})
}

// getStatementByPeriod godoc
// @Summary Get a checking account statement for a period
// @Description Retrieves the ledger entries created within [startDate, endDate] inclusive
// @Tags statements
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   startDate query string true "Period start (RFC3339 or YYYY-MM-DD)"
// @Param   endDate query string true "Period end (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} dto.ListStatementsResponse
// @Failure 400 {object} map[string]string "Missing or unparseable period bounds"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve statement"
// @Router /accounts/{id}/statement/period [get]
func (h *statementHandler) getStatementByPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var params dto.PeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start date and end date are required"})
		return
	}

	start, err := parsePeriodBound(params.StartDate)
	if err != nil {
		logger.Warn("Invalid period start", slog.String("start_date", params.StartDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidDateRange.Error()})
		return
	}
	end, err := parsePeriodBound(params.EndDate)
	if err != nil {
		logger.Warn("Invalid period end", slog.String("end_date", params.EndDate))
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidDateRange.Error()})
		return
	}

	statements, err := h.statementService.GetByPeriod(c.Request.Context(), accountID, start, end)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to get statement by period", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve statement"})
		return
	}

	c.JSON(http.StatusOK, dto.ListStatementsResponse{Statements: dto.ToStatementResponses(statements)})
}

// getBalance godoc
// @Summary Get the balance of a checking account
// @Description Returns the balance derived from the account's full movement history
// @Tags statements
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve balance"
// @Router /accounts/{id}/balance [get]
func (h *statementHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	balance, err := h.statementService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to get balance", slog.String("account_id", accountID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{AccountID: accountID, Balance: balance})
}

// parsePeriodBound accepts an RFC3339 timestamp or a plain date.
func parsePeriodBound(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
