package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/contaflux/checking_account_api/internal/apperrors"
	portssvc "github.com/contaflux/checking_account_api/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// VerifyAccountExists guards statement routes: the ledger engine itself does
// not check account existence, so the route rejects unknown accounts with 404
// before any ledger operation runs.
func VerifyAccountExists(accountSvc portssvc.AccountReaderSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.Param("id")

		if _, err := accountSvc.GetAccountByID(c.Request.Context(), accountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Checking account not found"})
				return
			}
			GetLoggerFromCtx(c.Request.Context()).Error("Failed to verify account existence", slog.String("account_id", accountID), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
			return
		}

		c.Next()
	}
}
