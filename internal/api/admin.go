package api

import (
	"net/http"                        // HTTP status codes
	"seamless_wallet/internal/store"  // Balance store interface
	"seamless_wallet/internal/utils"  // Redis cache helpers
	"seamless_wallet/internal/wallet" // Response codes
	"time"                            // Timestamps for logs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ResetBalanceHandler restores the balance to the seed value. Integration
// rigs call this between test runs to get a known starting state; the
// reset goes through the store's atomic path like every other mutation.
func ResetBalanceHandler(st store.BalanceStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		balance, err := st.Reset(c.Request.Context()) // Reset to the seed balance
		// Handle storage failure
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"error": err.Error(), // Error message
			}).Error("Balance reset failed") // Log reset failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage unavailable"})
			return
		}
		// Drop the cached balance after the reset
		if rdb != nil {
			_ = utils.InvalidateBalanceCache(c.Request.Context(), rdb)
		}
		// Log the successful reset
		logrus.WithFields(logrus.Fields{
			"balance":   balance,                         // Restored balance
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Balance reset") // Log reset success
		// Return the restored balance in the seamless wire shape
		c.JSON(http.StatusOK, SeamlessResponse{
			Code: wallet.CodeOK,                 // Success code
			Data: BalanceData{Balance: balance}, // Restored balance
		})
	}
}
