package api

import (
	"net/http"                        // HTTP status codes
	"seamless_wallet/internal/utils"  // Redis cache helpers
	"seamless_wallet/internal/wallet" // Wallet operation engine
	"time"                            // Timestamps for operation logs

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// AmountRequest carries the amount field of bet and settlement calls.
// No binding tag: a missing or malformed body decodes to amount 0 and is
// rejected by engine validation as a normal code-1 response, keeping the
// operator-facing contract free of HTTP-level errors.
type AmountRequest struct {
	Amount int64 `json:"amount"` // Operation amount in smallest currency units
}

// BalanceData is the data envelope of every seamless response
type BalanceData struct {
	Balance int64 `json:"balance"` // Balance after the operation
}

// SeamlessResponse is the wire shape shared by all four operations
type SeamlessResponse struct {
	Code    int         `json:"code"`              // 0 on success, 1 on validation failure
	Message string      `json:"message,omitempty"` // Reason, present only on validation failure
	Data    BalanceData `json:"data"`              // Balance envelope
}

// toResponse maps an engine result onto the wire shape
func toResponse(res wallet.Result) SeamlessResponse {
	return SeamlessResponse{
		Code:    res.Code,                       // Response code
		Message: res.Message,                    // Validation message, if any
		Data:    BalanceData{Balance: res.Balance}, // Post-operation balance
	}
}

// logOperation writes the per-operation request/response log entries
func logOperation(op string, payload any, resp SeamlessResponse) {
	// Log the inbound request payload
	logrus.WithFields(logrus.Fields{
		"request":   payload,                         // Decoded request payload
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Seamless API - " + op + " Request")
	// Log the outbound response payload
	logrus.WithFields(logrus.Fields{
		"response":  resp,                            // Encoded response payload
		"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
	}).Info("Seamless API - " + op + " Response")
}

// GetBalanceHandler returns the current balance without mutating it
func GetBalanceHandler(engine *wallet.Engine, rdb *redis.Client) gin.HandlerFunc {
	return balanceQueryHandler("GetBalance", engine, rdb)
}

// CancelHandler returns the current balance unchanged; the protocol carries
// no transaction reference, so cancel behaves exactly like getBalance
func CancelHandler(engine *wallet.Engine, rdb *redis.Client) gin.HandlerFunc {
	return balanceQueryHandler("Cancel", engine, rdb)
}

// balanceQueryHandler serves the two pure read operations, preferring the
// cached balance when one is present
func balanceQueryHandler(op string, engine *wallet.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Serve from cache when available; the cache only ever holds the
		// last committed value, so reads stay consistent
		if rdb != nil {
			if balance, found, err := utils.GetCachedBalance(c.Request.Context(), rdb); err == nil && found {
				resp := SeamlessResponse{Code: wallet.CodeOK, Data: BalanceData{Balance: balance}}
				logOperation(op, gin.H{}, resp) // Log request and response
				c.JSON(http.StatusOK, resp)     // Return the cached balance
				return
			}
		}
		res, err := engine.GetBalance(c.Request.Context()) // Read through the store
		// Handle storage failure
		if err != nil {
			storageFailure(c, op, err) // Surface as a server error
			return
		}
		// Cache the committed balance for subsequent reads
		if rdb != nil {
			_ = utils.SetCachedBalance(c.Request.Context(), rdb, res.Balance)
		}
		resp := toResponse(res)     // Map onto the wire shape
		logOperation(op, gin.H{}, resp) // Log request and response
		c.JSON(http.StatusOK, resp) // Return the balance
	}
}

// BetHandler debits a bet amount from the balance
func BetHandler(engine *wallet.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AmountRequest        // Bind JSON request to struct
		_ = c.ShouldBindJSON(&req)   // Tolerate malformed bodies: amount stays 0
		res, err := engine.Bet(c.Request.Context(), req.Amount) // Execute the bet
		// Handle storage failure
		if err != nil {
			storageFailure(c, "Bet", err) // Surface as a server error
			return
		}
		// Drop the cached balance after a successful debit
		if rdb != nil && res.Code == wallet.CodeOK {
			_ = utils.InvalidateBalanceCache(c.Request.Context(), rdb)
		}
		resp := toResponse(res)       // Map onto the wire shape
		logOperation("Bet", req, resp) // Log request and response
		c.JSON(http.StatusOK, resp)   // Validation failures are still HTTP 200
	}
}

// SettlementHandler credits a settlement amount to the balance
func SettlementHandler(engine *wallet.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AmountRequest      // Bind JSON request to struct
		_ = c.ShouldBindJSON(&req) // Tolerate malformed bodies: amount stays 0
		res, err := engine.Settlement(c.Request.Context(), req.Amount) // Execute the settlement
		// Handle storage failure
		if err != nil {
			storageFailure(c, "Settlement", err) // Surface as a server error
			return
		}
		// Drop the cached balance after a successful credit
		if rdb != nil && res.Code == wallet.CodeOK {
			_ = utils.InvalidateBalanceCache(c.Request.Context(), rdb)
		}
		resp := toResponse(res)              // Map onto the wire shape
		logOperation("Settlement", req, resp) // Log request and response
		c.JSON(http.StatusOK, resp)          // Validation failures are still HTTP 200
	}
}

// storageFailure reports an unavailable store as a server error
func storageFailure(c *gin.Context, op string, err error) {
	// Log the failure with context
	logrus.WithFields(logrus.Fields{
		"operation": op,          // Failing operation
		"error":     err.Error(), // Error message
	}).Error("Storage unavailable") // Log storage failure
	// Storage failures are never reported as code-1 responses
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage unavailable"})
}
