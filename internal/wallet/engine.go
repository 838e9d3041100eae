package wallet

import (
	"context"                        // Context for store operations
	"errors"                         // Error inspection
	"seamless_wallet/internal/store" // Balance store interface

	"github.com/sirupsen/logrus" // Logging library
)

// Response codes used by the seamless wallet protocol
const (
	CodeOK              = 0 // Operation applied (or read) successfully
	CodeValidationError = 1 // Invalid amount or insufficient balance
)

// Messages returned alongside CodeValidationError
const (
	MsgInvalidBet        = "Invalid bet amount or insufficient balance" // Bet rejection message
	MsgInvalidSettlement = "Invalid settlement amount"                  // Settlement rejection message
)

// Result is the outcome of a wallet operation
type Result struct {
	Code    int    // CodeOK or CodeValidationError
	Message string // Human-readable reason, set only on validation failure
	Balance int64  // Balance after the operation (unchanged on failure)
}

// Engine validates and executes the four seamless wallet operations
// against the injected balance store. It holds no state of its own;
// every operation is a transition over the stored balance.
type Engine struct {
	store store.BalanceStore // The single atomic choke point for the balance
}

// NewEngine creates a wallet engine on top of the given balance store
func NewEngine(s store.BalanceStore) *Engine {
	return &Engine{store: s} // Return the engine instance
}

// GetBalance returns the current balance without mutating it
func (e *Engine) GetBalance(ctx context.Context) (Result, error) {
	balance, err := e.store.Read(ctx) // Read the current balance
	if err != nil {
		return Result{}, err // Propagate storage failure
	}
	return Result{Code: CodeOK, Balance: balance}, nil // Return the balance
}

// Cancel returns the current balance unchanged. The protocol carries no
// transaction reference to reverse against, so cancel is a balance query.
func (e *Engine) Cancel(ctx context.Context) (Result, error) {
	return e.GetBalance(ctx) // Same behavior as GetBalance
}

// Bet debits amount from the balance. The amount must be positive and
// covered by the current balance; the funds check and the debit happen in
// one atomic store step so concurrent bets can never overdraw the account.
func (e *Engine) Bet(ctx context.Context, amount int64) (Result, error) {
	// Reject non-positive amounts without touching the balance
	if amount <= 0 {
		return e.rejected(ctx, MsgInvalidBet)
	}
	// Attempt the atomic conditional debit
	balance, err := e.store.DebitIf(ctx, amount)
	// The balance did not cover the amount (possibly lost a race to a
	// concurrent bet); report the freshest observable balance unchanged
	if errors.Is(err, store.ErrInsufficientBalance) {
		logrus.WithFields(logrus.Fields{
			"amount": amount,      // Rejected bet amount
			"reason": err.Error(), // Rejection reason
		}).Info("Bet rejected") // Log the rejection
		return e.rejected(ctx, MsgInvalidBet)
	}
	// Handle storage failure
	if err != nil {
		return Result{}, err // Propagate storage failure
	}
	return Result{Code: CodeOK, Balance: balance}, nil // Return the new balance
}

// Settlement credits amount to the balance. The amount must be positive;
// there is no upper bound on the credit.
func (e *Engine) Settlement(ctx context.Context, amount int64) (Result, error) {
	// Reject non-positive amounts without touching the balance
	if amount <= 0 {
		return e.rejected(ctx, MsgInvalidSettlement)
	}
	// Apply the credit atomically
	balance, err := e.store.ApplyDelta(ctx, amount)
	if err != nil {
		return Result{}, err // Propagate storage failure
	}
	return Result{Code: CodeOK, Balance: balance}, nil // Return the new balance
}

// rejected builds a validation-failure result carrying the current balance
func (e *Engine) rejected(ctx context.Context, message string) (Result, error) {
	balance, err := e.store.Read(ctx) // Read the unchanged balance
	if err != nil {
		return Result{}, err // Propagate storage failure
	}
	// Validation failures are normal responses, not errors
	return Result{Code: CodeValidationError, Message: message, Balance: balance}, nil
}
