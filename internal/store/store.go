package store

import (
	"context" // Context for storage operations
	"errors"  // Sentinel error values
)

// ErrInsufficientBalance is returned by DebitIf when the stored balance is
// smaller than the requested debit amount
var ErrInsufficientBalance = errors.New("insufficient balance")

// BalanceStore provides atomic access to the single account balance.
// All mutation of the balance goes through this interface; no caller may
// read-modify-write the balance outside of it.
type BalanceStore interface {
	// Read returns the current balance without side effects
	Read(ctx context.Context) (int64, error)
	// ApplyDelta atomically adds delta (positive or negative) to the balance
	// and returns the resulting value. It performs no domain validation.
	ApplyDelta(ctx context.Context, delta int64) (int64, error)
	// DebitIf atomically subtracts amount from the balance only if the
	// balance is at least amount, in a single indivisible step, and returns
	// the resulting value. Returns ErrInsufficientBalance when the check fails.
	DebitIf(ctx context.Context, amount int64) (int64, error)
	// Reset sets the balance back to the seed value and returns it
	Reset(ctx context.Context) (int64, error)
}
