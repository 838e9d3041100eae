package store

import (
	"context" // Context for storage operations
	"sync"    // Mutex for the critical section
)

// MemoryStore keeps the account balance in process memory behind a mutex.
// It is used for local runs and tests where the balance does not need to
// survive a restart; the store must then never be shared across processes.
type MemoryStore struct {
	mu      sync.Mutex // Protects the balance
	balance int64      // Current balance
	seed    int64      // Seed balance for Reset
}

// NewMemoryStore creates an in-memory balance store seeded with the given value
func NewMemoryStore(seed int64) *MemoryStore {
	return &MemoryStore{balance: seed, seed: seed} // Seed the balance up front
}

// Read returns the current balance without side effects
func (s *MemoryStore) Read(ctx context.Context) (int64, error) {
	s.mu.Lock()         // Enter the critical section
	defer s.mu.Unlock() // Leave it on return
	return s.balance, nil
}

// ApplyDelta atomically adds delta to the balance and returns the new value
func (s *MemoryStore) ApplyDelta(ctx context.Context, delta int64) (int64, error) {
	s.mu.Lock()         // Enter the critical section
	defer s.mu.Unlock() // Leave it on return
	s.balance += delta  // Apply the delta in place
	return s.balance, nil
}

// DebitIf atomically subtracts amount only when balance >= amount.
// The funds check happens inside the same critical section as the debit.
func (s *MemoryStore) DebitIf(ctx context.Context, amount int64) (int64, error) {
	s.mu.Lock()         // Enter the critical section
	defer s.mu.Unlock() // Leave it on return
	// Reject the debit if the balance does not cover the amount
	if s.balance < amount {
		return 0, ErrInsufficientBalance
	}
	s.balance -= amount // Apply the debit
	return s.balance, nil
}

// Reset sets the balance back to the seed value and returns it
func (s *MemoryStore) Reset(ctx context.Context) (int64, error) {
	s.mu.Lock()         // Enter the critical section
	defer s.mu.Unlock() // Leave it on return
	s.balance = s.seed  // Restore the seed balance
	return s.balance, nil
}

// Compile-time interface check
var _ BalanceStore = (*MemoryStore)(nil)
