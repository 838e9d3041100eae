package store

import (
	"context"                        // Context for storage operations
	"seamless_wallet/internal/domain" // Importing domain models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Clauses for conflict handling
)

// MySQLStore persists the account balance in a single MySQL row via GORM
type MySQLStore struct {
	db   *gorm.DB // Database handle
	seed int64    // Seed balance for lazy account creation
}

// NewMySQLStore creates a MySQL-backed balance store
func NewMySQLStore(db *gorm.DB, seed int64) *MySQLStore {
	return &MySQLStore{db: db, seed: seed} // Return the store instance
}

// ensureAccount lazily creates the account row with the seed balance.
// The insert is guarded by ON CONFLICT DO NOTHING so exactly one seed
// insert wins if multiple callers race on first access.
func (s *MySQLStore) ensureAccount(tx *gorm.DB) error {
	account := domain.Account{ID: domain.AccountID, Balance: s.seed} // Seed row
	// Insert only if the row does not exist yet
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&account).Error
}

// Read returns the current balance without side effects on it
func (s *MySQLStore) Read(ctx context.Context) (int64, error) {
	db := s.db.WithContext(ctx) // Bind the request context
	// Make sure the account row exists before reading it
	if err := s.ensureAccount(db); err != nil {
		return 0, err // Propagate storage failure
	}
	var account domain.Account // Account struct to hold data
	// Fetch the single account row
	if err := db.First(&account, domain.AccountID).Error; err != nil {
		return 0, err // Propagate storage failure
	}
	return account.Balance, nil // Return the current balance
}

// ApplyDelta atomically adds delta to the balance and returns the new value
func (s *MySQLStore) ApplyDelta(ctx context.Context, delta int64) (int64, error) {
	var balance int64 // New balance observed inside the transaction
	// Run the read-modify-write as one database transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Make sure the account row exists before updating it
		if err := s.ensureAccount(tx); err != nil {
			return err // Return error to rollback
		}
		// Apply the delta in place; the row lock serializes concurrent writers
		if err := tx.Model(&domain.Account{}).
			Where("id = ?", domain.AccountID).
			Update("balance", gorm.Expr("balance + ?", delta)).Error; err != nil {
			return err // Return error to rollback
		}
		var account domain.Account // Account struct to hold data
		// Read the post-update balance inside the same transaction
		if err := tx.First(&account, domain.AccountID).Error; err != nil {
			return err // Return error to rollback
		}
		balance = account.Balance // Capture the new balance
		return nil                // Commit transaction
	})
	// Handle transaction result
	if err != nil {
		return 0, err // Propagate storage failure
	}
	return balance, nil // Return the new balance
}

// DebitIf atomically subtracts amount only when balance >= amount.
// The check and the debit happen in one conditional UPDATE, so two
// concurrent debits can never both pass against a stale balance.
func (s *MySQLStore) DebitIf(ctx context.Context, amount int64) (int64, error) {
	var balance int64 // New balance observed inside the transaction
	// Run the conditional debit as one database transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Make sure the account row exists before updating it
		if err := s.ensureAccount(tx); err != nil {
			return err // Return error to rollback
		}
		// Debit only if the current balance covers the amount
		res := tx.Model(&domain.Account{}).
			Where("id = ? AND balance >= ?", domain.AccountID, amount).
			Update("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error // Return error to rollback
		}
		// No row matched: the balance was below the amount
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance // Reject the debit
		}
		var account domain.Account // Account struct to hold data
		// Read the post-debit balance inside the same transaction
		if err := tx.First(&account, domain.AccountID).Error; err != nil {
			return err // Return error to rollback
		}
		balance = account.Balance // Capture the new balance
		return nil                // Commit transaction
	})
	// Handle transaction result
	if err != nil {
		return 0, err // Propagate insufficient balance or storage failure
	}
	return balance, nil // Return the new balance
}

// Reset sets the balance back to the seed value and returns it
func (s *MySQLStore) Reset(ctx context.Context) (int64, error) {
	// Run the reset as one database transaction
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Make sure the account row exists before updating it
		if err := s.ensureAccount(tx); err != nil {
			return err // Return error to rollback
		}
		// Overwrite the balance with the seed value
		return tx.Model(&domain.Account{}).
			Where("id = ?", domain.AccountID).
			Update("balance", s.seed).Error
	})
	// Handle transaction result
	if err != nil {
		return 0, err // Propagate storage failure
	}
	return s.seed, nil // The balance is now exactly the seed
}

// Compile-time interface check
var _ BalanceStore = (*MySQLStore)(nil)
