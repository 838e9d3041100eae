package domain

// AccountID is the fixed primary key of the single managed account
const AccountID uint = 1

// Account Model
type Account struct {
	ID      uint  `gorm:"primaryKey"` // Primary key (always AccountID)
	Balance int64 `gorm:"not null"`   // Balance in smallest currency units, never negative
}
