package domain

// Operator Model
type Operator struct {
	ID       uint   `gorm:"primaryKey"`       // Primary key
	Username string `gorm:"unique;not null"`  // Unique username
	Password string `gorm:"not null"`         // Hashed password
	Role     string `gorm:"default:operator"` // Role: operator or admin
}
