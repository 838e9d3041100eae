package db

import (
	"context"                         // Context for the seed insert
	"seamless_wallet/internal/domain" // Importing domain models
	"seamless_wallet/internal/store"  // Balance store for the race-safe seed

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema and seeds
// the single account row
func Migrate(dsn string, seedBalance int64) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.Account{}, &domain.Operator{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	// Seed the account through the store's race-safe lazy creation path
	if _, err := store.NewMySQLStore(db, seedBalance).Read(context.Background()); err != nil {
		logrus.Fatalf("account seeding failed: %v", err) // Log fatal error if seeding fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
