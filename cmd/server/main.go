package main

import (
	"context"                             // context package is needed for Redis operations
	"log"                                 // log package is needed for logging
	"seamless_wallet/internal/api"        // Custom package for API handlers
	"seamless_wallet/internal/config"     // Custom package for configuration
	"seamless_wallet/internal/middleware" // Custom package for middleware
	"seamless_wallet/internal/store"      // Custom package for the balance store
	"seamless_wallet/internal/wallet"     // Custom package for the wallet engine

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Select the balance store; memory is for single-process local runs
	// where the balance does not need to survive a restart
	var balanceStore store.BalanceStore
	if cfg.StoreDriver == "memory" {
		balanceStore = store.NewMemoryStore(cfg.SeedBalance) // In-memory store
	} else {
		balanceStore = store.NewMySQLStore(db, cfg.SeedBalance) // MySQL-backed store
	}
	engine := wallet.NewEngine(balanceStore) // Wallet engine over the store

	// Setup the request auditor with its append-only log file
	auditor, err := middleware.NewAuditor(cfg.AuditLogPath)
	if err != nil {
		logrus.Fatalf("failed to open audit log: %v", err)
	}
	defer auditor.Close() // Release the log file on shutdown

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/operator", api.RegisterHandler(db))            // Registration endpoint
	r.GET("/operator", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Operator self-service routes (protected by JWT)
	operatorGroup := r.Group("/operator")
	operatorGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret)) // Protect with JWT middleware
	operatorGroup.GET("/me", api.MeHandler(db))                    // Operator info endpoint

	// Seamless wallet routes: every call is recorded by the auditor before
	// it reaches its handler
	seamlessGroup := r.Group("/seamless")
	seamlessGroup.Use(auditor.Middleware())
	seamlessGroup.GET("/getBalance", api.GetBalanceHandler(engine, redisClient))   // Balance query endpoint
	seamlessGroup.POST("/cancel", api.CancelHandler(engine, redisClient))          // Cancel endpoint
	seamlessGroup.POST("/bet", api.BetHandler(engine, redisClient))                // Bet endpoint
	seamlessGroup.POST("/settlement", api.SettlementHandler(engine, redisClient))  // Settlement endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/reset", api.ResetBalanceHandler(balanceStore, redisClient)) // Balance reset endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
