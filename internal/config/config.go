package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// DefaultSeedBalance is the balance a freshly created account starts with,
// in smallest currency units
const DefaultSeedBalance int64 = 1000000

// Config holds the application configuration
type Config struct {
	AppPort      string // Application port
	DBUser       string // Database user
	DBPassword   string // Database password
	DBHost       string // Database host
	DBPort       string // Database port
	DBName       string // Database name
	JWTSecret    string // JWT secret key
	RedisAddr    string // Redis server address
	RedisPass    string // Redis password
	RedisDB      int    // Redis database number
	StoreDriver  string // Balance store driver: mysql or memory
	AuditLogPath string // Append-only request audit log file
	SeedBalance  int64  // Seed balance for the account
	IsProd       bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	// Seed balance defaults to DefaultSeedBalance unless overridden
	seedBalance := DefaultSeedBalance
	if v, err := strconv.ParseInt(os.Getenv("SEED_BALANCE"), 10, 64); err == nil && v > 0 {
		seedBalance = v // Override for integration rigs
	}
	// Audit log path defaults to the working directory
	auditLogPath := os.Getenv("AUDIT_LOG_PATH")
	if auditLogPath == "" {
		auditLogPath = "http_requests.log" // Default audit log file
	}
	// Store driver defaults to mysql
	storeDriver := os.Getenv("STORE_DRIVER")
	if storeDriver == "" {
		storeDriver = "mysql" // Default balance store driver
	}
	return &Config{
		AppPort:      os.Getenv("APP_PORT"),          // Application port
		DBUser:       os.Getenv("DB_USER"),           // Database user
		DBPassword:   os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:       os.Getenv("DB_HOST"),           // Database host
		DBPort:       os.Getenv("DB_PORT"),           // Database port
		DBName:       os.Getenv("DB_NAME"),           // Database name
		JWTSecret:    os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:    os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:    os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:      redisDB,                        // Redis database number
		StoreDriver:  storeDriver,                    // Balance store driver
		AuditLogPath: auditLogPath,                   // Audit log file path
		SeedBalance:  seedBalance,                    // Seed balance
		IsProd:       os.Getenv("IS_PROD") == "true", // Is production environment
	}
}
