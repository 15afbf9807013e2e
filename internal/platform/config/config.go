package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// WalletSettings holds the monetary validation and locking knobs for the
// wallet ledger core.
type WalletSettings struct {
	DecimalPlaces       int32
	MinAmount           decimal.Decimal
	MaxAmount           decimal.Decimal
	SupportedCurrencies []string
	LockTimeout         time.Duration // statement timeout for mutating transactions
}

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	JWTIssuer     string
	RedisURL      string // optional; rate limiter falls back to an in-memory store
	RateLimit     string // ulule/limiter formatted rate, e.g. "100-M"
	Wallet        WalletSettings
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "wallet-backend")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("WALLET_DECIMAL_PLACES", 2)
	viper.SetDefault("WALLET_MIN_AMOUNT", "0.01")
	viper.SetDefault("WALLET_MAX_AMOUNT", "1000000")
	viper.SetDefault("WALLET_SUPPORTED_CURRENCIES", "USD,EUR,GBP,NGN,KES")
	viper.SetDefault("WALLET_LOCK_TIMEOUT", "5s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.Wallet.DecimalPlaces = viper.GetInt32("WALLET_DECIMAL_PLACES")

	minAmount, err := decimal.NewFromString(viper.GetString("WALLET_MIN_AMOUNT"))
	if err != nil {
		minAmount = decimal.RequireFromString("0.01")
		log.Printf("Warning: Invalid value for WALLET_MIN_AMOUNT. Defaulting to %s.\n", minAmount)
	}
	cfg.Wallet.MinAmount = minAmount

	maxAmount, err := decimal.NewFromString(viper.GetString("WALLET_MAX_AMOUNT"))
	if err != nil {
		maxAmount = decimal.NewFromInt(1000000)
		log.Printf("Warning: Invalid value for WALLET_MAX_AMOUNT. Defaulting to %s.\n", maxAmount)
	}
	cfg.Wallet.MaxAmount = maxAmount

	currencies := strings.Split(viper.GetString("WALLET_SUPPORTED_CURRENCIES"), ",")
	for i := range currencies {
		currencies[i] = strings.ToUpper(strings.TrimSpace(currencies[i]))
	}
	cfg.Wallet.SupportedCurrencies = currencies

	lockTimeoutStr := viper.GetString("WALLET_LOCK_TIMEOUT")
	lockTimeout, err := time.ParseDuration(lockTimeoutStr)
	if err != nil {
		lockTimeout = 5 * time.Second
		log.Printf("Warning: Invalid value for WALLET_LOCK_TIMEOUT ('%s'). Defaulting to %s.\n", lockTimeoutStr, lockTimeout)
	}
	cfg.Wallet.LockTimeout = lockTimeout

	return cfg, nil
}
