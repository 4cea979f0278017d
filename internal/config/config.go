package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Config holds all simulator configuration
type Config struct {
	Platform PlatformConfig
	Payment  PaymentConfig
	Logger   LoggerConfig
	Metrics  MetricsConfig
}

// PlatformConfig holds payment platform and identity server configuration
type PlatformConfig struct {
	APIKey         string `validate:"required"`
	CustomerBase   string `validate:"required,url"`
	MerchantBase   string `validate:"required,url"`
	CustomerID     string `validate:"required"`
	MerchantID     string
	Wallet         string `validate:"oneof=DEFAULT EVERYDAY_PAY"`
	WalletID       string
	Require3DS     bool
	AcsWindowSize  string
	TimeoutSeconds int `validate:"gt=0"`
}

// PaymentConfig holds the demo payment request parameters
type PaymentConfig struct {
	GrossAmount decimal.Decimal
	MaxUses     int `validate:"gt=0"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool
	Port    string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	amount, err := decimal.NewFromString(getEnv("PAYMENT_GROSS_AMOUNT", "12.50"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Platform: PlatformConfig{
			APIKey:         getEnv("PLATFORM_API_KEY", ""),
			CustomerBase:   getEnv("PLATFORM_CUSTOMER_BASE_URL", ""),
			MerchantBase:   getEnv("PLATFORM_MERCHANT_BASE_URL", ""),
			CustomerID:     getEnv("PLATFORM_CUSTOMER_ID", ""),
			MerchantID:     getEnv("PLATFORM_MERCHANT_ID", ""),
			Wallet:         getEnv("PLATFORM_WALLET", "DEFAULT"),
			WalletID:       getEnv("PLATFORM_WALLET_ID", ""),
			Require3DS:     getEnvAsBool("PLATFORM_REQUIRE_3DS", false),
			AcsWindowSize:  getEnv("PLATFORM_ACS_WINDOW_SIZE", "01"),
			TimeoutSeconds: getEnvAsInt("PLATFORM_TIMEOUT", 30),
		},
		Payment: PaymentConfig{
			GrossAmount: amount,
			MaxUses:     getEnvAsInt("PAYMENT_MAX_USES", 3),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvAsBool("METRICS_ENABLED", true),
			Port:    getEnv("METRICS_PORT", "9090"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
