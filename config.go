package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	aws_pkg "pos-service/pkg/aws"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the POS service.
type Config struct {
	Env  string
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string

	JWTSecret string
	TokenTTL  time.Duration

	TaxPercentage     decimal.Decimal
	OrderStatusStrict bool
	BillOverdueAfter  time.Duration

	RedisURL     string
	MenuCacheTTL time.Duration

	BillingSNSTopicARN string
	AllowedOrigins     []string
	RateLimitPerMinute int

	SeedData      bool
	AdminUsername string
	AdminPassword string
}

// secretSource is the part of the Secrets Manager client LoadConfig needs.
type secretSource interface {
	GetSecretMap(ctx context.Context, name string) (map[string]string, error)
	GetSecret(ctx context.Context, name string) (string, error)
}

// LoadConfig reads configuration from the environment (and .env when
// present), with an optional Secrets Manager override.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := configFromEnv()
	if err != nil {
		return nil, err
	}

	if os.Getenv("AWS_USE_SECRETS") == "true" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		awsCfg, err := aws_pkg.LoadAWSConfig(ctx)
		if err != nil {
			return nil, err
		}
		applySecrets(ctx, cfg, aws_pkg.NewSecretsClient(awsCfg))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configFromEnv() (*Config, error) {
	cfg := &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8084"),
		PostgresUser:       os.Getenv("POSTGRES_USER"),
		PostgresPassword:   os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:         os.Getenv("POSTGRES_DB"),
		PostgresHost:       getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:       getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:    getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone:   getEnv("POSTGRES_TIMEZONE", "Asia/Kolkata"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisURL:           os.Getenv("REDIS_URL"),
		BillingSNSTopicARN: os.Getenv("BILLING_SNS_TOPIC_ARN"),
		AdminUsername:      os.Getenv("ADMIN_USERNAME"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.BillOverdueAfter, err = getDuration("BILL_OVERDUE_AFTER", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.MenuCacheTTL, err = getDuration("MENU_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.OrderStatusStrict, err = getBool("ORDER_STATUS_STRICT", true); err != nil {
		return nil, err
	}
	if cfg.SeedData, err = getBool("SEED_DATA", false); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = strconv.Atoi(getEnv("RATE_LIMIT_PER_MINUTE", "300")); err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE: %w", err)
	}

	cfg.TaxPercentage, err = decimal.NewFromString(getEnv("TAX_PERCENTAGE", "5.00"))
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_PERCENTAGE: %w", err)
	}

	for _, o := range strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(strings.TrimSuffix(o, "/")); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}
	return cfg, nil
}

// applySecrets overrides DB credentials and the JWT secret from Secrets
// Manager. Missing or unreadable secrets leave the env values in place.
func applySecrets(ctx context.Context, cfg *Config, sm secretSource) {
	if m, err := sm.GetSecretMap(ctx, "pos/DB_CREDENTIALS"); err == nil {
		override := func(dst *string, key string) {
			if v, ok := m[key]; ok && v != "" {
				*dst = v
			}
		}
		override(&cfg.PostgresUser, "POSTGRES_USER")
		override(&cfg.PostgresPassword, "POSTGRES_PASSWORD")
		override(&cfg.PostgresDB, "POSTGRES_DB")
		override(&cfg.PostgresHost, "POSTGRES_HOST")
		override(&cfg.PostgresPort, "POSTGRES_PORT")
	}
	if secret, err := sm.GetSecret(ctx, "pos/JWT_SECRET"); err == nil && secret != "" {
		cfg.JWTSecret = secret
	}
}

func (c *Config) validate() error {
	if c.PostgresUser == "" || c.PostgresPassword == "" || c.PostgresDB == "" || c.PostgresHost == "" {
		return fmt.Errorf("database config incomplete")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TaxPercentage.IsNegative() || c.TaxPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("TAX_PERCENTAGE must be between 0 and 100")
	}
	if !c.TaxPercentage.Equal(c.TaxPercentage.Round(2)) {
		return fmt.Errorf("TAX_PERCENTAGE must have at most 2 decimal places")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getBool(key string, fallback bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
