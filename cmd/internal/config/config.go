package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	EnvProduction = "production"

	minSecretLength = 16
)

type Config struct {
	Environment string

	// DatabaseURL is handed to the SQLite driver as-is.
	DatabaseURL string
	JWTSecret   string
	TokenTTL    time.Duration
	BcryptCost  int

	Port       string
	ClientURLs []string
	BodyLimit  string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int

	NodeID   int64
	LogLevel log.Lvl
}

// Load populates the environment (Parameter Store in production, .env
// elsewhere) and builds the Config from it.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == EnvProduction {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else {
		// A missing .env is fine, the variables may come from the shell.
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv reads and validates the configuration from environment variables.
// A numeric variable that does not parse is an error, not a silent default.
func FromEnv() (*Config, error) {
	var errs []error
	asInt := func(key string, defaultValue int) int {
		value, err := getEnvAsInt(key, defaultValue)
		errs = append(errs, err)
		return value
	}
	asFloat := func(key string, defaultValue float64) float64 {
		value, err := getEnvAsFloat(key, defaultValue)
		errs = append(errs, err)
		return value
	}

	cfg := &Config{
		Environment:        getEnv("GO_ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", "./database.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           time.Duration(asInt("TOKEN_TTL_HOURS", 7*24)) * time.Hour,
		BcryptCost:         asInt("BCRYPT_COST", 10),
		Port:               getEnv("PORT", "8080"),
		ClientURLs:         splitList(getEnv("CLIENT_URLS", os.Getenv("CLIENT_URL"))),
		BodyLimit:          getEnv("BODY_LIMIT", "2M"),
		AuthRateLimitRPS:   asFloat("AUTH_RATE_LIMIT_RPS", 5),
		AuthRateLimitBurst: asInt("AUTH_RATE_LIMIT_BURST", 10),
		NodeID:             int64(asInt("NODE_ID", 1)),
		LogLevel:           parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures all required configuration is present.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	if len(c.JWTSecret) < minSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength)
	}

	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be within [4 - 31], got %d", c.BcryptCost)
	}

	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}

	if c.NodeID < 0 || c.NodeID > 1023 {
		return fmt.Errorf("NODE_ID must be within [0 - 1023], got %d", c.NodeID)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", key, valueStr)
	}
	return value, nil
}

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(raw string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
