package config

import (
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"GO_ENV", "DATABASE_URL", "JWT_SECRET", "TOKEN_TTL_HOURS", "BCRYPT_COST", "PORT",
	"CLIENT_URLS", "CLIENT_URL", "BODY_LIMIT", "AUTH_RATE_LIMIT_RPS", "AUTH_RATE_LIMIT_BURST",
	"NODE_ID", "LOG_LEVEL",
}

// clearEnv blanks every variable FromEnv reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "./database.db", cfg.DatabaseURL)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Empty(t, cfg.ClientURLs)
	assert.Equal(t, "2M", cfg.BodyLimit)
	assert.Equal(t, 5.0, cfg.AuthRateLimitRPS)
	assert.Equal(t, 10, cfg.AuthRateLimitBurst)
	assert.Equal(t, int64(1), cfg.NodeID)
	assert.Equal(t, log.INFO, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("DATABASE_URL", "file:notes.db")
	t.Setenv("TOKEN_TTL_HOURS", "1")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("PORT", "9000")
	t.Setenv("CLIENT_URLS", "http://a.test, http://b.test,,")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "0.5")
	t.Setenv("NODE_ID", "7")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "file:notes.db", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.ClientURLs)
	assert.Equal(t, 0.5, cfg.AuthRateLimitRPS)
	assert.Equal(t, int64(7), cfg.NodeID)
	assert.Equal(t, log.DEBUG, cfg.LogLevel)
}

func TestFromEnv_SingleClientURLFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "0123456789abcdef")
	t.Setenv("CLIENT_URL", "http://localhost:5173")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.ClientURLs)
}

func TestFromEnv_UnparsableNumbersAreErrors(t *testing.T) {
	cases := map[string]string{
		"BCRYPT_COST":           "lots",
		"AUTH_RATE_LIMIT_RPS":   "fast",
		"TOKEN_TTL_HOURS":       "1.5",
		"AUTH_RATE_LIMIT_BURST": "ten",
		"NODE_ID":               "one",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("JWT_SECRET", "0123456789abcdef")
			t.Setenv(key, value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.ErrorContains(t, err, key)
		})
	}
}

func TestFromEnv_Rejects(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"short secret":   {"JWT_SECRET": "short"},
		"low cost":       {"JWT_SECRET": "0123456789abcdef", "BCRYPT_COST": "3"},
		"high cost":      {"JWT_SECRET": "0123456789abcdef", "BCRYPT_COST": "32"},
		"zero ttl":       {"JWT_SECRET": "0123456789abcdef", "TOKEN_TTL_HOURS": "0"},
		"node id":        {"JWT_SECRET": "0123456789abcdef", "NODE_ID": "1024"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.WARN, parseLevel("warning"))
	assert.Equal(t, log.ERROR, parseLevel(" error "))
	assert.Equal(t, log.OFF, parseLevel("off"))
	assert.Equal(t, log.INFO, parseLevel("verbose"))
}
