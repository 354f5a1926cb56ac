package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// MoneyLover endpoints
	APIBaseURL   string
	OAuthBaseURL string
	HTTPTimeout  time.Duration

	// Restored session credentials (persisted by the caller, e.g. the CLI
	// config file or the daemon's environment)
	AccessToken  string
	RefreshToken string
	ClientID     string
	TokenExpire  int64 // unix seconds, 0 = unknown

	// Local mirror
	SQLiteDBPath string

	// AMQP (optional; empty URL disables event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Sync worker
	SyncInterval    time.Duration
	SyncConcurrency int
}

func Load() *Config {
	return &Config{
		APIBaseURL:   getEnv("MONEYLOVER_API_BASE_URL", "https://web.moneylover.me/api"),
		OAuthBaseURL: getEnv("MONEYLOVER_OAUTH_BASE_URL", "https://oauth.moneylover.me"),
		HTTPTimeout:  getEnvDuration("MONEYLOVER_HTTP_TIMEOUT", 30*time.Second),

		AccessToken:  getEnv("MONEYLOVER_ACCESS_TOKEN", ""),
		RefreshToken: getEnv("MONEYLOVER_REFRESH_TOKEN", ""),
		ClientID:     getEnv("MONEYLOVER_CLIENT_ID", ""),
		TokenExpire:  getEnvInt64("MONEYLOVER_TOKEN_EXPIRE", 0),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/moneylover.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "moneylover"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "mirror_updates"),

		SyncInterval:    getEnvDuration("SYNC_INTERVAL", 30*time.Minute),
		SyncConcurrency: getEnvInt("SYNC_CONCURRENCY", 4),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	for name, value := range map[string]string{
		"API base URL":   c.APIBaseURL,
		"OAuth base URL": c.OAuthBaseURL,
	} {
		parsed, err := url.Parse(value)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid %s '%s': %v", name, value, err))
			continue
		}
		if parsed.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid %s '%s': scheme must be 'https'", name, value))
		}
	}

	if c.HTTPTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SyncInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at least 1 minute", c.SyncInterval))
	} else if c.SyncInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at most 24 hours", c.SyncInterval))
	}

	if c.SyncConcurrency < 1 {
		errors = append(errors, fmt.Sprintf("invalid sync concurrency %d: must be at least 1", c.SyncConcurrency))
	} else if c.SyncConcurrency > 16 {
		errors = append(errors, fmt.Sprintf("invalid sync concurrency %d: must be at most 16", c.SyncConcurrency))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// HasSession reports whether enough credential state is present to restore
// a session without an interactive login.
func (c *Config) HasSession() bool {
	return c.RefreshToken != "" && c.ClientID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
