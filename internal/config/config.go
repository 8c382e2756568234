// Package config loads application configuration from environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	defaultAPIURL  = "http://127.0.0.1:8000/api"
	defaultDBPath  = "notty.db"
	defaultTimeout = 30 * time.Second
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	APIURL    string
	DBPath    string
	SecretKey []byte // nil when NOTTY_SECRET_KEY is unset; tokens are then stored unencrypted.
	Timeout   time.Duration
}

// HasSecretKey reports whether stored tokens will be encrypted.
func (c *Config) HasSecretKey() bool {
	return c.SecretKey != nil
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: NOTTY_API_URL (http://127.0.0.1:8000/api),
// NOTTY_DB_PATH (notty.db), NOTTY_TIMEOUT (30s) and NOTTY_SECRET_KEY
// (64 hex characters, AES-256 key for tokens at rest).
func Load() (*Config, error) {
	apiURL := defaultAPIURL
	if v, ok := os.LookupEnv("NOTTY_API_URL"); ok && v != "" {
		u, err := url.Parse(v)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("NOTTY_API_URL must be an absolute http(s) URL, got %q", v)
		}
		apiURL = v
	}

	dbPath := defaultDBPath
	if v, ok := os.LookupEnv("NOTTY_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	timeout := defaultTimeout
	if v, ok := os.LookupEnv("NOTTY_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("NOTTY_TIMEOUT has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("NOTTY_TIMEOUT must be positive, got %s", parsed)
		}
		timeout = parsed
	}

	var secretKey []byte
	if v, ok := os.LookupEnv("NOTTY_SECRET_KEY"); ok && v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("NOTTY_SECRET_KEY is not valid hex: %w", err)
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("NOTTY_SECRET_KEY must decode to 32 bytes, got %d", len(key))
		}
		secretKey = key
	}

	return &Config{
		APIURL:    apiURL,
		DBPath:    dbPath,
		SecretKey: secretKey,
		Timeout:   timeout,
	}, nil
}
