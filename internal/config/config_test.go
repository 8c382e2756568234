package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every NOTTY_ env var that Load() reads.
var allConfigKeys = []string{
	"NOTTY_API_URL",
	"NOTTY_DB_PATH",
	"NOTTY_TIMEOUT",
	"NOTTY_SECRET_KEY",
}

// isolateConfigEnv saves and unsets all NOTTY_ env vars so tests don't
// inherit values from the host environment.
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8000/api", cfg.APIURL)
	assert.Equal(t, "notty.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Nil(t, cfg.SecretKey)
	assert.False(t, cfg.HasSecretKey())
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("NOTTY_API_URL", "https://notes.example.com/api")
	t.Setenv("NOTTY_DB_PATH", "/tmp/notty-test.db")
	t.Setenv("NOTTY_TIMEOUT", "5s")
	t.Setenv("NOTTY_SECRET_KEY", strings.Repeat("ab", 32))

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://notes.example.com/api", cfg.APIURL)
	assert.Equal(t, "/tmp/notty-test.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Len(t, cfg.SecretKey, 32)
	assert.True(t, cfg.HasSecretKey())
}

func TestLoad_InvalidAPIURL(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("NOTTY_API_URL", "127.0.0.1:8000/api")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTTY_API_URL")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("NOTTY_TIMEOUT", "soon")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTTY_TIMEOUT")
}

func TestLoad_NonPositiveTimeout(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("NOTTY_TIMEOUT", "0s")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTTY_TIMEOUT")
}

func TestLoad_SecretKeyNotHex(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("NOTTY_SECRET_KEY", strings.Repeat("zz", 32))

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTTY_SECRET_KEY")
}

func TestLoad_SecretKeyWrongLength(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("NOTTY_SECRET_KEY", "abcd")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "32 bytes")
}
