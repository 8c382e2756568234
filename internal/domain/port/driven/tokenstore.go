package driven

import (
	"context"
	"errors"
)

// Fixed key names under which the session tokens are stored.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// ErrEncryptionKeyInvalid is returned when NOTTY_SECRET_KEY is set but does not
// decode to a 32-byte AES-256 key.
var ErrEncryptionKeyInvalid = errors.New("encryption key must be 32 bytes (64 hex characters): check NOTTY_SECRET_KEY")

// TokenStore defines the driven port for session token persistence. It is the
// credential provider every outgoing API request reads from.
type TokenStore interface {
	// Get returns the value stored under key.
	// Returns ("", nil) if nothing is stored under that key.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the value under key.
	Set(ctx context.Context, key, value string) error
}
