package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenStore = (*TokenRepo)(nil)

// ErrEncryptedToken is returned by Get when a token was written with an
// encryption key but the repo was opened without one.
var ErrEncryptedToken = errors.New("token is encrypted but no encryption key is configured")

// TokenRepo is the SQLite implementation of the TokenStore port interface.
// With a key, token values are encrypted with AES-256-GCM before write and
// decrypted after read. Without one they are stored as given.
type TokenRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil stores plaintext.
}

// NewTokenRepo creates a new TokenRepo. key must be 32 bytes for AES-256-GCM,
// or nil to store tokens unencrypted.
func NewTokenRepo(db *DB, key []byte) (*TokenRepo, error) {
	if key != nil && len(key) != 32 {
		return nil, driven.ErrEncryptionKeyInvalid
	}
	return &TokenRepo{db: db, key: key}, nil
}

// Set stores or replaces the token under name.
func (r *TokenRepo) Set(ctx context.Context, name, value string) error {
	stored, encrypted := value, false
	if r.key != nil {
		var err error
		stored, err = r.encrypt(value)
		if err != nil {
			return fmt.Errorf("encrypt token %q: %w", name, err)
		}
		encrypted = true
	}

	const query = `INSERT OR REPLACE INTO tokens (name, value, encrypted, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)`
	_, err := r.db.Writer.ExecContext(ctx, query, name, stored, encrypted)
	if err != nil {
		return fmt.Errorf("set token %q: %w", name, err)
	}
	return nil
}

// Get retrieves the token stored under name.
// Returns ("", nil) if no token exists under that name.
func (r *TokenRepo) Get(ctx context.Context, name string) (string, error) {
	const query = `SELECT value, encrypted FROM tokens WHERE name = ?`
	var stored string
	var encrypted bool
	err := r.db.Reader.QueryRowContext(ctx, query, name).Scan(&stored, &encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get token %q: %w", name, err)
	}

	if !encrypted {
		return stored, nil
	}
	if r.key == nil {
		return "", fmt.Errorf("get token %q: %w", name, ErrEncryptedToken)
	}

	plaintext, err := r.decrypt(stored)
	if err != nil {
		return "", fmt.Errorf("decrypt token %q: %w", name, err)
	}
	return plaintext, nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded string
// containing the nonce (12 bytes) prepended to the ciphertext.
func (r *TokenRepo) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *TokenRepo) decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("gcm.Open: %w", err)
	}

	return string(plaintext), nil
}
