package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// Aliases of the port-level sentinels so callers of this package need not
// import the driven port.
var (
	ErrUnauthorized   = driven.ErrUnauthorized
	ErrSessionExpired = driven.ErrSessionExpired
)

// ErrNoRefreshToken is returned by RefreshAccessToken when the token store
// holds no refresh token.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// ErrMissingToken is returned when a successful token response lacks a token.
var ErrMissingToken = errors.New("token missing from response")

// maxErrorBody bounds how much of a failed response body is kept for diagnostics.
const maxErrorBody = 4 << 10

// APIError describes a non-2xx response from the API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Is reports whether target is ErrUnauthorized and the response was a 401.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// SessionExpiredError carries the original 401 together with the reason the
// refresh attempt failed. It matches ErrSessionExpired and unwraps to the
// original request error.
type SessionExpiredError struct {
	Err        error
	RefreshErr error
}

func (e *SessionExpiredError) Error() string {
	return fmt.Sprintf("%v (token refresh failed: %v)", e.Err, e.RefreshErr)
}

func (e *SessionExpiredError) Is(target error) bool {
	return target == ErrSessionExpired
}

func (e *SessionExpiredError) Unwrap() error {
	return e.Err
}
