package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ericfisherdev/notty/internal/domain/model"
	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

const (
	registerPath     = "/register/"
	tokenPath        = "/token/"
	tokenRefreshPath = "/token/refresh/"
)

// refreshRequest is the body posted to the token refresh endpoint.
type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// refreshResponse is the body returned by the token refresh endpoint.
type refreshResponse struct {
	Access string `json:"access"`
}

// Register creates a new account. Failures are returned unchanged.
func (c *Client) Register(ctx context.Context, user model.Registration) (*model.User, error) {
	var created model.User
	if err := c.do(ctx, http.MethodPost, registerPath, user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Login exchanges credentials for a token pair and stores both tokens.
func (c *Client) Login(ctx context.Context, creds model.LoginCredentials) (*model.TokenPair, error) {
	var pair model.TokenPair
	if err := c.do(ctx, http.MethodPost, tokenPath, creds, &pair); err != nil {
		c.logger.Error("login failed", "username", creds.Username, "error", err)
		return nil, err
	}

	if pair.Access == "" || pair.Refresh == "" {
		err := fmt.Errorf("POST %s: %w", tokenPath, ErrMissingToken)
		c.logger.Error("login failed", "username", creds.Username, "error", err)
		return nil, err
	}

	// The refresh token is written first: a failure in between leaves the old
	// access token, which a later refresh replaces.
	if err := c.tokens.Set(ctx, driven.RefreshTokenKey, pair.Refresh); err != nil {
		c.logger.Error("login failed", "username", creds.Username, "error", err)
		return nil, fmt.Errorf("storing refresh token: %w", err)
	}
	if err := c.tokens.Set(ctx, driven.AccessTokenKey, pair.Access); err != nil {
		c.logger.Error("login failed", "username", creds.Username, "error", err)
		return nil, fmt.Errorf("storing access token: %w", err)
	}

	c.logger.Info("logged in", "username", creds.Username)
	return &pair, nil
}

// RefreshAccessToken posts the stored refresh token to the refresh endpoint,
// stores the returned access token and returns it. Concurrent callers share a
// single in-flight refresh.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do(tokenRefreshPath, func() (any, error) {
		return c.refreshAccessToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	refresh, err := c.tokens.Get(ctx, driven.RefreshTokenKey)
	if err != nil {
		c.logger.Error("token refresh failed", "error", err)
		return "", fmt.Errorf("reading refresh token: %w", err)
	}
	if refresh == "" {
		c.logger.Error("token refresh failed", "error", ErrNoRefreshToken)
		return "", ErrNoRefreshToken
	}

	var resp refreshResponse
	if err := c.do(ctx, http.MethodPost, tokenRefreshPath, refreshRequest{Refresh: refresh}, &resp); err != nil {
		c.logger.Error("token refresh failed", "error", err)
		return "", err
	}
	if resp.Access == "" {
		err := fmt.Errorf("POST %s: %w", tokenRefreshPath, ErrMissingToken)
		c.logger.Error("token refresh failed", "error", err)
		return "", err
	}

	if err := c.tokens.Set(ctx, driven.AccessTokenKey, resp.Access); err != nil {
		c.logger.Error("token refresh failed", "error", err)
		return "", fmt.Errorf("storing access token: %w", err)
	}

	c.logger.Debug("access token refreshed")
	return resp.Access, nil
}
