// Package rest implements the NotesAPI port against the Notty REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/gregjones/httpcache"
	"golang.org/x/sync/singleflight"

	"github.com/ericfisherdev/notty/internal/domain/port/driven"
)

// DefaultBaseURL is the API root of a locally running Notty backend.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

// Compile-time interface satisfaction check.
var _ driven.NotesAPI = (*Client)(nil)

// Client implements the driven.NotesAPI port. Every request is decorated with
// the access token currently held by the token store.
type Client struct {
	httpClient *http.Client
	baseURL    string // Without trailing slash; API paths start with "/".
	tokens     driven.TokenStore
	logger     *slog.Logger

	refreshGroup singleflight.Group
}

// NewClient creates a new API client with the following transport stack:
//  1. httpcache (ETag/Last-Modified conditional request caching)
//  2. go-github-ratelimit (sleeps on 429 with Retry-After, as emitted by DRF throttling)
//  3. the REST client itself
func NewClient(baseURL string, tokens driven.TokenStore, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	rateLimitClient := github_ratelimit.NewClient(cacheTransport)
	rateLimitClient.Timeout = timeout

	return NewClientWithHTTPClient(rateLimitClient, baseURL, tokens, logger)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// Tests use it to point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, tokens driven.TokenStore, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", baseURL)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(u.String(), "/"),
		tokens:     tokens,
		logger:     logger,
	}, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// newRequest builds a request for path relative to the base URL. The body, if
// any, is JSON-encoded as given.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating %s %s request: %w", method, path, err)
	}

	token, err := c.tokens.Get(ctx, driven.AccessTokenKey)
	if err != nil {
		return nil, fmt.Errorf("reading access token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// do sends the request and decodes a successful JSON response into out.
// out may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api response", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(method, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}

	return nil
}

func newAPIError(method, path string, resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
