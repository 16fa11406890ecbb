package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tmx/internal/shared"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// TokenSource supplies access tokens to the gateway. Implemented by auth.Manager.
type TokenSource interface {
	// ValidAccessToken returns a non-expired token, refreshing near expiry.
	// ok is false when the caller must re-authenticate.
	ValidAccessToken(ctx context.Context) (token string, ok bool)

	// ForceRefresh refreshes unconditionally, used after the provider rejects
	// a token the store still considered valid.
	ForceRefresh(ctx context.Context) (token string, ok bool)
}

// Gateway is the single chokepoint for authenticated calls to the Spotify API.
//
// It applies bearer auth, recovers from a single 401 with one refresh and one
// retry, and classifies everything else into the shared error taxonomy. No
// other code issues authenticated provider requests.
type Gateway struct {
	baseURL string
	tokens  TokenSource
	client  *http.Client
	logger  *log.Logger
}

// NewGateway creates a Gateway over the given token source.
func NewGateway(tokens TokenSource, client *http.Client, logger *log.Logger) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Gateway{
		baseURL: spotifyBaseURL,
		tokens:  tokens,
		client:  client,
		logger:  logger,
	}
}

// Request performs an authenticated call against the provider API.
//
// Without an obtainable token it fails immediately with no network call.
// A 204 yields an empty JSON object so callers can distinguish "no content"
// from failure. A second consecutive 401 is surfaced as failure after exactly
// one refresh and one retry; there is no further retrying.
func (g *Gateway) Request(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	token, ok := g.tokens.ValidAccessToken(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: no valid access token", shared.ErrNotAuthenticated)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := g.do(ctx, method, endpoint, token, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		g.logger.Warn("request unauthorized, refreshing token", "endpoint", endpoint)

		token, ok = g.tokens.ForceRefresh(ctx)
		if !ok {
			return nil, fmt.Errorf("%w: token refresh failed", shared.ErrNotAuthenticated)
		}

		resp, err = g.do(ctx, method, endpoint, token, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return json.RawMessage("{}"), nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: still unauthorized after refresh", shared.ErrNotAuthenticated)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 100))
		g.logger.Error("provider API error", "endpoint", endpoint, "status", resp.StatusCode, "detail", string(detail))
		return nil, fmt.Errorf("%w: %s %s returned status %d", shared.ErrAPIRequest, method, endpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return json.RawMessage(data), nil
}

func (g *Gateway) do(ctx context.Context, method, endpoint, token string, payload []byte) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	return g.client.Do(req)
}

// Get performs an authenticated GET and decodes the JSON response into result.
func (g *Gateway) Get(ctx context.Context, endpoint string, result any) error {
	data, err := g.Request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Post performs an authenticated POST and decodes the JSON response into result.
func (g *Gateway) Post(ctx context.Context, endpoint string, body, result any) error {
	data, err := g.Request(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
