package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/desertthunder/tmx/internal/shared"
)

// fakeTokens is a TokenSource with scripted tokens and call counters.
type fakeTokens struct {
	token        string
	valid        bool
	refreshed    string
	refreshOK    bool
	validCalls   int
	refreshCalls int
}

func (f *fakeTokens) ValidAccessToken(ctx context.Context) (string, bool) {
	f.validCalls++
	return f.token, f.valid
}

func (f *fakeTokens) ForceRefresh(ctx context.Context) (string, bool) {
	f.refreshCalls++
	return f.refreshed, f.refreshOK
}

// newTestGateway points a Gateway at an httptest server.
func newTestGateway(t *testing.T, tokens TokenSource, handler http.HandlerFunc) *Gateway {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway := NewGateway(tokens, server.Client(), shared.NewLogger(nil))
	gateway.baseURL = server.URL
	return gateway
}

func TestGateway(t *testing.T) {
	ctx := context.Background()

	t.Run("Request", func(t *testing.T) {
		t.Run("sends bearer token and returns the body", func(t *testing.T) {
			tokens := &fakeTokens{token: "access-1", valid: true}
			gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
				if got := r.Header.Get("Authorization"); got != "Bearer access-1" {
					t.Errorf("unexpected Authorization header: %q", got)
				}
				w.Write([]byte(`{"id":"abc"}`))
			})

			data, err := gateway.Request(ctx, http.MethodGet, "/me", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != `{"id":"abc"}` {
				t.Errorf("unexpected body: %s", data)
			}
		})

		t.Run("no token fails without touching the network", func(t *testing.T) {
			requests := 0
			gateway := newTestGateway(t, &fakeTokens{}, func(w http.ResponseWriter, r *http.Request) {
				requests++
			})

			_, err := gateway.Request(ctx, http.MethodGet, "/me", nil)
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if requests != 0 {
				t.Errorf("expected no requests, got %d", requests)
			}
		})

		t.Run("single 401 triggers one refresh and one retry", func(t *testing.T) {
			tokens := &fakeTokens{token: "stale", valid: true, refreshed: "fresh", refreshOK: true}
			requests := 0
			gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
				requests++
				if r.Header.Get("Authorization") == "Bearer stale" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				w.Write([]byte(`{"ok":true}`))
			})

			data, err := gateway.Request(ctx, http.MethodGet, "/me", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != `{"ok":true}` {
				t.Errorf("unexpected body: %s", data)
			}
			if requests != 2 {
				t.Errorf("expected exactly 2 requests, got %d", requests)
			}
			if tokens.refreshCalls != 1 {
				t.Errorf("expected exactly 1 refresh, got %d", tokens.refreshCalls)
			}
		})

		t.Run("second 401 surfaces as not authenticated", func(t *testing.T) {
			tokens := &fakeTokens{token: "stale", valid: true, refreshed: "still-stale", refreshOK: true}
			requests := 0
			gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
				requests++
				w.WriteHeader(http.StatusUnauthorized)
			})

			_, err := gateway.Request(ctx, http.MethodGet, "/me", nil)
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if requests != 2 {
				t.Errorf("expected exactly 2 requests, got %d", requests)
			}
		})

		t.Run("failed forced refresh stops the retry", func(t *testing.T) {
			tokens := &fakeTokens{token: "stale", valid: true}
			requests := 0
			gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
				requests++
				w.WriteHeader(http.StatusUnauthorized)
			})

			_, err := gateway.Request(ctx, http.MethodGet, "/me", nil)
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if requests != 1 {
				t.Errorf("expected 1 request, got %d", requests)
			}
		})

		t.Run("204 decodes as an empty object", func(t *testing.T) {
			tokens := &fakeTokens{token: "access-1", valid: true}
			gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})

			data, err := gateway.Request(ctx, http.MethodGet, "/me", nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != "{}" {
				t.Errorf("expected empty object, got %s", data)
			}
		})

		t.Run("server errors map to ErrAPIRequest", func(t *testing.T) {
			tokens := &fakeTokens{token: "access-1", valid: true}
			gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error":{"status":500}}`, http.StatusInternalServerError)
			})

			_, err := gateway.Request(ctx, http.MethodGet, "/me", nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("Post sends the encoded body", func(t *testing.T) {
		tokens := &fakeTokens{token: "access-1", valid: true}
		var got map[string]any
		gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("unexpected content type: %q", ct)
			}
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			w.Write([]byte(`{"id":"pl1"}`))
		})

		var result struct {
			ID string `json:"id"`
		}
		err := gateway.Post(ctx, "/users/u1/playlists", map[string]string{"name": "Mix"}, &result)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got["name"] != "Mix" {
			t.Errorf("unexpected request body: %v", got)
		}
		if result.ID != "pl1" {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("Get with nil result skips decoding", func(t *testing.T) {
		tokens := &fakeTokens{token: "access-1", valid: true}
		gateway := newTestGateway(t, tokens, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		if err := gateway.Get(ctx, "/me", nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
