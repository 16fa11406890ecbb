package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// RefreshMargin is how close to expiry an access token is still handed out
// without refreshing. It absorbs network latency between the validity check
// and the authenticated request actually reaching the provider.
const RefreshMargin = 5 * time.Second

// Manager implements the OAuth2 token lifecycle for Spotify.
//
// State machine: Unauthenticated → Authenticated(valid) → Authenticated(expiring)
// → [refresh] → Authenticated(valid), or → Unauthenticated on refresh rejection.
type Manager struct {
	store  *Store
	config *oauth2.Config
	client *http.Client
	logger *log.Logger
	now    func() time.Time
}

// NewManager creates a Manager with the given Spotify app credentials.
//
// Missing client id/secret is not an error here; the exchange and refresh
// operations report [shared.ErrMissingCredentials] when invoked unconfigured,
// since configuration is only required at token-operation time.
func NewManager(store *Store, creds shared.SpotifyConfig, client *http.Client, logger *log.Logger) *Manager {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	config := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  creds.RedirectURI,
		Scopes: []string{
			"user-read-private",
			"user-read-email",
			"user-top-read",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &Manager{
		store:  store,
		config: config,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Store returns the credential store backing this manager.
func (m *Manager) Store() *Store {
	return m.store
}

// AuthURL returns the provider authorization URL for user login.
// The state token should be cryptographically random for CSRF protection.
func (m *Manager) AuthURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// tokenResponse is the provider's token endpoint payload.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Scope        string `json:"scope"`
}

// tokenRequest posts a form to the token endpoint with Basic client auth and
// maps provider refusals (4xx) to [shared.ErrAuthRejected].
func (m *Manager) tokenRequest(ctx context.Context, form url.Values) (models.Credentials, error) {
	if m.config.ClientID == "" || m.config.ClientSecret == "" {
		return models.Credentials{}, fmt.Errorf("%w: Spotify client_id and client_secret must be configured", shared.ErrMissingCredentials)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.Endpoint.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return models.Credentials{}, fmt.Errorf("failed to create token request: %w", err)
	}
	req.SetBasicAuth(m.config.ClientID, m.config.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return models.Credentials{}, fmt.Errorf("%w: status %d: %s", shared.ErrAuthRejected, resp.StatusCode, body)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Credentials{}, fmt.Errorf("%w: token endpoint status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var data tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.Credentials{}, fmt.Errorf("failed to decode token response: %w", err)
	}

	return models.Credentials{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		ExpiresAt:    m.now().Add(time.Duration(data.ExpiresIn) * time.Second),
	}, nil
}

// ExchangeCode exchanges an authorization code for a credential set and stores it.
func (m *Manager) ExchangeCode(ctx context.Context, code, redirectURI string) (models.Credentials, error) {
	if redirectURI == "" {
		redirectURI = m.config.RedirectURL
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)

	creds, err := m.tokenRequest(ctx, form)
	if err != nil {
		return models.Credentials{}, fmt.Errorf("code exchange failed: %w", err)
	}

	if err := m.store.Set(creds); err != nil {
		return models.Credentials{}, fmt.Errorf("failed to store credentials: %w", err)
	}

	m.logger.Info("authorization code exchanged", "expires_at", creds.ExpiresAt)
	return creds, nil
}

// Refresh exchanges a refresh token for a new credential set and stores it.
//
// The provider may rotate the refresh token; when it does not, the previous
// one is retained. A provider rejection clears all stored credentials,
// forcing re-authentication.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (models.Credentials, error) {
	if refreshToken == "" {
		return models.Credentials{}, fmt.Errorf("%w: no refresh token", shared.ErrNotAuthenticated)
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	creds, err := m.tokenRequest(ctx, form)
	if err != nil {
		if errors.Is(err, shared.ErrAuthRejected) {
			m.logger.Warn("refresh token rejected, clearing credentials")
			if clearErr := m.store.Clear(); clearErr != nil {
				m.logger.Error("failed to clear credentials", "error", clearErr)
			}
		}
		return models.Credentials{}, fmt.Errorf("%w: %v", shared.ErrRefreshFailed, err)
	}

	if creds.RefreshToken == "" {
		creds.RefreshToken = refreshToken
	}

	if err := m.store.Set(creds); err != nil {
		return models.Credentials{}, fmt.Errorf("failed to store refreshed credentials: %w", err)
	}

	m.logger.Debug("access token refreshed", "expires_at", creds.ExpiresAt)
	return creds, nil
}

// ValidAccessToken returns a non-expired access token, refreshing when the
// stored token is expired or within [RefreshMargin] of expiry.
//
// ok is false when no credentials exist or refresh fails; that outcome means
// "must re-authenticate" and is a normal flow result, not an error.
func (m *Manager) ValidAccessToken(ctx context.Context) (token string, ok bool) {
	creds, ok := m.store.Get()
	if !ok {
		return "", false
	}

	if !creds.ExpiresWithin(m.now(), RefreshMargin) {
		return creds.AccessToken, true
	}

	refreshed, err := m.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		m.logger.Warn("token refresh failed", "error", err)
		return "", false
	}
	return refreshed.AccessToken, true
}

// ForceRefresh refreshes the current credentials unconditionally, used by the
// gateway when the provider rejects a token the store still considered valid.
func (m *Manager) ForceRefresh(ctx context.Context) (token string, ok bool) {
	creds, ok := m.store.Get()
	if !ok {
		return "", false
	}

	refreshed, err := m.Refresh(ctx, creds.RefreshToken)
	if err != nil {
		m.logger.Warn("forced refresh failed", "error", err)
		return "", false
	}
	return refreshed.AccessToken, true
}

// Logout discards all stored credentials.
func (m *Manager) Logout() error {
	m.logger.Info("clearing stored credentials")
	return m.store.Clear()
}
