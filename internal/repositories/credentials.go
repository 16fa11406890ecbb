package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tmx/internal/models"
)

// ProviderSpotify is the credentials row key for the Spotify account.
const ProviderSpotify = "spotify"

// CredentialRepository persists one token set per provider.
//
// Implements the auth store's repository interface: Load at startup,
// Save on every token change, Clear when a refresh is rejected.
type CredentialRepository struct {
	db       *sql.DB
	provider string
}

// NewCredentialRepository creates a repository scoped to a single provider.
func NewCredentialRepository(db *sql.DB, provider string) *CredentialRepository {
	if provider == "" {
		provider = ProviderSpotify
	}
	return &CredentialRepository{db: db, provider: provider}
}

// Load retrieves the stored credentials, or (nil, nil) when none exist.
func (r *CredentialRepository) Load() (*models.Credentials, error) {
	query := `
		SELECT access_token, refresh_token, expires_at
		FROM credentials
		WHERE provider = ?
	`

	var creds models.Credentials
	err := r.db.QueryRow(query, r.provider).Scan(&creds.AccessToken, &creds.RefreshToken, &creds.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	return &creds, nil
}

// Save upserts the provider's credentials row.
func (r *CredentialRepository) Save(creds *models.Credentials) error {
	query := `
		INSERT INTO credentials (provider, access_token, refresh_token, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(provider) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, r.provider, creds.AccessToken, creds.RefreshToken, creds.ExpiresAt, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// Clear deletes the provider's credentials row. Clearing absent credentials is not an error.
func (r *CredentialRepository) Clear() error {
	_, err := r.db.Exec("DELETE FROM credentials WHERE provider = ?", r.provider)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
