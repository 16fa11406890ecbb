// package services defines interface Service for the authenticated Spotify API surface
package services

import (
	"context"

	"github.com/desertthunder/tmx/internal/models"
)

// Service defines the provider operations consumed by the mix engine and CLI.
type Service interface {
	// Profile retrieves the authenticated user's profile.
	Profile(ctx context.Context) (*Profile, error)

	// ArtistTopTracks fetches the market-scoped top tracks for an artist seed.
	ArtistTopTracks(ctx context.Context, artistID string) ([]models.Track, error)

	// SearchTracks searches tracks by free-form query (including genre:"..." scoping).
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error)

	// SearchArtists searches artists by name, returned as ready-made artist seeds.
	SearchArtists(ctx context.Context, query string, limit int) ([]models.Seed, error)

	// AudioFeatures fetches feature vectors for the given track ids, keyed by id.
	// The provider caps one call at 100 ids; implementations chunk internally.
	AudioFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error)

	// CreatePlaylist creates an empty playlist owned by the authenticated user.
	CreatePlaylist(ctx context.Context, name, description string) (*models.RemotePlaylist, error)

	// AddTracks appends up to 100 track URIs to a playlist.
	AddTracks(ctx context.Context, playlistID string, uris []string) error

	// Name returns the provider name (e.g. "Spotify")
	Name() string
}

// Profile represents the authenticated user's account.
type Profile struct {
	ID          string
	DisplayName string
	Email       string
	Country     string
	Product     string // premium, free, etc.
	Followers   int
}
