package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/tmx/internal/shared"
)

// Track is a candidate track under consideration for the working playlist.
type Track struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Artists       []string `json:"artists"`
	AlbumImageURL string   `json:"album_image_url,omitempty"`
	DurationMS    int      `json:"duration_ms"`
}

// Artist returns the primary artist name, or an empty string.
func (t Track) Artist() string {
	if len(t.Artists) == 0 {
		return ""
	}
	return t.Artists[0]
}

// URI returns the track's provider URI, the form required for playlist writes.
func (t Track) URI() string {
	return TrackURI(t.ID)
}

// TrackURI builds a provider track URI from an id.
func TrackURI(id string) string {
	return "spotify:track:" + id
}

// AudioFeatures is the provider-computed mood vector for a track, keyed by track id.
type AudioFeatures struct {
	ID           string  `json:"id"`
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Danceability float64 `json:"danceability"`
	Acousticness float64 `json:"acousticness"`
}

// MoodTarget holds the midpoints of the user's desired audio feature ranges.
// All values are in [0.0, 1.0].
type MoodTarget struct {
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Danceability float64 `json:"danceability"`
	Acousticness float64 `json:"acousticness"`
}

// DefaultMood returns the neutral midpoint target.
func DefaultMood() MoodTarget {
	return MoodTarget{Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5}
}

// Validate checks that every component is within [0, 1].
func (m MoodTarget) Validate() error {
	for name, v := range map[string]float64{
		"energy":       m.Energy,
		"valence":      m.Valence,
		"danceability": m.Danceability,
		"acousticness": m.Acousticness,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be in [0, 1], got %v", shared.ErrInvalidInput, name, v)
		}
	}
	return nil
}

// Credentials holds the OAuth token set for a provider session.
//
// Expiry is tracked by absolute instant rather than a TTL counter so
// validity survives process suspension without drift.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ExpiresWithin reports whether the access token expires at or before now+margin.
func (c Credentials) ExpiresWithin(now time.Time, margin time.Duration) bool {
	return !now.Before(c.ExpiresAt.Add(-margin))
}

// PlaylistExport is the serialized form of a working playlist.
//
// The working playlist only lives for a session; exporting is the explicit
// way to keep it, and an export file can be published later.
type PlaylistExport struct {
	Name        string     `json:"name"`
	GeneratedAt time.Time  `json:"generated_at"`
	Mood        MoodTarget `json:"mood"`
	Tracks      []Track    `json:"tracks"`
}

// RemotePlaylist describes a playlist created on the provider.
type RemotePlaylist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	TrackCount int    `json:"track_count"`
}
