// Spotify API implementation of [Service]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
)

// audioFeaturesBatchSize is the provider's per-call cap on the audio-features endpoint.
const audioFeaturesBatchSize = 100

type followers struct {
	Total int `json:"total"`
}

// spotifyImage represents an image resource.
type spotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// spotifyUser represents a Spotify user profile.
type spotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"`
	Followers   followers      `json:"followers"`
	Images      []spotifyImage `json:"images"`
}

// spotifyArtist represents a Spotify artist.
type spotifyArtist struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Genres []string       `json:"genres"`
	Images []spotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// spotifyAlbum represents a Spotify album.
type spotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []spotifyImage `json:"images"`
}

// spotifyTrack represents a Spotify track.
type spotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []spotifyArtist `json:"artists"`
	Album      spotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

// spotifyAudioFeatures represents a track's audio analysis summary.
type spotifyAudioFeatures struct {
	ID           string  `json:"id"`
	Energy       float64 `json:"energy"`
	Valence      float64 `json:"valence"`
	Danceability float64 `json:"danceability"`
	Acousticness float64 `json:"acousticness"`
}

// spotifyPlaylist represents a created playlist.
type spotifyPlaylist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ExternalURLs map[string]string `json:"external_urls"`
}

// SpotifyService implements [Service] over a [Gateway].
type SpotifyService struct {
	gateway *Gateway
	market  string
	logger  *log.Logger
}

// NewSpotifyService creates a Spotify service issuing all calls through the given gateway.
func NewSpotifyService(gateway *Gateway, market string, logger *log.Logger) *SpotifyService {
	if market == "" {
		market = "ES"
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SpotifyService{gateway: gateway, market: market, logger: logger}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// trackFromAPI flattens a wire track into the domain shape.
func trackFromAPI(t spotifyTrack) models.Track {
	artists := make([]string, 0, len(t.Artists))
	for _, a := range t.Artists {
		artists = append(artists, a.Name)
	}

	var image string
	if len(t.Album.Images) > 0 {
		image = t.Album.Images[0].URL
	}

	return models.Track{
		ID:            t.ID,
		Name:          t.Name,
		Artists:       artists,
		AlbumImageURL: image,
		DurationMS:    t.DurationMS,
	}
}

// Profile retrieves the current authenticated user's profile.
func (s *SpotifyService) Profile(ctx context.Context) (*Profile, error) {
	var user spotifyUser
	if err := s.gateway.Get(ctx, "/me", &user); err != nil {
		return nil, err
	}

	return &Profile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Country:     user.Country,
		Product:     user.Product,
		Followers:   user.Followers.Total,
	}, nil
}

// ArtistTopTracks retrieves an artist's top tracks scoped to the configured market.
func (s *SpotifyService) ArtistTopTracks(ctx context.Context, artistID string) ([]models.Track, error) {
	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", artistID, url.QueryEscape(s.market))

	var response struct {
		Tracks []spotifyTrack `json:"tracks"`
	}
	if err := s.gateway.Get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks))
	for _, t := range response.Tracks {
		tracks = append(tracks, trackFromAPI(t))
	}
	return tracks, nil
}

// SearchTracks searches for tracks matching the query.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrMissingArgument)
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), limit)

	var response struct {
		Tracks struct {
			Items []spotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := s.gateway.Get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks.Items))
	for _, t := range response.Tracks.Items {
		tracks = append(tracks, trackFromAPI(t))
	}
	return tracks, nil
}

// SearchArtists searches for artists matching the query, returned as artist seeds.
func (s *SpotifyService) SearchArtists(ctx context.Context, query string, limit int) ([]models.Seed, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrMissingArgument)
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=artist&limit=%d", url.QueryEscape(query), limit)

	var response struct {
		Artists struct {
			Items []spotifyArtist `json:"items"`
		} `json:"artists"`
	}
	if err := s.gateway.Get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	seeds := make([]models.Seed, 0, len(response.Artists.Items))
	for _, a := range response.Artists.Items {
		seed := models.Seed{Kind: models.SeedArtist, ID: a.ID, Name: a.Name}
		if len(a.Images) > 0 {
			seed.ImageURL = a.Images[0].URL
		}
		seeds = append(seeds, seed)
	}
	return seeds, nil
}

// AudioFeatures retrieves feature vectors for up to any number of track ids,
// chunked into provider-sized batches. Tracks the provider has no analysis
// for are simply absent from the result map.
func (s *SpotifyService) AudioFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error) {
	features := make(map[string]models.AudioFeatures, len(trackIDs))

	for start := 0; start < len(trackIDs); start += audioFeaturesBatchSize {
		end := min(start+audioFeaturesBatchSize, len(trackIDs))
		ids := strings.Join(trackIDs[start:end], ",")
		endpoint := fmt.Sprintf("/audio-features?ids=%s", url.QueryEscape(ids))

		var response struct {
			AudioFeatures []*spotifyAudioFeatures `json:"audio_features"`
		}
		if err := s.gateway.Get(ctx, endpoint, &response); err != nil {
			return nil, err
		}

		for _, f := range response.AudioFeatures {
			if f == nil || f.ID == "" {
				continue
			}
			features[f.ID] = models.AudioFeatures{
				ID:           f.ID,
				Energy:       f.Energy,
				Valence:      f.Valence,
				Danceability: f.Danceability,
				Acousticness: f.Acousticness,
			}
		}
	}

	return features, nil
}

// CreatePlaylist creates a public playlist on the authenticated user's account.
//
// The owner id is always resolved from /me with the current token, never
// accepted from a caller, so a playlist can only be created on the account
// the credentials belong to.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name, description string) (*models.RemotePlaylist, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user id: %w", err)
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(profile.ID))
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      true,
	}

	var created spotifyPlaylist
	if err := s.gateway.Post(ctx, endpoint, body, &created); err != nil {
		return nil, err
	}

	return &models.RemotePlaylist{
		ID:   created.ID,
		Name: created.Name,
		URL:  created.ExternalURLs["spotify"],
	}, nil
}

// AddTracks appends track URIs to a playlist. The provider caps one call at 100 URIs.
func (s *SpotifyService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if len(uris) == 0 {
		return nil
	}
	if len(uris) > 100 {
		return fmt.Errorf("%w: at most 100 URIs per call, got %d", shared.ErrInvalidArgument, len(uris))
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	body := map[string]any{"uris": uris}

	return s.gateway.Post(ctx, endpoint, body, nil)
}
