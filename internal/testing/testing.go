// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/services"
)

// MockService is a configurable test double for [services.Service].
//
// Each behavior hooks into a function field; nil fields fall back to benign
// zero-value responses so tests only wire what they exercise.
type MockService struct {
	ProfileFunc         func(ctx context.Context) (*services.Profile, error)
	ArtistTopTracksFunc func(ctx context.Context, artistID string) ([]models.Track, error)
	SearchTracksFunc    func(ctx context.Context, query string, limit int) ([]models.Track, error)
	SearchArtistsFunc   func(ctx context.Context, query string, limit int) ([]models.Seed, error)
	AudioFeaturesFunc   func(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error)
	CreatePlaylistFunc  func(ctx context.Context, name, description string) (*models.RemotePlaylist, error)
	AddTracksFunc       func(ctx context.Context, playlistID string, uris []string) error
}

func (m *MockService) Profile(ctx context.Context) (*services.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx)
	}
	return &services.Profile{ID: "mock-user"}, nil
}

func (m *MockService) ArtistTopTracks(ctx context.Context, artistID string) ([]models.Track, error) {
	if m.ArtistTopTracksFunc != nil {
		return m.ArtistTopTracksFunc(ctx, artistID)
	}
	return nil, nil
}

func (m *MockService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Track, error) {
	if m.SearchTracksFunc != nil {
		return m.SearchTracksFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *MockService) SearchArtists(ctx context.Context, query string, limit int) ([]models.Seed, error) {
	if m.SearchArtistsFunc != nil {
		return m.SearchArtistsFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *MockService) AudioFeatures(ctx context.Context, trackIDs []string) (map[string]models.AudioFeatures, error) {
	if m.AudioFeaturesFunc != nil {
		return m.AudioFeaturesFunc(ctx, trackIDs)
	}
	return map[string]models.AudioFeatures{}, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, name, description string) (*models.RemotePlaylist, error) {
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, name, description)
	}
	return &models.RemotePlaylist{ID: "mock-playlist", Name: name}, nil
}

func (m *MockService) AddTracks(ctx context.Context, playlistID string, uris []string) error {
	if m.AddTracksFunc != nil {
		return m.AddTracksFunc(ctx, playlistID, uris)
	}
	return nil
}

func (m *MockService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
