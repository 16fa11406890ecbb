package tasks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
)

// publishChunkSize caps one add-tracks call; the provider rejects larger batches.
const publishChunkSize = 100

// PlaylistDescription is attached to every published playlist.
const PlaylistDescription = "Generated by Taste Mixer"

// DefaultPlaylistName builds the fallback playlist name when the user gives none.
func DefaultPlaylistName(now time.Time, trackCount int) string {
	return fmt.Sprintf("Taste Mixer (%s - %d tracks)", now.Format("02 Jan"), trackCount)
}

// PublishResult summarizes a publish run.
type PublishResult struct {
	PlaylistID   string `json:"playlist_id"`
	PlaylistName string `json:"playlist_name"`
	PlaylistURL  string `json:"playlist_url"`
	TotalTracks  int    `json:"total_tracks"`
	AddedTracks  int    `json:"added_tracks"`
	TotalChunks  int    `json:"total_chunks"`
	FailedChunks int    `json:"failed_chunks"`
}

// ChunkFailure records one failed add-tracks batch.
type ChunkFailure struct {
	Chunk int   // 1-based chunk number
	Size  int   // URIs in the failed chunk
	Err   error // underlying request error
}

// PartialPublishError reports a publish where the playlist was created but
// one or more track batches failed to land.
type PartialPublishError struct {
	Failures []ChunkFailure
}

func (e *PartialPublishError) Error() string {
	chunks := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		chunks = append(chunks, fmt.Sprintf("chunk %d (%d tracks): %v", f.Chunk, f.Size, f.Err))
	}
	return fmt.Sprintf("%v: %s", shared.ErrPartialPublish, strings.Join(chunks, "; "))
}

func (e *PartialPublishError) Unwrap() error {
	return shared.ErrPartialPublish
}

// chunkURIs splits uris into provider-sized batches, preserving order.
func chunkURIs(uris []string, size int) [][]string {
	if size <= 0 {
		size = publishChunkSize
	}
	var chunks [][]string
	for start := 0; start < len(uris); start += size {
		end := min(start+size, len(uris))
		chunks = append(chunks, uris[start:end])
	}
	return chunks
}

// Publish creates a playlist on the authenticated user's account and fills it
// with the given tracks.
//
// The owner is always the account behind the current credentials; the service
// resolves it from the profile endpoint, so a stale or tampered user id can
// never redirect the playlist. Tracks are added in batches of up to 100 URIs,
// all batches in flight at once. If some batches fail the playlist still
// exists; the returned [PartialPublishError] says exactly which chunks were
// lost so the caller can retry them.
func (e *MixEngine) Publish(ctx context.Context, progress chan<- ProgressUpdate, name string, tracks []models.Track) (*PublishResult, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%w: cannot publish an empty playlist", shared.ErrInvalidInput)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlaylistName(time.Now(), len(tracks))
	}

	e.sendProgress(progress, creatingPlaylistUpdate(name))

	playlist, err := e.spotify.CreatePlaylist(ctx, name, PlaylistDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	e.sendProgress(progress, createPlaylistUpdate(playlist))

	uris := make([]string, 0, len(tracks))
	for _, track := range tracks {
		uris = append(uris, track.URI())
	}

	chunks := chunkURIs(uris, publishChunkSize)
	result := &PublishResult{
		PlaylistID:   playlist.ID,
		PlaylistName: playlist.Name,
		PlaylistURL:  playlist.URL,
		TotalTracks:  len(tracks),
		TotalChunks:  len(chunks),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []ChunkFailure
	)

	for i, chunk := range chunks {
		e.sendProgress(progress, addTracksUpdate(i+1, len(chunks), len(chunk)))

		wg.Add(1)
		go func(num int, batch []string) {
			defer wg.Done()
			if err := e.spotify.AddTracks(ctx, playlist.ID, batch); err != nil {
				mu.Lock()
				failures = append(failures, ChunkFailure{Chunk: num, Size: len(batch), Err: err})
				mu.Unlock()
				return
			}
			mu.Lock()
			result.AddedTracks += len(batch)
			mu.Unlock()
		}(i+1, chunk)
	}
	wg.Wait()

	if len(failures) > 0 {
		sort.Slice(failures, func(a, b int) bool { return failures[a].Chunk < failures[b].Chunk })
		result.FailedChunks = len(failures)
		e.logger.Warn("publish completed with failed chunks",
			"playlist", playlist.ID, "failed", len(failures), "total", len(chunks))
		return result, &PartialPublishError{Failures: failures}
	}

	return result, nil
}
