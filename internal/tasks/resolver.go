package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/tmx/internal/models"
)

// DefaultTrackDurationMS is assumed when a promoted track seed carries no duration.
const DefaultTrackDurationMS = 200000

// genreQuery builds the provider search query for a genre seed.
func genreQuery(name string) string {
	return fmt.Sprintf("genre:%q", name)
}

// genreSearchLimit caps how many tracks one genre seed contributes.
const genreSearchLimit = 10

// promoteTrackSeed converts a track seed directly into a single-element
// candidate list without touching the network.
func promoteTrackSeed(seed models.Seed) []models.Track {
	duration := seed.DurationMS
	if duration <= 0 {
		duration = DefaultTrackDurationMS
	}

	var artists []string
	if seed.ArtistName != "" {
		artists = []string{seed.ArtistName}
	}

	return []models.Track{{
		ID:            seed.ID,
		Name:          seed.Name,
		Artists:       artists,
		AlbumImageURL: seed.ImageURL,
		DurationMS:    duration,
	}}
}

type seedJob struct {
	index int
	seed  models.Seed
}

type seedResult struct {
	index  int
	tracks []models.Track
	err    error
}

// resolveSeed fetches the candidate track list for a single seed.
func (e *MixEngine) resolveSeed(ctx context.Context, seed models.Seed) ([]models.Track, error) {
	switch seed.Kind {
	case models.SeedTrack:
		return promoteTrackSeed(seed), nil
	case models.SeedArtist:
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return e.spotify.ArtistTopTracks(ctx, seed.ID)
	case models.SeedGenre:
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return e.spotify.SearchTracks(ctx, genreQuery(seed.Name), genreSearchLimit)
	default:
		return nil, fmt.Errorf("unknown seed kind %q", seed.Kind)
	}
}

// resolveSeeds resolves every seed concurrently through a bounded worker pool.
//
// The returned slice is indexed like the input: lists[i] holds the candidates
// for seeds[i], so downstream aggregation sees seeds in selection order no
// matter which worker finished first. A seed that fails to resolve degrades
// to an empty list rather than aborting the whole generation.
func (e *MixEngine) resolveSeeds(ctx context.Context, progress chan<- ProgressUpdate, seeds []models.Seed) [][]models.Track {
	total := len(seeds)
	lists := make([][]models.Track, total)
	if total == 0 {
		return lists
	}

	workers := min(resolveWorkers, total)
	jobs := make(chan seedJob, total)
	results := make(chan seedResult, total)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					results <- seedResult{index: job.index, err: ctx.Err()}
					continue
				default:
				}

				tracks, err := e.resolveSeed(ctx, job.seed)
				results <- seedResult{index: job.index, tracks: tracks, err: err}
			}
		}()
	}

	for i, seed := range seeds {
		e.sendProgress(progress, resolveSeedUpdate(i+1, total, seed))
		jobs <- seedJob{index: i, seed: seed}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			e.logger.Warn("seed resolution failed", "seed", seeds[res.index].Name, "error", res.err)
			e.sendProgress(progress, seedFailedUpdate(res.index+1, total, seeds[res.index], res.err))
			continue
		}
		lists[res.index] = res.tracks
	}

	return lists
}
