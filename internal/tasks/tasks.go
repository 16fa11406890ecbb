// package tasks implements the playlist generation pipeline and publishing flow.
//
// The core abstraction is MixEngine, which resolves seeds into candidate tracks,
// filters them against a mood target, and assembles a working playlist.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/services"
	"github.com/desertthunder/tmx/internal/shared"
	"golang.org/x/time/rate"
)

// resolveWorkers bounds concurrent seed resolution.
const resolveWorkers = 5

// defaultRateLimit is the request budget per second against the provider.
const defaultRateLimit = 5.0

// MixOpts contains configuration for a [MixEngine].
type MixOpts struct {
	Tolerance float64     // Mood matching tolerance (default: 0.15)
	MaxSize   int         // Playlist size cap (default: 50)
	RateLimit float64     // Requests per second (default: 5)
	Logger    *log.Logger // Destination for engine logs
}

// GenerateResult contains all data from a generation run.
type GenerateResult struct {
	Tracks         []models.Track // Assembled working playlist
	SeedCount      int            // Seeds that entered resolution
	CandidateCount int            // Unique candidates after aggregation
	FilteredCount  int            // Candidates surviving the mood filter
	FeatureCount   int            // Tracks the provider had audio analysis for
}

// MixEngine runs generation and publishing against a single music service.
//
// Starting a new generation cancels any generation still in flight, so a user
// mashing the generate button only ever pays for the latest run.
type MixEngine struct {
	spotify   services.Service
	limiter   *rate.Limiter
	tolerance float64
	maxSize   int
	logger    *log.Logger

	mu     sync.Mutex
	run    uint64
	cancel context.CancelFunc
}

// NewMixEngine creates a MixEngine with the provided service and options.
func NewMixEngine(spotify services.Service, opts MixOpts) *MixEngine {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = MaxPlaylistSize
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &MixEngine{
		spotify:   spotify,
		limiter:   rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		tolerance: opts.Tolerance,
		maxSize:   opts.MaxSize,
		logger:    opts.Logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *MixEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// begin registers a new run, cancelling whichever run was in flight.
func (e *MixEngine) begin(ctx context.Context) (context.Context, uint64, context.CancelFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		e.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	e.run++
	e.cancel = cancel
	return runCtx, e.run, cancel
}

// finish clears the registered run unless a newer one has taken over.
func (e *MixEngine) finish(run uint64, cancel context.CancelFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.run == run {
		e.cancel = nil
	}
	cancel()
}

// Generate resolves the selection into a working playlist.
//
// Seeds resolve concurrently; any seed that fails contributes nothing rather
// than aborting the run. Candidates are deduplicated by id in first-seen
// order, filtered by the mood target, and truncated to the size cap. When the
// provider returns no audio analysis at all the mood filter steps aside and
// the raw candidates pass through.
func (e *MixEngine) Generate(ctx context.Context, progress chan<- ProgressUpdate, selection models.Selection, mode AssembleMode, existing []models.Track) (*GenerateResult, error) {
	if e.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if selection.Empty() {
		return nil, fmt.Errorf("%w: select at least one seed", shared.ErrInvalidInput)
	}
	if err := selection.Mood.Validate(); err != nil {
		return nil, err
	}

	runCtx, run, cancel := e.begin(ctx)
	defer e.finish(run, cancel)

	seeds := selection.All()
	result := &GenerateResult{SeedCount: len(seeds)}

	lists := e.resolveSeeds(runCtx, progress, seeds)
	if err := runCtx.Err(); err != nil {
		return nil, err
	}

	pool := Aggregate(lists...)
	result.CandidateCount = len(pool)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: seeds produced no candidate tracks", shared.ErrNoResults)
	}

	ids := make([]string, 0, len(pool))
	for _, track := range pool {
		ids = append(ids, track.ID)
	}

	e.sendProgress(progress, fetchFeaturesUpdate(len(ids)))

	var features map[string]models.AudioFeatures
	if err := e.limiter.Wait(runCtx); err != nil {
		return nil, err
	}
	features, err := e.spotify.AudioFeatures(runCtx, ids)
	if err != nil {
		if runCtx.Err() != nil {
			return nil, runCtx.Err()
		}
		// Missing analysis degrades to an unfiltered pool.
		e.logger.Warn("audio features unavailable, skipping mood filter", "error", err)
		features = nil
	}
	result.FeatureCount = len(features)

	filtered := FilterByMood(pool, selection.Mood, features, e.tolerance)
	result.FilteredCount = len(filtered)
	e.sendProgress(progress, filterMoodUpdate(len(filtered), len(pool)))

	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: no tracks matched the mood target", shared.ErrNoResults)
	}

	assembled := AssembleTracks(filtered, mode, existing, e.maxSize)
	result.Tracks = assembled
	e.sendProgress(progress, assembleUpdate(len(assembled)))

	if err := runCtx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
