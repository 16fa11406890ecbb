package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
	tu "github.com/desertthunder/tmx/internal/testing"
)

func makeTracks(ids ...string) []models.Track {
	tracks := make([]models.Track, 0, len(ids))
	for _, id := range ids {
		tracks = append(tracks, models.Track{ID: id, Name: "Track " + id, Artists: []string{"Artist"}, DurationMS: 180000})
	}
	return tracks
}

func TestAggregate(t *testing.T) {
	t.Run("deduplicates by id keeping first-seen order", func(t *testing.T) {
		a := makeTracks("1", "2", "3")
		b := makeTracks("3", "4", "2", "5")

		pool := Aggregate(a, b)

		if len(pool) != 5 {
			t.Fatalf("expected 5 unique tracks, got %d", len(pool))
		}
		for i, want := range []string{"1", "2", "3", "4", "5"} {
			if pool[i].ID != want {
				t.Errorf("position %d: expected id %s, got %s", i, want, pool[i].ID)
			}
		}
	})

	t.Run("later occurrence overwrites values in place", func(t *testing.T) {
		a := []models.Track{{ID: "1", Name: "old name"}}
		b := []models.Track{{ID: "1", Name: "new name", DurationMS: 90000}}

		pool := Aggregate(a, b)

		if len(pool) != 1 {
			t.Fatalf("expected 1 track, got %d", len(pool))
		}
		if pool[0].Name != "new name" {
			t.Errorf("expected last write to win, got %q", pool[0].Name)
		}
		if pool[0].DurationMS != 90000 {
			t.Errorf("expected duration 90000, got %d", pool[0].DurationMS)
		}
	})

	t.Run("drops tracks with empty ids", func(t *testing.T) {
		pool := Aggregate([]models.Track{{ID: "", Name: "ghost"}, {ID: "1"}})
		if len(pool) != 1 || pool[0].ID != "1" {
			t.Errorf("expected only track 1, got %v", pool)
		}
	})

	t.Run("is idempotent over its own output", func(t *testing.T) {
		pool := Aggregate(makeTracks("1", "2"), makeTracks("2", "3"))
		again := Aggregate(pool)

		if len(again) != len(pool) {
			t.Fatalf("expected %d tracks, got %d", len(pool), len(again))
		}
		for i := range pool {
			if again[i].ID != pool[i].ID {
				t.Errorf("position %d changed: %s vs %s", i, pool[i].ID, again[i].ID)
			}
		}
	})

	t.Run("overlapping seed lists collapse to unique pool", func(t *testing.T) {
		// three lists of 10 with pairwise overlap of 1 track
		var lists [][]models.Track
		next := 0
		for l := 0; l < 3; l++ {
			var list []models.Track
			if l > 0 {
				list = append(list, models.Track{ID: fmt.Sprintf("t%d", next-1)})
			}
			for len(list) < 10 {
				list = append(list, models.Track{ID: fmt.Sprintf("t%d", next)})
				next++
			}
			lists = append(lists, list)
		}

		pool := Aggregate(lists...)
		if len(pool) != 28 {
			t.Errorf("expected 28 unique tracks, got %d", len(pool))
		}
	})

	t.Run("empty input yields empty pool", func(t *testing.T) {
		if pool := Aggregate(); len(pool) != 0 {
			t.Errorf("expected empty pool, got %d tracks", len(pool))
		}
	})
}

func TestFilterByMood(t *testing.T) {
	target := models.MoodTarget{Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5}

	features := func(id string, e, v, d, a float64) map[string]models.AudioFeatures {
		return map[string]models.AudioFeatures{
			id: {ID: id, Energy: e, Valence: v, Danceability: d, Acousticness: a},
		}
	}

	t.Run("keeps tracks within tolerance on all dimensions", func(t *testing.T) {
		tracks := makeTracks("1")
		kept := FilterByMood(tracks, target, features("1", 0.6, 0.4, 0.55, 0.3), DefaultTolerance)
		if len(kept) != 1 {
			t.Errorf("expected track kept, got %d", len(kept))
		}
	})

	t.Run("boundary exactly at tolerance passes", func(t *testing.T) {
		tracks := makeTracks("1")
		kept := FilterByMood(tracks, target, features("1", 0.65, 0.35, 0.5, 0.65), DefaultTolerance)
		if len(kept) != 1 {
			t.Errorf("expected boundary track kept, got %d", len(kept))
		}
	})

	t.Run("excludes tracks outside tolerance", func(t *testing.T) {
		tracks := makeTracks("1")
		for name, f := range map[string]map[string]models.AudioFeatures{
			"energy too high":      features("1", 0.66, 0.5, 0.5, 0.5),
			"valence too low":      features("1", 0.5, 0.34, 0.5, 0.5),
			"danceability too low": features("1", 0.5, 0.5, 0.1, 0.5),
		} {
			if kept := FilterByMood(tracks, target, f, DefaultTolerance); len(kept) != 0 {
				t.Errorf("%s: expected exclusion, kept %d", name, len(kept))
			}
		}
	})

	t.Run("acousticness only has an upper bound", func(t *testing.T) {
		tracks := makeTracks("1")

		// far below target still passes
		kept := FilterByMood(tracks, models.MoodTarget{Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.9},
			features("1", 0.5, 0.5, 0.5, 0.0), DefaultTolerance)
		if len(kept) != 1 {
			t.Errorf("expected electronic track to pass a high acousticness target")
		}

		// above target+tolerance fails
		kept = FilterByMood(tracks, models.MoodTarget{Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.2},
			features("1", 0.5, 0.5, 0.5, 0.4), DefaultTolerance)
		if len(kept) != 0 {
			t.Errorf("expected acoustic track above the ceiling to be excluded")
		}
	})

	t.Run("empty features map is a no-op", func(t *testing.T) {
		tracks := makeTracks("1", "2", "3")
		kept := FilterByMood(tracks, target, nil, DefaultTolerance)
		if len(kept) != 3 {
			t.Errorf("expected filter no-op, got %d of 3", len(kept))
		}
	})

	t.Run("track missing from non-empty map is excluded", func(t *testing.T) {
		tracks := makeTracks("1", "2")
		kept := FilterByMood(tracks, target, features("1", 0.5, 0.5, 0.5, 0.5), DefaultTolerance)
		if len(kept) != 1 || kept[0].ID != "1" {
			t.Errorf("expected only analyzed track kept, got %v", kept)
		}
	})

	t.Run("loosening tolerance never shrinks the result", func(t *testing.T) {
		tracks := makeTracks("1", "2", "3")
		feats := map[string]models.AudioFeatures{
			"1": {ID: "1", Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5},
			"2": {ID: "2", Energy: 0.68, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5},
			"3": {ID: "3", Energy: 0.9, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5},
		}

		narrow := FilterByMood(tracks, target, feats, 0.15)
		wide := FilterByMood(tracks, target, feats, 0.25)
		if len(wide) < len(narrow) {
			t.Errorf("wider tolerance kept %d, narrower kept %d", len(wide), len(narrow))
		}
	})
}

func TestAssembleTracks(t *testing.T) {
	t.Run("replace truncates to the cap", func(t *testing.T) {
		var filtered []models.Track
		for i := 0; i < 80; i++ {
			filtered = append(filtered, models.Track{ID: fmt.Sprintf("t%d", i)})
		}

		assembled := AssembleTracks(filtered, Replace, makeTracks("x"), 0)
		if len(assembled) != MaxPlaylistSize {
			t.Fatalf("expected %d tracks, got %d", MaxPlaylistSize, len(assembled))
		}
		if assembled[0].ID != "t0" {
			t.Errorf("expected order preserved, first is %s", assembled[0].ID)
		}
	})

	t.Run("append skips duplicates and keeps existing first", func(t *testing.T) {
		existing := makeTracks("1", "2")
		filtered := makeTracks("2", "3")

		assembled := AssembleTracks(filtered, Append, existing, 50)
		if len(assembled) != 3 {
			t.Fatalf("expected 3 tracks, got %d", len(assembled))
		}
		for i, want := range []string{"1", "2", "3"} {
			if assembled[i].ID != want {
				t.Errorf("position %d: expected %s, got %s", i, want, assembled[i].ID)
			}
		}
	})

	t.Run("append truncates past the cap", func(t *testing.T) {
		existing := make([]models.Track, 0, 48)
		for i := 0; i < 48; i++ {
			existing = append(existing, models.Track{ID: fmt.Sprintf("e%d", i)})
		}
		assembled := AssembleTracks(makeTracks("a", "b", "c"), Append, existing, 50)
		if len(assembled) != 50 {
			t.Errorf("expected 50 tracks, got %d", len(assembled))
		}
	})

	t.Run("replace does not alias the input slice", func(t *testing.T) {
		filtered := makeTracks("1", "2")
		assembled := AssembleTracks(filtered, Replace, nil, 50)
		assembled[0].ID = "mutated"
		if filtered[0].ID == "mutated" {
			t.Error("assembled playlist shares backing array with input")
		}
	})
}

func TestChunkURIs(t *testing.T) {
	uris := func(n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("spotify:track:%d", i)
		}
		return out
	}

	t.Run("splits 130 URIs into 100 and 30", func(t *testing.T) {
		chunks := chunkURIs(uris(130), publishChunkSize)
		if len(chunks) != 2 {
			t.Fatalf("expected 2 chunks, got %d", len(chunks))
		}
		if len(chunks[0]) != 100 || len(chunks[1]) != 30 {
			t.Errorf("expected sizes 100 and 30, got %d and %d", len(chunks[0]), len(chunks[1]))
		}
	})

	t.Run("exact multiple yields full chunks", func(t *testing.T) {
		chunks := chunkURIs(uris(200), publishChunkSize)
		if len(chunks) != 2 || len(chunks[1]) != 100 {
			t.Errorf("expected 2 full chunks, got %d", len(chunks))
		}
	})

	t.Run("empty input yields no chunks", func(t *testing.T) {
		if chunks := chunkURIs(nil, publishChunkSize); chunks != nil {
			t.Errorf("expected nil, got %d chunks", len(chunks))
		}
	})
}

func TestDefaultPlaylistName(t *testing.T) {
	now := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	name := DefaultPlaylistName(now, 42)
	if name != "Taste Mixer (07 Mar - 42 tracks)" {
		t.Errorf("unexpected default name: %q", name)
	}
}

func TestPhaseString(t *testing.T) {
	for phase, want := range map[Phase]string{
		ResolveSeeds:   "resolve_seeds",
		FetchFeatures:  "fetch_features",
		FilterMood:     "filter_mood",
		Assemble:       "assemble",
		CreatePlaylist: "create_playlist",
		AddTracks:      "add_tracks",
		Phase(99):      "",
	} {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}

func TestPromoteTrackSeed(t *testing.T) {
	t.Run("carries seed metadata through", func(t *testing.T) {
		seed := models.Seed{Kind: models.SeedTrack, ID: "abc", Name: "Song", ArtistName: "Band", DurationMS: 123456}
		tracks := promoteTrackSeed(seed)
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		track := tracks[0]
		if track.ID != "abc" || track.Name != "Song" || track.Artist() != "Band" || track.DurationMS != 123456 {
			t.Errorf("unexpected promotion: %+v", track)
		}
	})

	t.Run("missing duration falls back to default", func(t *testing.T) {
		tracks := promoteTrackSeed(models.Seed{Kind: models.SeedTrack, ID: "abc", Name: "Song"})
		if tracks[0].DurationMS != DefaultTrackDurationMS {
			t.Errorf("expected default duration %d, got %d", DefaultTrackDurationMS, tracks[0].DurationMS)
		}
	})
}

func TestGenerate(t *testing.T) {
	neutral := models.MoodTarget{Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5}

	selectionWith := func(seeds ...models.Seed) models.Selection {
		sel := models.Selection{Mood: neutral}
		for _, seed := range seeds {
			if err := sel.Add(seed); err != nil {
				t.Fatalf("failed to add seed: %v", err)
			}
		}
		return sel
	}

	matching := func(ids ...string) map[string]models.AudioFeatures {
		feats := make(map[string]models.AudioFeatures, len(ids))
		for _, id := range ids {
			feats[id] = models.AudioFeatures{ID: id, Energy: 0.5, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5}
		}
		return feats
	}

	t.Run("runs the full pipeline", func(t *testing.T) {
		svc := &tu.MockService{
			ArtistTopTracksFunc: func(ctx context.Context, artistID string) ([]models.Track, error) {
				return makeTracks("1", "2", "3"), nil
			},
			AudioFeaturesFunc: func(ctx context.Context, ids []string) (map[string]models.AudioFeatures, error) {
				feats := matching("1", "3")
				feats["2"] = models.AudioFeatures{ID: "2", Energy: 0.95, Valence: 0.5, Danceability: 0.5, Acousticness: 0.5}
				return feats, nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{RateLimit: 1000})
		sel := selectionWith(models.Seed{Kind: models.SeedArtist, ID: "a1", Name: "Artist"})

		result, err := engine.Generate(context.Background(), nil, sel, Replace, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.CandidateCount != 3 {
			t.Errorf("expected 3 candidates, got %d", result.CandidateCount)
		}
		if result.FilteredCount != 2 {
			t.Errorf("expected 2 filtered, got %d", result.FilteredCount)
		}
		if len(result.Tracks) != 2 {
			t.Errorf("expected 2 assembled tracks, got %d", len(result.Tracks))
		}
	})

	t.Run("track seeds resolve without the network", func(t *testing.T) {
		called := false
		svc := &tu.MockService{
			ArtistTopTracksFunc: func(ctx context.Context, artistID string) ([]models.Track, error) {
				called = true
				return nil, nil
			},
			AudioFeaturesFunc: func(ctx context.Context, ids []string) (map[string]models.AudioFeatures, error) {
				return matching(ids...), nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{RateLimit: 1000})
		sel := selectionWith(models.Seed{Kind: models.SeedTrack, ID: "t1", Name: "Song"})

		result, err := engine.Generate(context.Background(), nil, sel, Replace, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if called {
			t.Error("track seed hit the artist endpoint")
		}
		if len(result.Tracks) != 1 || result.Tracks[0].ID != "t1" {
			t.Errorf("expected promoted track seed, got %v", result.Tracks)
		}
	})

	t.Run("genre seeds search with a quoted genre query", func(t *testing.T) {
		var gotQuery string
		svc := &tu.MockService{
			SearchTracksFunc: func(ctx context.Context, query string, limit int) ([]models.Track, error) {
				gotQuery = query
				return makeTracks("g1"), nil
			},
			AudioFeaturesFunc: func(ctx context.Context, ids []string) (map[string]models.AudioFeatures, error) {
				return matching(ids...), nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{RateLimit: 1000})
		sel := selectionWith(models.GenreSeed("latin jazz"))

		if _, err := engine.Generate(context.Background(), nil, sel, Replace, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotQuery != `genre:"latin jazz"` {
			t.Errorf("unexpected genre query: %q", gotQuery)
		}
	})

	t.Run("failed seed degrades instead of aborting", func(t *testing.T) {
		svc := &tu.MockService{
			ArtistTopTracksFunc: func(ctx context.Context, artistID string) ([]models.Track, error) {
				if artistID == "bad" {
					return nil, errors.New("boom")
				}
				return makeTracks("1"), nil
			},
			AudioFeaturesFunc: func(ctx context.Context, ids []string) (map[string]models.AudioFeatures, error) {
				return matching(ids...), nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{RateLimit: 1000})
		sel := selectionWith(
			models.Seed{Kind: models.SeedArtist, ID: "good", Name: "Good"},
			models.Seed{Kind: models.SeedArtist, ID: "bad", Name: "Bad"},
		)

		result, err := engine.Generate(context.Background(), nil, sel, Replace, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Tracks) != 1 {
			t.Errorf("expected the surviving seed's track, got %d", len(result.Tracks))
		}
	})

	t.Run("features failure passes candidates through unfiltered", func(t *testing.T) {
		svc := &tu.MockService{
			ArtistTopTracksFunc: func(ctx context.Context, artistID string) ([]models.Track, error) {
				return makeTracks("1", "2"), nil
			},
			AudioFeaturesFunc: func(ctx context.Context, ids []string) (map[string]models.AudioFeatures, error) {
				return nil, errors.New("analysis unavailable")
			},
		}

		engine := NewMixEngine(svc, MixOpts{RateLimit: 1000, Logger: shared.NewLogger(io.Discard)})
		sel := selectionWith(models.Seed{Kind: models.SeedArtist, ID: "a1", Name: "Artist"})

		result, err := engine.Generate(context.Background(), nil, sel, Replace, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Tracks) != 2 {
			t.Errorf("expected unfiltered pool, got %d tracks", len(result.Tracks))
		}
	})

	t.Run("empty selection is rejected", func(t *testing.T) {
		engine := NewMixEngine(&tu.MockService{}, MixOpts{})
		_, err := engine.Generate(context.Background(), nil, models.Selection{Mood: neutral}, Replace, nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("no candidates at all is ErrNoResults", func(t *testing.T) {
		engine := NewMixEngine(&tu.MockService{}, MixOpts{RateLimit: 1000})
		sel := selectionWith(models.Seed{Kind: models.SeedArtist, ID: "a1", Name: "Artist"})

		_, err := engine.Generate(context.Background(), nil, sel, Replace, nil)
		if !errors.Is(err, shared.ErrNoResults) {
			t.Errorf("expected ErrNoResults, got %v", err)
		}
	})

	t.Run("nil service is rejected", func(t *testing.T) {
		engine := NewMixEngine(nil, MixOpts{})
		sel := selectionWith(models.Seed{Kind: models.SeedTrack, ID: "t1", Name: "Song"})
		_, err := engine.Generate(context.Background(), nil, sel, Replace, nil)
		if !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("new run cancels the one in flight", func(t *testing.T) {
		release := make(chan struct{})
		var once sync.Once
		firstCtx := make(chan context.Context, 1)

		svc := &tu.MockService{
			ArtistTopTracksFunc: func(ctx context.Context, artistID string) ([]models.Track, error) {
				once.Do(func() {
					firstCtx <- ctx
					<-release
				})
				return makeTracks("1"), nil
			},
			AudioFeaturesFunc: func(ctx context.Context, ids []string) (map[string]models.AudioFeatures, error) {
				return matching(ids...), nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{RateLimit: 1000})
		sel := selectionWith(models.Seed{Kind: models.SeedArtist, ID: "a1", Name: "Artist"})

		go engine.Generate(context.Background(), nil, sel, Replace, nil)

		ctx := <-firstCtx

		result, err := engine.Generate(context.Background(), nil, sel, Replace, nil)
		close(release)
		if err != nil {
			t.Fatalf("second run failed: %v", err)
		}
		if len(result.Tracks) != 1 {
			t.Errorf("second run expected 1 track, got %d", len(result.Tracks))
		}

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Error("first run's context was never cancelled")
		}
	})
}

func TestPublish(t *testing.T) {
	t.Run("creates playlist and adds all chunks", func(t *testing.T) {
		var (
			mu      sync.Mutex
			batches [][]string
			gotName string
		)

		svc := &tu.MockService{
			CreatePlaylistFunc: func(ctx context.Context, name, description string) (*models.RemotePlaylist, error) {
				gotName = name
				if description != PlaylistDescription {
					t.Errorf("unexpected description: %q", description)
				}
				return &models.RemotePlaylist{ID: "pl1", Name: name, URL: "https://open.spotify.com/playlist/pl1"}, nil
			},
			AddTracksFunc: func(ctx context.Context, playlistID string, uris []string) error {
				mu.Lock()
				batches = append(batches, uris)
				mu.Unlock()
				return nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{})
		tracks := make([]models.Track, 130)
		for i := range tracks {
			tracks[i] = models.Track{ID: fmt.Sprintf("t%d", i)}
		}

		result, err := engine.Publish(context.Background(), nil, "My Mix", tracks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotName != "My Mix" {
			t.Errorf("expected given name used, got %q", gotName)
		}
		if len(batches) != 2 {
			t.Fatalf("expected 2 batches, got %d", len(batches))
		}
		if result.AddedTracks != 130 || result.FailedChunks != 0 {
			t.Errorf("unexpected result: %+v", result)
		}
		for _, batch := range batches {
			if len(batch) > 100 {
				t.Errorf("batch exceeds 100 URIs: %d", len(batch))
			}
			if !strings.HasPrefix(batch[0], "spotify:track:") {
				t.Errorf("expected track URIs, got %q", batch[0])
			}
		}
	})

	t.Run("empty name falls back to the dated default", func(t *testing.T) {
		var gotName string
		svc := &tu.MockService{
			CreatePlaylistFunc: func(ctx context.Context, name, description string) (*models.RemotePlaylist, error) {
				gotName = name
				return &models.RemotePlaylist{ID: "pl1", Name: name}, nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{})
		if _, err := engine.Publish(context.Background(), nil, "  ", makeTracks("1", "2")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := DefaultPlaylistName(time.Now(), 2)
		if gotName != want {
			t.Errorf("expected default name %q, got %q", want, gotName)
		}
	})

	t.Run("partial chunk failure reports which batches were lost", func(t *testing.T) {
		svc := &tu.MockService{
			AddTracksFunc: func(ctx context.Context, playlistID string, uris []string) error {
				// fail the short trailing batch only
				if len(uris) < 100 {
					return errors.New("rate limited")
				}
				return nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{Logger: shared.NewLogger(io.Discard)})
		tracks := make([]models.Track, 130)
		for i := range tracks {
			tracks[i] = models.Track{ID: fmt.Sprintf("t%d", i)}
		}

		result, err := engine.Publish(context.Background(), nil, "Mix", tracks)
		if err == nil {
			t.Fatal("expected partial publish error")
		}
		if !errors.Is(err, shared.ErrPartialPublish) {
			t.Errorf("expected ErrPartialPublish, got %v", err)
		}

		var partial *PartialPublishError
		if !errors.As(err, &partial) {
			t.Fatalf("expected PartialPublishError, got %T", err)
		}
		if len(partial.Failures) != 1 || partial.Failures[0].Chunk != 2 || partial.Failures[0].Size != 30 {
			t.Errorf("unexpected failure detail: %+v", partial.Failures)
		}
		if result.AddedTracks != 100 || result.FailedChunks != 1 {
			t.Errorf("unexpected result: %+v", result)
		}
	})

	t.Run("create failure aborts before any tracks are added", func(t *testing.T) {
		added := false
		svc := &tu.MockService{
			CreatePlaylistFunc: func(ctx context.Context, name, description string) (*models.RemotePlaylist, error) {
				return nil, errors.New("forbidden")
			},
			AddTracksFunc: func(ctx context.Context, playlistID string, uris []string) error {
				added = true
				return nil
			},
		}

		engine := NewMixEngine(svc, MixOpts{})
		if _, err := engine.Publish(context.Background(), nil, "Mix", makeTracks("1")); err == nil {
			t.Fatal("expected error")
		}
		if added {
			t.Error("tracks were added despite create failure")
		}
	})

	t.Run("empty playlist is rejected", func(t *testing.T) {
		engine := NewMixEngine(&tu.MockService{}, MixOpts{})
		_, err := engine.Publish(context.Background(), nil, "Mix", nil)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}
