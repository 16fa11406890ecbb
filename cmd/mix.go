package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/tmx/internal/formatter"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
	"github.com/desertthunder/tmx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MixGenerate runs the generation pipeline against the stored selection.
//
// The result is printed for review and held nowhere else; pass --output to
// export it or --publish to create the playlist in the same run. With
// --append the tracks from a previous export (--from) come first and new
// tracks fill the remaining slots.
func (r *Runner) MixGenerate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}
	if r.engine == nil {
		return fmt.Errorf("%w: mix engine not initialized", shared.ErrServiceUnavailable)
	}

	selection, err := r.selection()
	if err != nil {
		return err
	}

	name := cmd.String("name")
	mode := tasks.Replace
	var existing []models.Track
	if cmd.Bool("append") {
		from := cmd.String("from")
		if from == "" {
			return fmt.Errorf("%w: --append requires --from <export>", shared.ErrMissingArgument)
		}
		export, err := formatter.ReadExport(from)
		if err != nil {
			return err
		}
		mode = tasks.Append
		existing = export.Tracks
		if name == "" {
			name = export.Name
		}
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := r.engine.Generate(ctx, progress, selection, mode, existing)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		if err := r.writeJSON(result.Tracks, true); err != nil {
			return err
		}
	} else {
		r.writePlainHeader(fmt.Sprintf("Generated %d tracks", len(result.Tracks)))
		r.writePlain("Seeds: %d  Candidates: %d  After mood filter: %d\n\n",
			result.SeedCount, result.CandidateCount, result.FilteredCount)
		for i, track := range result.Tracks {
			r.writePlain("%d. %s - %s [%s]\n",
				i+1, track.Artist(), track.Name, shared.FormatDuration(track.DurationMS))
		}
	}

	if output := cmd.String("output"); output != "" {
		export := &models.PlaylistExport{
			Name:        name,
			GeneratedAt: time.Now().UTC(),
			Mood:        selection.Mood,
			Tracks:      result.Tracks,
		}
		if err := formatter.WriteExport(export, cmd.String("format"), output); err != nil {
			return err
		}
		r.writePlain("\n✓ Exported to %s\n", output)
	}

	if cmd.Bool("publish") {
		return r.publishTracks(ctx, name, result.Tracks)
	}

	if cmd.String("output") == "" {
		r.writePlain("\nThe working playlist is not saved. Re-run with --output or --publish to keep it.\n")
	}
	return nil
}

// MixPublish publishes a previously exported playlist.
func (r *Runner) MixPublish(ctx context.Context, cmd *cli.Command) error {
	if r.engine == nil {
		return fmt.Errorf("%w: mix engine not initialized", shared.ErrServiceUnavailable)
	}

	export, err := formatter.ReadExport(cmd.String("from"))
	if err != nil {
		return err
	}

	name := cmd.String("name")
	if name == "" {
		name = export.Name
	}

	return r.publishTracks(ctx, name, export.Tracks)
}

// publishTracks runs the publish flow and reports per-chunk failures.
func (r *Runner) publishTracks(ctx context.Context, name string, tracks []models.Track) error {
	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	result, err := r.engine.Publish(ctx, progress, name, tracks)
	close(progress)
	<-done

	if err != nil {
		var partial *tasks.PartialPublishError
		if errors.As(err, &partial) && result != nil {
			r.writePlainln("⚠ Playlist created, but some tracks failed to land")
			r.writePlain("Playlist: %s\n", result.PlaylistName)
			r.writePlain("Added: %d/%d tracks (%d of %d batches failed)\n",
				result.AddedTracks, result.TotalTracks, result.FailedChunks, result.TotalChunks)
			for _, failure := range partial.Failures {
				r.writePlain("  • batch %d (%d tracks): %v\n", failure.Chunk, failure.Size, failure.Err)
			}
			if result.PlaylistURL != "" {
				r.writePlain("URL: %s\n", result.PlaylistURL)
			}
			return err
		}
		return err
	}

	r.writePlainln("✓ Playlist published")
	r.writePlain("Playlist: %s\n", result.PlaylistName)
	r.writePlain("Tracks: %d\n", result.AddedTracks)
	if result.PlaylistURL != "" {
		r.writePlain("URL: %s\n", result.PlaylistURL)
	}
	return nil
}
