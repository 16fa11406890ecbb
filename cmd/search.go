package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tmx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search looks up artists or tracks to use as seeds.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")

	switch cmd.String("type") {
	case "artist", "artists":
		seeds, err := r.spotify.SearchArtists(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if useJSON {
			return r.writeJSON(seeds, true)
		}
		if len(seeds) == 0 {
			r.writePlain("No artists found for %q\n", query)
			return nil
		}
		r.writePlain("Found %d artists:\n\n", len(seeds))
		for i, seed := range seeds {
			r.writePlain("%d. %s (%s)\n", i+1, seed.Name, seed.ID)
		}
		r.writePlain("\nAdd one with: tmx seeds add artist <id> --name \"<name>\"\n")
		return nil

	case "track", "tracks":
		tracks, err := r.spotify.SearchTracks(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		if useJSON {
			return r.writeJSON(tracks, true)
		}
		if len(tracks) == 0 {
			r.writePlain("No tracks found for %q\n", query)
			return nil
		}
		r.writePlain("Found %d tracks:\n\n", len(tracks))
		for i, track := range tracks {
			r.writePlain("%d. %s - %s [%s] (%s)\n",
				i+1, track.Artist(), track.Name, shared.FormatDuration(track.DurationMS), track.ID)
		}
		r.writePlain("\nAdd one with: tmx seeds add track <id> --name \"<name>\"\n")
		return nil

	default:
		return fmt.Errorf("%w: --type must be artist or track", shared.ErrInvalidArgument)
	}
}
