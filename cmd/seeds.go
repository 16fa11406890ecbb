package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/shared"
	"github.com/urfave/cli/v3"
)

// seedFromArgs builds a seed from command arguments and flags.
//
// Genres carry their name as identity, so "tmx seeds add genre salsa" needs
// no --name flag. Artist and track seeds want a display name; the id stands
// in when the flag is omitted.
func seedFromArgs(cmd *cli.Command) (models.Seed, error) {
	kind := models.SeedKind(cmd.StringArg("kind"))
	id := cmd.StringArg("id")
	if id == "" {
		return models.Seed{}, fmt.Errorf("%w: seed id is required", shared.ErrMissingArgument)
	}

	if kind == models.SeedGenre {
		return models.GenreSeed(id), nil
	}

	name := cmd.String("name")
	if name == "" {
		name = id
	}

	seed := models.Seed{
		Kind:       kind,
		ID:         id,
		Name:       name,
		ArtistName: cmd.String("artist"),
		DurationMS: int(cmd.Int("duration")),
	}
	return seed, seed.Validate()
}

// SeedsAdd adds a seed to the current selection.
func (r *Runner) SeedsAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	seed, err := seedFromArgs(cmd)
	if err != nil {
		return err
	}

	selection, err := r.selection()
	if err != nil {
		return err
	}
	if err := selection.Add(seed); err != nil {
		return err
	}

	if err := r.seeds.Select(seed); err != nil {
		return err
	}

	r.writePlain("✓ Added %s seed: %s\n", seed.Kind, seed.Name)
	return nil
}

// SeedsRemove removes a seed from the current selection.
func (r *Runner) SeedsRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	kind := models.SeedKind(cmd.StringArg("kind"))
	id := cmd.StringArg("id")

	removed, err := r.seeds.Unselect(kind, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: no %s seed with id %q in the selection", shared.ErrInvalidArgument, kind, id)
	}

	r.writePlain("✓ Removed %s seed: %s\n", kind, id)
	return nil
}

// SeedsShow prints the current selection grouped by kind.
func (r *Runner) SeedsShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	selection, err := r.selection()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(selection, true)
	}

	if selection.Empty() {
		r.writePlain("No seeds selected. Add some with 'tmx seeds add'.\n")
		return nil
	}

	r.writePlainHeader("Current Selection")
	for _, group := range []struct {
		label string
		seeds []models.Seed
	}{
		{"Artists", selection.Artists},
		{"Genres", selection.Genres},
		{"Tracks", selection.Tracks},
	} {
		if len(group.seeds) == 0 {
			continue
		}
		r.writePlain("\n%s (%d/%d):\n", group.label, len(group.seeds), models.MaxSeedsPerKind)
		for i, seed := range group.seeds {
			r.writePlain("  %d. %s", i+1, seed.Name)
			if seed.ArtistName != "" {
				r.writePlain(" - %s", seed.ArtistName)
			}
			if seed.Kind != models.SeedGenre {
				r.writePlain(" (%s)", seed.ID)
			}
			r.writePlain("\n")
		}
	}

	mood := selection.Mood
	r.writePlain("\nMood: energy=%.2f valence=%.2f danceability=%.2f acousticness=%.2f\n",
		mood.Energy, mood.Valence, mood.Danceability, mood.Acousticness)
	return nil
}

// SeedsClear empties the current selection.
func (r *Runner) SeedsClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	if err := r.seeds.ClearSelection(); err != nil {
		return err
	}

	r.writePlain("✓ Selection cleared\n")
	return nil
}

// SeedsFavorite saves a seed to favorites without touching the selection.
func (r *Runner) SeedsFavorite(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	seed, err := seedFromArgs(cmd)
	if err != nil {
		return err
	}

	if err := r.seeds.Favorite(seed); err != nil {
		return err
	}

	r.writePlain("★ Favorited %s seed: %s\n", seed.Kind, seed.Name)
	return nil
}

// SeedsUnfavorite removes a seed from favorites.
func (r *Runner) SeedsUnfavorite(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	kind := models.SeedKind(cmd.StringArg("kind"))
	id := cmd.StringArg("id")

	removed, err := r.seeds.Unfavorite(kind, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: no favorited %s seed with id %q", shared.ErrInvalidArgument, kind, id)
	}

	r.writePlain("✓ Unfavorited %s seed: %s\n", kind, id)
	return nil
}

// SeedsFavorites lists every favorited seed.
func (r *Runner) SeedsFavorites(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	favorites, err := r.seeds.Favorites()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(favorites, true)
	}

	if len(favorites) == 0 {
		r.writePlain("No favorite seeds. Save some with 'tmx seeds fav'.\n")
		return nil
	}

	r.writePlain("Found %d favorite seeds:\n\n", len(favorites))
	for i, seed := range favorites {
		r.writePlain("%d. [%s] %s", i+1, seed.Kind, seed.Name)
		if seed.ArtistName != "" {
			r.writePlain(" - %s", seed.ArtistName)
		}
		if seed.Kind != models.SeedGenre {
			r.writePlain(" (%s)", seed.ID)
		}
		r.writePlain("\n")
	}
	return nil
}
