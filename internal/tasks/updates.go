package tasks

import (
	"fmt"

	"github.com/desertthunder/tmx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveSeeds Phase = iota
	FetchFeatures
	FilterMood
	Assemble
	CreatePlaylist
	AddTracks
)

func (p Phase) String() string {
	switch p {
	case ResolveSeeds:
		return "resolve_seeds"
	case FetchFeatures:
		return "fetch_features"
	case FilterMood:
		return "filter_mood"
	case Assemble:
		return "assemble"
	case CreatePlaylist:
		return "create_playlist"
	case AddTracks:
		return "add_tracks"
	default:
		return ""
	}
}

func resolveSeedUpdate(step, total int, seed models.Seed) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSeeds,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %s seed: %s", step, total, seed.Kind, seed.Name),
	}
}

func seedFailedUpdate(step, total int, seed models.Seed, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSeeds,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, seed.Name, err),
	}
}

func fetchFeaturesUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchFeatures,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching audio features for %d tracks...", count),
	}
}

func filterMoodUpdate(kept, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FilterMood,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Mood filter kept %d of %d tracks", kept, total),
	}
}

func assembleUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Assemble,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Assembled playlist with %d tracks", count),
	}
}

func createPlaylistUpdate(pl *models.RemotePlaylist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}

func creatingPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q on Spotify...", name),
	}
}

func addTracksUpdate(step, total, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding %d tracks...", step, total, count),
	}
}
