package tasks

import "github.com/desertthunder/tmx/internal/models"

// MaxPlaylistSize caps the assembled working playlist.
const MaxPlaylistSize = 50

// AssembleMode selects how newly generated tracks combine with the current
// working playlist.
type AssembleMode int

const (
	// Replace discards the current working playlist.
	Replace AssembleMode = iota
	// Append keeps the current playlist and adds new tracks after it,
	// skipping ids already present.
	Append
)

func (m AssembleMode) String() string {
	switch m {
	case Replace:
		return "replace"
	case Append:
		return "append"
	default:
		return ""
	}
}

// AssembleTracks combines filtered candidates with the existing working
// playlist according to mode, truncating the result to max tracks.
// A max of zero or less falls back to [MaxPlaylistSize].
func AssembleTracks(filtered []models.Track, mode AssembleMode, existing []models.Track, max int) []models.Track {
	if max <= 0 {
		max = MaxPlaylistSize
	}

	var assembled []models.Track
	switch mode {
	case Append:
		assembled = make([]models.Track, 0, len(existing)+len(filtered))
		seen := make(map[string]struct{}, len(existing))
		for _, track := range existing {
			assembled = append(assembled, track)
			seen[track.ID] = struct{}{}
		}
		for _, track := range filtered {
			if _, dup := seen[track.ID]; dup {
				continue
			}
			seen[track.ID] = struct{}{}
			assembled = append(assembled, track)
		}
	default:
		assembled = make([]models.Track, len(filtered))
		copy(assembled, filtered)
	}

	if len(assembled) > max {
		assembled = assembled[:max]
	}
	return assembled
}
