package tasks

import (
	"math"

	"github.com/desertthunder/tmx/internal/models"
)

// DefaultTolerance is the allowed distance between a track's audio features
// and the mood target.
const DefaultTolerance = 0.15

// FilterByMood keeps the tracks whose audio features land within tolerance of
// the target mood.
//
// Energy, valence, and danceability must each be within ±tolerance of the
// target. Acousticness only has an upper bound (target + tolerance), so
// a fully electronic track always passes a high acousticness target.
//
// An empty features map means no analysis was available at all; in that case
// the filter is a no-op and every track survives. A track missing from a
// non-empty map is excluded.
func FilterByMood(tracks []models.Track, target models.MoodTarget, features map[string]models.AudioFeatures, tolerance float64) []models.Track {
	if len(features) == 0 {
		return tracks
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	filtered := make([]models.Track, 0, len(tracks))
	for _, track := range tracks {
		f, ok := features[track.ID]
		if !ok {
			continue
		}

		matches := math.Abs(f.Energy-target.Energy) <= tolerance &&
			math.Abs(f.Valence-target.Valence) <= tolerance &&
			math.Abs(f.Danceability-target.Danceability) <= tolerance &&
			f.Acousticness <= target.Acousticness+tolerance

		if matches {
			filtered = append(filtered, track)
		}
	}

	return filtered
}
