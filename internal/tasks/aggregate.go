package tasks

import "github.com/desertthunder/tmx/internal/models"

// Aggregate merges candidate lists into one deduplicated pool.
//
// Tracks are identified by id. The first occurrence of an id fixes its
// position in the output; later occurrences overwrite the stored values in
// place, so the freshest metadata wins without reordering anything.
// Tracks with an empty id are dropped.
func Aggregate(lists ...[]models.Track) []models.Track {
	var pool []models.Track
	positions := make(map[string]int)

	for _, list := range lists {
		for _, track := range list {
			if track.ID == "" {
				continue
			}
			if at, seen := positions[track.ID]; seen {
				pool[at] = track
				continue
			}
			positions[track.ID] = len(pool)
			pool = append(pool, track)
		}
	}

	return pool
}
