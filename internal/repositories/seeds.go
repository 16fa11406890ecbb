package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/tmx/internal/models"
)

// SeedRepository persists the seed catalog.
//
// A seed row exists as long as it is selected or favorited; clearing both
// flags removes it. Identity is (id, kind), so a track and an artist sharing
// an id never collide.
type SeedRepository struct {
	db *sql.DB
}

// NewSeedRepository creates a new SeedRepository with the given database connection.
func NewSeedRepository(db *sql.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

const seedColumns = "id, kind, name, artist_name, image_url, duration_ms"

func scanSeed(row interface{ Scan(...any) error }) (models.Seed, error) {
	var seed models.Seed
	err := row.Scan(&seed.ID, &seed.Kind, &seed.Name, &seed.ArtistName, &seed.ImageURL, &seed.DurationMS)
	return seed, err
}

// upsert ensures a row exists for the seed and sets the named flag.
func (r *SeedRepository) upsert(seed models.Seed, flag string) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO seeds (id, kind, name, artist_name, image_url, duration_ms, %s, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT(id, kind) DO UPDATE SET
			name = excluded.name,
			artist_name = excluded.artist_name,
			image_url = excluded.image_url,
			duration_ms = excluded.duration_ms,
			%s = 1
	`, flag, flag)

	_, err := r.db.Exec(query, seed.ID, seed.Kind, seed.Name, seed.ArtistName, seed.ImageURL, seed.DurationMS, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store seed: %w", err)
	}
	return nil
}

// clearFlag unsets the named flag and prunes rows with neither flag set.
func (r *SeedRepository) clearFlag(kind models.SeedKind, id, flag string) (bool, error) {
	query := fmt.Sprintf("UPDATE seeds SET %s = 0 WHERE id = ? AND kind = ? AND %s = 1", flag, flag)
	res, err := r.db.Exec(query, id, kind)
	if err != nil {
		return false, fmt.Errorf("failed to update seed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update: %w", err)
	}

	if _, err := r.db.Exec("DELETE FROM seeds WHERE selected = 0 AND favorite = 0"); err != nil {
		return false, fmt.Errorf("failed to prune seeds: %w", err)
	}

	return affected > 0, nil
}

// listByFlag returns seeds with the named flag set, oldest first.
func (r *SeedRepository) listByFlag(flag string) ([]models.Seed, error) {
	query := fmt.Sprintf("SELECT %s FROM seeds WHERE %s = 1 ORDER BY created_at, id", seedColumns, flag)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list seeds: %w", err)
	}
	defer rows.Close()

	var seeds []models.Seed
	for rows.Next() {
		seed, err := scanSeed(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan seed: %w", err)
		}
		seeds = append(seeds, seed)
	}
	return seeds, rows.Err()
}

// Select marks a seed as part of the current selection.
func (r *SeedRepository) Select(seed models.Seed) error {
	return r.upsert(seed, "selected")
}

// Unselect removes a seed from the current selection. Returns false if it was not selected.
func (r *SeedRepository) Unselect(kind models.SeedKind, id string) (bool, error) {
	return r.clearFlag(kind, id, "selected")
}

// ClearSelection removes every seed from the current selection in one pass.
func (r *SeedRepository) ClearSelection() error {
	if _, err := r.db.Exec("UPDATE seeds SET selected = 0"); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}
	if _, err := r.db.Exec("DELETE FROM seeds WHERE selected = 0 AND favorite = 0"); err != nil {
		return fmt.Errorf("failed to prune seeds: %w", err)
	}
	return nil
}

// Selection loads the current selection grouped by kind, with the given mood attached.
//
// Seeds load in insertion order, so the selection replays the order the user
// picked them in. The per-kind cap is enforced on write via [models.Selection.Add].
func (r *SeedRepository) Selection(mood models.MoodTarget) (models.Selection, error) {
	selection := models.Selection{Mood: mood}

	seeds, err := r.listByFlag("selected")
	if err != nil {
		return selection, err
	}

	for _, seed := range seeds {
		if err := selection.Add(seed); err != nil {
			return selection, err
		}
	}
	return selection, nil
}

// Favorite marks a seed as saved for later.
func (r *SeedRepository) Favorite(seed models.Seed) error {
	return r.upsert(seed, "favorite")
}

// Unfavorite removes a seed from favorites. Returns false if it was not favorited.
func (r *SeedRepository) Unfavorite(kind models.SeedKind, id string) (bool, error) {
	return r.clearFlag(kind, id, "favorite")
}

// Favorites lists every favorited seed, oldest first.
func (r *SeedRepository) Favorites() ([]models.Seed, error) {
	return r.listByFlag("favorite")
}

// IsFavorite reports whether the seed is currently favorited.
func (r *SeedRepository) IsFavorite(kind models.SeedKind, id string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(1) FROM seeds WHERE id = ? AND kind = ? AND favorite = 1", id, kind).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}
