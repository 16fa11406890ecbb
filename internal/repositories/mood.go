package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/tmx/internal/models"
)

// MoodRepository persists the single mood target row.
type MoodRepository struct {
	db *sql.DB
}

// NewMoodRepository creates a new MoodRepository with the given database connection.
func NewMoodRepository(db *sql.DB) *MoodRepository {
	return &MoodRepository{db: db}
}

// Get loads the stored mood target, falling back to the neutral default when unset.
func (r *MoodRepository) Get() (models.MoodTarget, error) {
	query := "SELECT energy, valence, danceability, acousticness FROM mood WHERE id = 1"

	var mood models.MoodTarget
	err := r.db.QueryRow(query).Scan(&mood.Energy, &mood.Valence, &mood.Danceability, &mood.Acousticness)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultMood(), nil
	}
	if err != nil {
		return mood, fmt.Errorf("failed to load mood: %w", err)
	}
	return mood, nil
}

// Set stores the mood target after validating its ranges.
func (r *MoodRepository) Set(mood models.MoodTarget) error {
	if err := mood.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO mood (id, energy, valence, danceability, acousticness)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			energy = excluded.energy,
			valence = excluded.valence,
			danceability = excluded.danceability,
			acousticness = excluded.acousticness
	`

	_, err := r.db.Exec(query, mood.Energy, mood.Valence, mood.Danceability, mood.Acousticness)
	if err != nil {
		return fmt.Errorf("failed to save mood: %w", err)
	}
	return nil
}

// Reset deletes the stored row so Get falls back to the neutral default.
func (r *MoodRepository) Reset() error {
	if _, err := r.db.Exec("DELETE FROM mood WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to reset mood: %w", err)
	}
	return nil
}
