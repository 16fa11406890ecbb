package models

import (
	"fmt"

	"github.com/desertthunder/tmx/internal/shared"
)

// SeedKind tags the variant of a [Seed].
type SeedKind string

const (
	SeedArtist SeedKind = "artist"
	SeedGenre  SeedKind = "genre"
	SeedTrack  SeedKind = "track"
)

// MaxSeedsPerKind is the provider's cap on seeds per category.
const MaxSeedsPerKind = 5

// Seed is a user-chosen artist, genre, or track used to bias candidate generation.
//
// Identity is ID for artists and tracks; genres carry their name in ID since
// the provider has no genre identifiers.
type Seed struct {
	Kind       SeedKind `json:"kind"`
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	ArtistName string   `json:"artist_name,omitempty"` // track seeds only
	ImageURL   string   `json:"image_url,omitempty"`
	DurationMS int      `json:"duration_ms,omitempty"` // track seeds only
}

// Validate checks that the seed has a kind and an identity.
func (s Seed) Validate() error {
	switch s.Kind {
	case SeedArtist, SeedGenre, SeedTrack:
	default:
		return fmt.Errorf("%w: unknown seed kind %q", shared.ErrInvalidInput, s.Kind)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: seed has no identity", shared.ErrInvalidInput)
	}
	return nil
}

// GenreSeed builds a genre seed from its name.
func GenreSeed(name string) Seed {
	return Seed{Kind: SeedGenre, ID: name, Name: name}
}

// Selection is the complete set of seeds plus mood target driving one generation run.
type Selection struct {
	Artists []Seed     `json:"artists"`
	Genres  []Seed     `json:"genres"`
	Tracks  []Seed     `json:"tracks"`
	Mood    MoodTarget `json:"mood"`
}

// Empty reports whether no seeds of any kind are selected.
func (s *Selection) Empty() bool {
	return len(s.Artists) == 0 && len(s.Genres) == 0 && len(s.Tracks) == 0
}

func (s *Selection) bucket(kind SeedKind) *[]Seed {
	switch kind {
	case SeedArtist:
		return &s.Artists
	case SeedGenre:
		return &s.Genres
	default:
		return &s.Tracks
	}
}

// Add inserts a seed into its category, enforcing the per-kind cap and identity uniqueness.
func (s *Selection) Add(seed Seed) error {
	if err := seed.Validate(); err != nil {
		return err
	}

	list := s.bucket(seed.Kind)
	for _, existing := range *list {
		if existing.ID == seed.ID {
			return nil
		}
	}

	if len(*list) >= MaxSeedsPerKind {
		return fmt.Errorf("%w: at most %d %s seeds", shared.ErrSeedLimit, MaxSeedsPerKind, seed.Kind)
	}

	*list = append(*list, seed)
	return nil
}

// All returns every selected seed in stable order: artists, genres, tracks.
func (s *Selection) All() []Seed {
	seeds := make([]Seed, 0, len(s.Artists)+len(s.Genres)+len(s.Tracks))
	seeds = append(seeds, s.Artists...)
	seeds = append(seeds, s.Genres...)
	seeds = append(seeds, s.Tracks...)
	return seeds
}

// Remove deletes the seed with the given identity from its category. Returns false if absent.
func (s *Selection) Remove(kind SeedKind, id string) bool {
	list := s.bucket(kind)
	for i, seed := range *list {
		if seed.ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}
