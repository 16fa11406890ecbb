package main

import (
	"context"

	"github.com/desertthunder/tmx/internal/models"
	"github.com/urfave/cli/v3"
)

// MoodSet updates individual mood parameters, leaving unset ones untouched.
func (r *Runner) MoodSet(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	mood, err := r.moods.Get()
	if err != nil {
		return err
	}

	for flag, target := range map[string]*float64{
		"energy":       &mood.Energy,
		"valence":      &mood.Valence,
		"danceability": &mood.Danceability,
		"acousticness": &mood.Acousticness,
	} {
		if v := cmd.Float(flag); v >= 0 {
			*target = v
		}
	}

	if err := r.moods.Set(mood); err != nil {
		return err
	}

	return r.printMood(mood, false)
}

// MoodShow prints the current mood target.
func (r *Runner) MoodShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	mood, err := r.moods.Get()
	if err != nil {
		return err
	}

	return r.printMood(mood, cmd.Bool("json"))
}

// MoodReset restores the neutral midpoint target.
func (r *Runner) MoodReset(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRepos(); err != nil {
		return err
	}

	if err := r.moods.Reset(); err != nil {
		return err
	}

	r.writePlain("✓ Mood reset\n")
	return r.printMood(models.DefaultMood(), false)
}

func (r *Runner) printMood(mood models.MoodTarget, useJSON bool) error {
	if useJSON {
		return r.writeJSON(mood, true)
	}

	r.writePlain("Energy:       %.2f\n", mood.Energy)
	r.writePlain("Valence:      %.2f\n", mood.Valence)
	r.writePlain("Danceability: %.2f\n", mood.Danceability)
	r.writePlain("Acousticness: %.2f\n", mood.Acousticness)
	return nil
}
