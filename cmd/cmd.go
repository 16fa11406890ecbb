// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database and configuration bootstrap.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles the Spotify OAuth session.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the Spotify session",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Spotify using OAuth2",
				Action: r.AuthLogin,
			},
			{
				Name:  "status",
				Usage: "Show the authenticated account",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
			{
				Name:   "logout",
				Usage:  "Discard stored credentials",
				Action: r.AuthLogout,
			},
		},
	}
}

// seedsCommand manages the seed selection and favorites.
func seedsCommand(r *Runner) *cli.Command {
	seedArgs := []cli.Argument{
		&cli.StringArg{Name: "kind"},
		&cli.StringArg{Name: "id"},
	}
	seedFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "name",
			Usage: "Display name (defaults to the id for genres)",
		},
		&cli.StringFlag{
			Name:  "artist",
			Usage: "Artist name (track seeds)",
		},
		&cli.IntFlag{
			Name:  "duration",
			Usage: "Track duration in milliseconds (track seeds)",
		},
	}

	return &cli.Command{
		Name:    "seeds",
		Aliases: []string{"seed"},
		Usage:   "Manage artist, genre, and track seeds",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add a seed to the selection (kind: artist, genre, track)",
				Arguments: seedArgs,
				Flags:     seedFlags,
				Action:    r.SeedsAdd,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a seed from the selection",
				Arguments: seedArgs,
				Action:    r.SeedsRemove,
			},
			{
				Name:  "show",
				Usage: "Show the current selection",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SeedsShow,
			},
			{
				Name:   "clear",
				Usage:  "Remove every seed from the selection",
				Action: r.SeedsClear,
			},
			{
				Name:      "fav",
				Usage:     "Save a seed to favorites",
				Arguments: seedArgs,
				Flags:     seedFlags,
				Action:    r.SeedsFavorite,
			},
			{
				Name:      "unfav",
				Usage:     "Remove a seed from favorites",
				Arguments: seedArgs,
				Action:    r.SeedsUnfavorite,
			},
			{
				Name:  "favs",
				Usage: "List favorite seeds",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SeedsFavorites,
			},
		},
	}
}

// moodCommand manages the persisted mood target.
func moodCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mood",
		Usage: "Manage the mood target",
		Commands: []*cli.Command{
			{
				Name:  "set",
				Usage: "Set mood parameters (unset parameters keep their value)",
				Flags: []cli.Flag{
					&cli.FloatFlag{
						Name:  "energy",
						Usage: "Energy target in [0, 1]",
						Value: -1,
					},
					&cli.FloatFlag{
						Name:  "valence",
						Usage: "Valence (positivity) target in [0, 1]",
						Value: -1,
					},
					&cli.FloatFlag{
						Name:  "danceability",
						Usage: "Danceability target in [0, 1]",
						Value: -1,
					},
					&cli.FloatFlag{
						Name:  "acousticness",
						Usage: "Acousticness ceiling in [0, 1]",
						Value: -1,
					},
				},
				Action: r.MoodSet,
			},
			{
				Name:  "show",
				Usage: "Show the current mood target",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoodShow,
			},
			{
				Name:   "reset",
				Usage:  "Reset the mood target to neutral midpoints",
				Action: r.MoodReset,
			},
		},
	}
}

// searchCommand looks up artists and tracks to use as seeds.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search Spotify for seed candidates",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "Result type: artist or track",
				Value:   "track",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}

// mixCommand runs generation and publishing.
func mixCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "mix",
		Usage: "Generate and publish playlists",
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate a working playlist from the current seeds and mood",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Playlist name (default: dated Taste Mixer name)",
					},
					&cli.BoolFlag{
						Name:  "publish",
						Usage: "Publish the playlist to Spotify after generating",
					},
					&cli.BoolFlag{
						Name:    "append",
						Aliases: []string{"a"},
						Usage:   "Append new tracks to the export named by --from instead of replacing it",
					},
					&cli.StringFlag{
						Name:  "from",
						Usage: "Export file holding the working playlist to append to",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Export the working playlist to this file",
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: json, csv, txt",
						Value: "json",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MixGenerate,
			},
			{
				Name:  "publish",
				Usage: "Publish a previously exported playlist",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Path to a JSON export produced by 'mix generate --output'",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Playlist name (default: name stored in the export)",
					},
				},
				Action: r.MixPublish,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive generate-review-publish workflow",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name for the publish step",
			},
		},
		Action: r.TUI,
	}
}
