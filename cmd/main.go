package main

import (
	"context"
	"os"

	"github.com/desertthunder/tmx/internal/auth"
	"github.com/desertthunder/tmx/internal/repositories"
	"github.com/desertthunder/tmx/internal/services"
	"github.com/desertthunder/tmx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	opts := RunnerOpts{Config: config, Logger: logger}

	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		opts.DB = db
		opts.Seeds = repositories.NewSeedRepository(db)
		opts.Moods = repositories.NewMoodRepository(db)

		store := auth.NewStore(repositories.NewCredentialRepository(db, repositories.ProviderSpotify), logger)
		if err := store.Init(); err != nil {
			logger.Debug("stored credentials unavailable", "error", err)
		}
		opts.Auth = auth.NewManager(store, config.Credentials.Spotify, nil, logger)
	} else {
		logger.Warn("database unavailable, run 'tmx setup'", "error", err)
		opts.Auth = auth.NewManager(auth.NewStore(nil, logger), config.Credentials.Spotify, nil, logger)
	}

	gateway := services.NewGateway(opts.Auth, nil, logger)
	opts.Spotify = services.NewSpotifyService(gateway, config.Mixer.Market, logger)

	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "tmx",
		Usage:    "Generate and publish mood-matched Spotify playlists",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
