package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tmx/internal/auth"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/repositories"
	"github.com/desertthunder/tmx/internal/services"
	"github.com/desertthunder/tmx/internal/shared"
	"github.com/desertthunder/tmx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	db      *sql.DB
	auth    *auth.Manager
	spotify services.Service
	engine  *tasks.MixEngine
	seeds   *repositories.SeedRepository
	moods   *repositories.MoodRepository
	logger  *log.Logger
	output  io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	DB      *sql.DB
	Auth    *auth.Manager
	Spotify services.Service
	Engine  *tasks.MixEngine
	Seeds   *repositories.SeedRepository
	Moods   *repositories.MoodRepository
	Logger  *log.Logger
	Output  io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Engine == nil && opts.Spotify != nil {
		opts.Engine = tasks.NewMixEngine(opts.Spotify, tasks.MixOpts{
			Tolerance: opts.Config.Mixer.Tolerance,
			MaxSize:   opts.Config.Mixer.MaxPlaylistSize,
			Logger:    opts.Logger,
		})
	}

	return &Runner{
		config:  opts.Config,
		db:      opts.DB,
		auth:    opts.Auth,
		spotify: opts.Spotify,
		engine:  opts.Engine,
		seeds:   opts.Seeds,
		moods:   opts.Moods,
		logger:  opts.Logger,
		output:  opts.Output,
	}
}

// SetLogger replaces the runner's logger, e.g. to redirect logs to a file while the TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, seedsCommand, moodCommand, searchCommand, mixCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireRepos guards commands that need the seed catalog.
func (r *Runner) requireRepos() error {
	if r.seeds == nil || r.moods == nil {
		return fmt.Errorf("%w: database not initialized, run 'tmx setup' first", shared.ErrServiceUnavailable)
	}
	return nil
}

// selection loads the persisted seed selection with the stored mood attached.
func (r *Runner) selection() (models.Selection, error) {
	mood, err := r.moods.Get()
	if err != nil {
		return models.Selection{}, err
	}
	return r.seeds.Selection(mood)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
