package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tmx/internal/models"
	"github.com/desertthunder/tmx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	GeneratingView ViewState = iota
	TrackListView
	ConfirmView
	PublishView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.MixEngine
	selection    models.Selection
	playlistName string
	width        int
	height       int
	trackList    list.Model
	tracks       []models.Track
	progressChan chan tasks.ProgressUpdate
	pending      any
	progress     tasks.ProgressUpdate
	generated    *tasks.GenerateResult
	published    *tasks.PublishResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The selection drives generation; playlistName may be empty, in which case
// the publish step falls back to the dated default name.
func NewModel(ctx context.Context, engine *tasks.MixEngine, selection models.Selection, playlistName string) *Model {
	return &Model{
		ctx:          ctx,
		view:         GeneratingView,
		engine:       engine,
		selection:    selection,
		playlistName: playlistName,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init kicks off the first generation run.
func (m *Model) Init() tea.Cmd {
	return m.startGenerate(tasks.Replace, nil)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// The track list exists only after the first generation run.
		if len(m.tracks) > 0 {
			m.trackList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case GeneratingView, PublishView:
			if msg.String() == "q" || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case TrackListView:
			return m.handleTrackListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case generateDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultView
			return m, nil
		}
		m.generated = msg.result
		m.tracks = msg.result.Tracks
		m.rebuildTrackList()
		m.view = TrackListView
		return m, nil

	case publishDoneMsg:
		m.published = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	if m.view == TrackListView {
		var cmd tea.Cmd
		m.trackList, cmd = m.trackList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case GeneratingView:
		return m.renderGenerating()
	case TrackListView:
		return m.renderTrackList()
	case ConfirmView:
		return m.renderConfirm()
	case PublishView:
		return m.renderPublish()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleTrackListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "d":
		idx := m.trackList.Index()
		if idx >= 0 && idx < len(m.tracks) {
			m.tracks = append(m.tracks[:idx], m.tracks[idx+1:]...)
			m.rebuildTrackList()
		}
		return m, nil
	case "r":
		m.view = GeneratingView
		m.err = nil
		return m, m.startGenerate(tasks.Replace, nil)
	case "a":
		m.view = GeneratingView
		m.err = nil
		return m, m.startGenerate(tasks.Append, m.tracks)
	case "enter":
		if len(m.tracks) > 0 {
			m.view = ConfirmView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.trackList, cmd = m.trackList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = TrackListView
		return m, nil
	case "y":
		m.view = PublishView
		return m, m.startPublish()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	case "r":
		if m.published == nil {
			m.view = GeneratingView
			m.err = nil
			return m, m.startGenerate(tasks.Replace, nil)
		}
	}
	return m, nil
}

func (m *Model) rebuildTrackList() {
	items := make([]list.Item, len(m.tracks))
	for i, track := range m.tracks {
		items[i] = trackItem{track: track}
	}
	m.trackList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.trackList.Title = fmt.Sprintf("Working Playlist (%d tracks)", len(m.tracks))
	m.trackList.SetSize(m.width-4, m.height-8)
}

func (m *Model) startGenerate(mode tasks.AssembleMode, existing []models.Track) tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan
	pending := make(chan generateDoneMsg, 1)
	m.pending = pending

	go func() {
		result, err := m.engine.Generate(m.ctx, progress, m.selection, mode, existing)
		pending <- generateDoneMsg{result: result, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) startPublish() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progress := m.progressChan
	pending := make(chan publishDoneMsg, 1)
	m.pending = pending

	go func() {
		result, err := m.engine.Publish(m.ctx, progress, m.playlistName, m.tracks)
		pending <- publishDoneMsg{result: result, err: err}
		close(progress)
	}()

	return m.waitForProgress()
}

// waitForProgress relays engine progress into the Elm loop; when the progress
// channel closes it delivers the operation's terminal message instead.
func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return nil
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			switch pending := m.pending.(type) {
			case chan generateDoneMsg:
				return <-pending
			case chan publishDoneMsg:
				return <-pending
			default:
				return nil
			}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderGenerating() string {
	title := styles.title.Render("Generating Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.ResolveSeeds:
		phase = fmt.Sprintf("Resolving seeds (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.FetchFeatures:
		phase = "Fetching audio features..."
	case tasks.FilterMood:
		phase = "Filtering by mood..."
	case tasks.Assemble:
		phase = "Assembling playlist..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderTrackList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.remove, m.keys.more, m.keys.regen, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Publish %d tracks to Spotify?", len(m.tracks)))

	name := m.playlistName
	if name == "" {
		name = "(dated default name)"
	}
	info := fmt.Sprintf("\nPlaylist: %s\nTracks: %d\n", name, len(m.tracks))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderPublish() string {
	title := styles.title.Render("Publishing Playlist")

	var phase string
	switch m.progress.Phase {
	case tasks.CreatePlaylist:
		phase = "Creating playlist on Spotify..."
	case tasks.AddTracks:
		phase = fmt.Sprintf("Adding tracks (batch %d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	helpKeys := []key.Binding{m.keys.regen, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	if m.err != nil && m.published == nil {
		body := styles.err.Render(fmt.Sprintf("Failed: %v", m.err))
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}

	if m.published == nil {
		return fmt.Sprintf("%s\n\n%s", styles.err.Render("No result available"), helpView)
	}

	var title string
	if m.err != nil {
		title = styles.warn.Render("Playlist published with missing tracks")
	} else {
		title = styles.ok.Render("✓ Playlist Published!")
	}

	info := fmt.Sprintf(
		"\nPlaylist: %s\nTracks added: %d/%d\nURL: %s",
		m.published.PlaylistName,
		m.published.AddedTracks,
		m.published.TotalTracks,
		m.published.PlaylistURL,
	)

	var failed string
	if m.err != nil {
		failed = fmt.Sprintf("\n\n%s", styles.warn.Render(m.err.Error()))
	}

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, failed, helpView)
}
