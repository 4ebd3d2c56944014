// Package tui provides a Bubble Tea terminal console for pulling tracks
// into the library without starting the web server.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/jukebox/internal/acquire"
	"github.com/handiism/jukebox/internal/artwork"
	"github.com/handiism/jukebox/internal/config"
	"github.com/handiism/jukebox/internal/model"
	"github.com/handiism/jukebox/internal/tags"
)

// Styles for the console
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateFetching
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the console.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	settings  *config.Settings
	track     model.Track
	err       error

	fetcher  *acquire.Fetcher
	finisher *acquire.Finisher

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new console model over the given settings.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "https://youtube.com/watch?v=..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	// Log lines would tear the rendered frames apart.
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	locker := tags.NewLocker()
	cache := artwork.NewCache(settings.MusicDir, settings.ImageDir, locker, log)
	fetcher := acquire.NewFetcher(settings.ToolBinary, settings.MusicDir, settings.TempDir, log)
	finisher := acquire.NewFinisher(settings.MusicDir, cache, locker, log)

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		settings:  settings,
		fetcher:   fetcher,
		finisher:  finisher,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// FetchDoneMsg is sent when the acquisition pipeline finishes.
type FetchDoneMsg struct {
	Track model.Track
	Err   error
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateFetching {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateFetching
				return m, tea.Batch(m.fetchTrack(), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for another download
				m.state = StateInput
				m.track = model.Track{}
				m.err = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case FetchDoneMsg:
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.track = msg.Track
			m.state = StateComplete
		}
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// fetchTrack runs the acquisition pipeline in the background.
func (m *Model) fetchTrack() tea.Cmd {
	ref := m.textInput.Value()
	return func() tea.Msg {
		stdout, err := m.fetcher.Fetch(m.ctx, ref)
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		result, err := acquire.ParseResult(stdout)
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		thumbnail, err := m.finisher.Finish(result)
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		return FetchDoneMsg{Track: result.Summary(thumbnail)}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🎵 Jukebox"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Pull tracks into your library"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateFetching:
		b.WriteString(m.viewFetching())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter a video URL or id:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Library path: %s", m.settings.MusicDir)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Downloading audio..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	duration := "-"
	if m.track.Duration != nil {
		duration = fmt.Sprintf("%d:%02d", *m.track.Duration/60, *m.track.Duration%60)
	}

	return boxStyle.Render(fmt.Sprintf(
		"✨ Download Complete!\n\n"+
			"Title:    %s\n"+
			"Artist:   %s\n"+
			"Duration: %s\n"+
			"File:     %s",
		m.track.Title,
		m.track.Artist,
		duration,
		m.track.Filename,
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(infoStyle.Render(fmt.Sprintf("  %s", m.err.Error())))
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: download • esc: quit"
	case StateFetching:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// Run starts the console.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
