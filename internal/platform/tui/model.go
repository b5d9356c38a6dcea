package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// SessionSaver persists finished sessions. *storage.Store implements it.
type SessionSaver interface {
	SaveSession(rec storage.SessionRecord) (int64, error)
}

// Options configures a game Model.
type Options struct {
	Mode    string       // Registry mode ID, stored with each session
	Title   string       // Shown in the HUD
	Config  snake.Config // Engine config; Seed 0 picks a fresh seed per session
	Runtime core.RuntimeConfig
	Player  string
	Store   SessionSaver // May be nil
	Logger  *log.Logger  // May be nil
	// Embedded models return to a menu on Back instead of ignoring it.
	Embedded bool
}

// Model is the Bubble Tea model for one snake session at a time.
// It owns the tick scheduler: a tea.Tick chain re-armed after every Running
// tick and dropped once the session ends or is paused.
type Model struct {
	opts   Options
	engine *snake.Engine
	logger *log.Logger
	keys   KeyMap
	help   help.Model
	screen *core.Screen
	last   snake.TickResult

	gen        int // Current timer chain; stale TickMsgs carry an older value
	paused     bool
	saved      bool
	savedID    int64
	quitting   bool
	backToMenu bool
}

// NewModel creates a model and starts its first session.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		opts:   opts,
		engine: snake.NewEngine(snake.WithLogger(logger)),
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}

	r, err := m.engine.Start(opts.Config)
	if err != nil {
		return Model{}, err
	}
	m.last = r
	w, h := ScreenSize(opts.Runtime, r.GridCount)
	m.screen = core.NewScreen(w, h)
	return m, nil
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.engine.TickInterval(), m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.opts.Embedded && key.Matches(msg, m.keys.Back) {
		m.backToMenu = true
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case core.ActionPause:
		return m.togglePause()

	case core.ActionRestart:
		return m.restart()
	}

	if !action.IsMove() || m.paused {
		return m, nil
	}
	if dir, ok := DirectionFor(action); ok {
		m.engine.SetDirection(dir)
		m.last = m.engine.Snapshot()
	}
	return m, nil
}

// togglePause stops or resumes the tick chain. The engine is not told.
func (m Model) togglePause() (tea.Model, tea.Cmd) {
	if m.last.State != snake.StateRunning {
		return m, nil
	}
	m.paused = !m.paused
	m.gen++
	if m.paused {
		return m, nil
	}
	return m, tickCmd(m.engine.TickInterval(), m.gen)
}

// restart drops the current session and starts a new one with the same options.
// Only sessions that ended on their own are journaled.
func (m Model) restart() (tea.Model, tea.Cmd) {
	m.engine.Reset()
	r, err := m.engine.Start(m.opts.Config)
	if err != nil {
		m.logger.Error("restart failed", "error", err)
		m.quitting = true
		return m, tea.Quit
	}
	m.last = r
	m.paused = false
	m.saved = false
	m.savedID = 0
	m.gen++
	return m, tickCmd(m.engine.TickInterval(), m.gen)
}

// handleTick advances the engine once and re-arms the chain while Running.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.paused {
		return m, nil
	}

	r := m.engine.Tick()
	m.last = r
	if r.State != snake.StateRunning {
		m.finish()
		return m, nil
	}
	return m, tickCmd(m.engine.TickInterval(), m.gen)
}

// finish records an ended session once.
func (m *Model) finish() {
	if m.saved {
		return
	}
	m.saved = true

	m.logger.Info("session ended",
		"mode", m.opts.Mode,
		"player", m.opts.Player,
		"score", m.last.Score,
		"reason", m.last.Reason,
		"ticks", m.last.Tick,
	)

	if m.opts.Store == nil {
		return
	}
	id, err := m.opts.Store.SaveSession(storage.SessionRecord{
		Mode:      m.opts.Mode,
		Player:    m.opts.Player,
		Recording: m.engine.Recording(),
		Score:     m.last.Score,
		Reason:    m.last.Reason,
	})
	if err != nil {
		m.logger.Warn("could not save session", "error", err)
		return
	}
	m.savedID = id
	m.logger.Debug("session saved", "id", id)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	DrawBoard(m.screen, m.opts.Runtime, m.last, BoardView{
		Title:  m.opts.Title,
		Paused: m.paused,
	})

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Result returns the latest engine view.
func (m Model) Result() snake.TickResult {
	return m.last
}

// SavedID returns the journal ID of the last finished session, or 0.
func (m Model) SavedID() int64 {
	return m.savedID
}

// Paused reports whether the host has paused the tick chain.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single-mode session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
