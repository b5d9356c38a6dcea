package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// DBPath is the path to the session journal.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the engine config for every session; the chosen mode
	// overrides its boundary.
	Game snake.Config

	// CellW is the number of terminal columns per grid cell.
	CellW int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.snake/sessions.db",
		IdleTimeout: 30 * time.Minute,
		Game: snake.Config{
			GridCount:    20,
			TickInterval: 150 * time.Millisecond,
		},
		CellW: 2,
	}
}

// SSHServer wraps a Wish SSH server that hosts one snake engine per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger gets a timestamped stderr logger.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-ssh",
		})
	}

	if err := cfg.Game.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open session journal", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snake", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	rt := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
		CellW:   s.config.CellW,
	}

	var saver SessionSaver
	if s.store != nil {
		saver = s.store
	}

	model := NewSessionModel(SessionModelConfig{
		Game:    s.config.Game,
		Runtime: rt,
		Player:  sshSession.User(),
		Store:   saver,
		Logger:  s.logger.With("user", sshSession.User()),
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionModelConfig holds what a SessionModel needs to start games.
type SessionModelConfig struct {
	Game    snake.Config
	Runtime core.RuntimeConfig
	Player  string
	Store   SessionSaver
	Logger  *log.Logger
}

// SessionModel manages the full connection flow: menu -> game -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	cfg      SessionModelConfig
	menu     MenuModel
	game     *Model
	nextGen  int // First timer chain for the next game, past any pending ticks
	notice   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg SessionModelConfig) SessionModel {
	return SessionModel{
		cfg:  cfg,
		menu: NewMenuModel(cfg.Runtime.ScreenW, cfg.Runtime.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}

	if m.game != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	// Selection makes the menu return tea.Quit; that command is dropped here.
	m.menu = NewMenuModel(m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)

	game, err := m.startGame(*selected)
	if err != nil {
		m.notice = err.Error()
		return m, nil
	}
	m.notice = ""
	game.gen = m.nextGen
	m.game = &game
	return m, m.game.Init()
}

// startGame builds a game model for the chosen mode.
func (m SessionModel) startGame(mode registry.Mode) (Model, error) {
	boundary, err := snake.BoundaryForMode(mode.ID)
	if err != nil {
		return Model{}, err
	}
	cfg := m.cfg.Game
	cfg.Boundary = boundary

	w, h := ScreenSize(m.cfg.Runtime, cfg.GridCount)
	if w > m.cfg.Runtime.ScreenW || h+1 > m.cfg.Runtime.ScreenH {
		return Model{}, fmt.Errorf("window too small: need %dx%d, have %dx%d",
			w, h+1, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
	}

	return NewModel(Options{
		Mode:     mode.ID,
		Title:    "Snake: " + mode.Title,
		Config:   cfg,
		Runtime:  m.cfg.Runtime,
		Player:   m.cfg.Player,
		Store:    m.cfg.Store,
		Logger:   m.cfg.Logger,
		Embedded: true,
	})
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		m.nextGen = m.game.gen + 1
		m.game = nil
		m.menu = NewMenuModel(m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
		return m, m.menu.Init()
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.game != nil {
		return m.game.View()
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(m.notice, m.cfg.Runtime.ScreenW) + "\n"
	}
	return view
}

// InGame reports whether a game is on screen.
func (m SessionModel) InGame() bool {
	return m.game != nil
}
