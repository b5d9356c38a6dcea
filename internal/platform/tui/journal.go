package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gridsnake/internal/games/snake"
	"github.com/vovakirdan/gridsnake/internal/storage"
)

// maxSessions is how many journal rows the browser loads.
const maxSessions = 100

// SessionSource reads the session journal. *storage.Store implements it.
type SessionSource interface {
	RecentSessions(limit int) ([]storage.SessionRecord, error)
	Session(id int64) (*storage.SessionRecord, error)
}

// JournalKeyMap defines the key bindings for the journal browser.
type JournalKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k JournalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k JournalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Verify, k.Quit}}
}

// DefaultJournalKeyMap returns default key bindings.
func DefaultJournalKeyMap() JournalKeyMap {
	return JournalKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "replay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// JournalModel lists recorded sessions newest first and replays the
// selected one on demand.
type JournalModel struct {
	source   SessionSource
	sessions []storage.SessionRecord
	table    table.Model
	help     help.Model
	keys     JournalKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewJournalModel creates a journal browser and loads recent sessions.
func NewJournalModel(source SessionSource, width, height int) JournalModel {
	m := JournalModel{
		source: source,
		keys:   DefaultJournalKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *JournalModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Mode", Width: 8},
		{Title: "Player", Width: 10},
		{Title: "Score", Width: 6},
		{Title: "Ended", Width: 11},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for title, status and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads recent sessions into the table.
func (m *JournalModel) load() {
	sessions, err := m.source.RecentSessions(maxSessions)
	if err != nil {
		m.status = fmt.Sprintf("could not load sessions: %v", err)
		sessions = nil
	}
	m.sessions = sessions

	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.ID),
			s.Mode,
			s.Player,
			fmt.Sprintf("%d", s.Score),
			s.Reason.String(),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// verifySelected replays the highlighted session and reports whether it
// reproduces the stored outcome.
func (m *JournalModel) verifySelected() {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.sessions) {
		return
	}
	m.status, _ = VerifySession(m.source, m.sessions[i].ID)
}

// VerifySession replays a journaled session and describes the outcome.
// ok is true only when the replay reproduces the stored score and end reason.
func VerifySession(source SessionSource, id int64) (verdict string, ok bool) {
	rec, err := source.Session(id)
	if err != nil {
		return fmt.Sprintf("session %d: %v", id, err), false
	}
	if rec == nil {
		return fmt.Sprintf("session %d not found", id), false
	}

	got, err := snake.Replay(rec.Recording)
	if err != nil {
		return fmt.Sprintf("session %d: replay failed: %v", id, err), false
	}
	if got.Score != rec.Score || got.Reason != rec.Reason {
		return fmt.Sprintf("session %d: MISMATCH replay %d/%s, stored %d/%s",
			id, got.Score, got.Reason, rec.Score, rec.Reason), false
	}
	return fmt.Sprintf("session %d: replay ok, score %d, %s after %d ticks",
		id, got.Score, got.Reason, got.Tick), true
}

// Init initializes the journal model.
func (m JournalModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the journal browser.
func (m JournalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verifySelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.load()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the journal browser.
func (m JournalModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("SESSION JOURNAL", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No sessions recorded yet.\nPlay a game to start the journal!")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Status returns the last replay verdict.
func (m JournalModel) Status() string {
	return m.status
}

// RunJournal runs the journal browser.
func RunJournal(source SessionSource, width, height int) error {
	p := tea.NewProgram(
		NewJournalModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
