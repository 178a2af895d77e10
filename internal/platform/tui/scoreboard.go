package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumprope/internal/storage"
)

const boardRows = 50

// ScoreSource is the part of the score store the board reads.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.RunRecord, error)
	RecentRuns(gameID string, limit int) ([]storage.RunRecord, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
	ClearScores(gameID string) error
}

// BoardView selects which runs the board lists.
type BoardView int

const (
	ViewBest BoardView = iota
	ViewRecent
)

func (v BoardView) String() string {
	if v == ViewRecent {
		return "Recent runs"
	}
	return "Best runs"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Toggle}, {k.Clear, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Toggle: key.NewBinding(key.WithKeys("tab", "left", "right"), key.WithHelp("tab", "best/recent")),
		Clear:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x x", "clear")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists recorded runs of one game.
type ScoreboardModel struct {
	gameID    string
	title     string
	source    ScoreSource
	view      BoardView
	runs      []storage.RunRecord
	stats     *storage.GameStats
	status    string // One-line feedback, e.g. load errors
	armed     bool   // First "x" pressed; the second one clears
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a board for gameID. source may be nil, in which
// case the board only shows that nothing is recorded.
func NewScoreboardModel(source ScoreSource, gameID, title string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		gameID: gameID,
		title:  title,
		source: source,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newRunTable(width, height)
	m.reload()
	return m
}

func newRunTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Level", Width: 5},
		{Title: "Result", Width: 8},
		{Title: "Time", Width: 7},
		{Title: "Date", Width: 12},
	}
	// Spare width goes to the date column
	if spare := width - 6 - 43 - 2*len(columns); spare > 0 {
		columns[len(columns)-1].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-9, 3)),
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

// reload fetches the current view from the source.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.status = nil, nil, ""
	if m.source != nil {
		var err error
		if m.view == ViewRecent {
			m.runs, err = m.source.RecentRuns(m.gameID, boardRows)
		} else {
			m.runs, err = m.source.TopScores(m.gameID, boardRows)
		}
		if err != nil {
			m.status = "could not load runs: " + err.Error()
		}
		if st, err := m.source.GetGameStats(m.gameID); err == nil {
			m.stats = st
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := "-"
		if r.Won {
			result = "cleared"
		}
		rows[i] = table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(r.Score),
			fmt.Sprint(r.Level),
			result,
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		clearPressed := key.Matches(msg, m.keys.Clear)
		if !clearPressed {
			m.armed = false
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		case clearPressed:
			m.clear()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newRunTable(m.width, m.height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// clear wipes the game's runs on the second consecutive press.
func (m *ScoreboardModel) clear() {
	if m.source == nil || len(m.runs) == 0 {
		return
	}
	if !m.armed {
		m.armed = true
		m.status = "press x again to delete every run"
		return
	}
	m.armed = false
	if err := m.source.ClearScores(m.gameID); err != nil {
		m.status = "could not clear runs: " + err.Error()
		return
	}
	m.reload()
	m.status = "all runs cleared"
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("HIGH SCORES - "+m.title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")

	var body string
	if len(m.runs) == 0 {
		body = dimStyle.Italic(true).Padding(2, 4).Render("No runs recorded yet.\nJump a few ropes to set a high score!")
	} else {
		body = m.table.View()
	}
	for _, line := range strings.Split(boxStyle.Render(body), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(centerText(dimStyle.Render(m.status), m.width))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)

	out := make([]string, 0, 2)
	for _, v := range []BoardView{ViewBest, ViewRecent} {
		if v == m.view {
			out = append(out, active.Render(v.String()))
		} else {
			out = append(out, idle.Render(v.String()))
		}
	}
	return strings.Join(out, " ")
}

// statsLine summarises every run of the game.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Runs: %d  |  Cleared: %d  |  Best: %d  |  Best level: %d  |  Avg: %.0f",
		st.GamesCount, st.Wins, st.HighScore, st.BestLevel, st.AvgScore)
}

// CurrentView returns the list currently shown.
func (m ScoreboardModel) CurrentView() BoardView {
	return m.view
}

// IsGoingBack returns true if user wants to go back to the title menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// RunScoreboard shows the board for gameID. It reports whether the user
// asked to go back rather than quit. store may be nil.
func RunScoreboard(store *storage.Store, gameID, title string, width, height int) (goBack bool, err error) {
	var source ScoreSource
	if store != nil {
		source = store
	}

	p := tea.NewProgram(NewScoreboardModel(source, gameID, title, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
