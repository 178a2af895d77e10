package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jumprope/internal/config"
	"github.com/vovakirdan/jumprope/internal/core"
)

// MenuChoice is what the title menu was closed with.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// menuItems are the rows of the title menu. Difficulty is changed in place
// with left/right.
var menuItems = []string{"Play", "Difficulty", "High Scores", "Quit"}

const rowDifficulty = 1

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	title     string
	highScore int
	cursor    int
	preset    int // Index into config.Presets
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a title menu. best is shown under the title.
func NewMenuModel(title string, best int, preset config.DifficultyPreset, cfg core.RuntimeConfig) MenuModel {
	idx := 1
	for i, p := range config.Presets {
		if p == preset {
			idx = i
		}
	}

	return MenuModel{
		title:     title,
		highScore: best,
		preset:    idx,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		if m.cursor == rowDifficulty {
			m.preset = (m.preset + len(config.Presets) - 1) % len(config.Presets)
		}

	case MenuActionRight:
		if m.cursor == rowDifficulty {
			m.preset = (m.preset + 1) % len(config.Presets)
		}

	case MenuActionScoreboard:
		m.choice = ChoiceScores
		return m, tea.Quit

	case MenuActionSelect:
		switch m.cursor {
		case 0:
			m.choice = ChoicePlay
		case rowDifficulty:
			m.preset = (m.preset + 1) % len(config.Presets)
			return m, nil
		case 2:
			m.choice = ChoiceScores
		default:
			m.choice = ChoiceQuit
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", m.highScore), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + item
		if i == rowDifficulty {
			line = fmt.Sprintf("%s< %s >", cursor+item+": ", config.Presets[m.preset])
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// spaced puts a space between letters: "JUMP" -> "J U M P".
func spaced(s string) string {
	return strings.Join(strings.Split(strings.ToUpper(s), ""), " ")
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice     MenuChoice
	Difficulty config.DifficultyPreset
	Config     core.RuntimeConfig
}

// Result returns what the menu was closed with.
func (m MenuModel) Result() MenuResult {
	return MenuResult{
		Choice:     m.choice,
		Difficulty: config.Presets[m.preset],
		Config:     m.config,
	}
}

// RunMenu runs the title menu and returns the selection.
func RunMenu(title string, best int, preset config.DifficultyPreset, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(title, best, preset, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	res := m.Result()
	if res.Choice == ChoiceNone {
		res.Choice = ChoiceQuit
	}
	return res, nil
}
