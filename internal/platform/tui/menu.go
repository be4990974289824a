package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// menuPreviewRows is how many high scores the title menu shows.
const menuPreviewRows = 5

// MenuChoice is what the player picked on the title menu.
type MenuChoice int

const (
	MenuChoiceNone MenuChoice = iota
	MenuChoiceStart
	MenuChoiceScores
	MenuChoiceQuit
)

const (
	itemStart = iota
	itemLevel
	itemScores
	itemQuit
	itemCount
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	menuSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	menuHeaderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	menuFooterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the title menu: start, level picker, high scores, quit.
type MenuModel struct {
	cursor    int
	level     int
	maxLevel  int
	scores    []storage.Entry
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a menu. Scores are loaded from store when it is
// non-nil; a failed load shows an empty table.
func NewMenuModel(store storage.ScoreStore, cfg core.RuntimeConfig, level, maxLevel int) MenuModel {
	m := MenuModel{
		level:     level,
		maxLevel:  max(1, maxLevel),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.level = min(max(1, m.level), m.maxLevel)
	m.scores = loadPreview(store)
	return m
}

func loadPreview(store storage.ScoreStore) []storage.Entry {
	if store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	scores, err := store.Load(ctx)
	if err != nil {
		return nil
	}
	return scores
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
		m.choice = MenuChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor - 1 + itemCount) % itemCount

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % itemCount

	case MenuActionLeft:
		if m.cursor == itemLevel {
			m.level = max(1, m.level-1)
		}

	case MenuActionRight:
		if m.cursor == itemLevel {
			m.level = min(m.maxLevel, m.level+1)
		}

	case MenuActionSelect:
		switch m.cursor {
		case itemStart:
			m.choice = MenuChoiceStart
			return m, tea.Quit
		case itemScores:
			m.choice = MenuChoiceScores
			return m, tea.Quit
		case itemQuit:
			m.choice = MenuChoiceQuit
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice == MenuChoiceQuit {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("T E T R I S"), m.width))
	b.WriteString("\n\n")

	labels := [itemCount]string{
		itemStart:  "Start Game",
		itemLevel:  fmt.Sprintf("Start Level: %d", m.level),
		itemScores: "High Scores",
		itemQuit:   "Quit",
	}
	if m.cursor == itemLevel {
		labels[itemLevel] = fmt.Sprintf("Start Level: < %d >", m.level)
	}
	for i, label := range labels {
		line := menuItemStyle.Render("  " + label)
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHeaderStyle.Render("High Scores"), m.width))
	b.WriteString("\n")
	for _, line := range previewLines(m.scores) {
		b.WriteString(centerText(menuItemStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Level  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(menuFooterStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// previewLines formats the first few scores as "1. NAME  SCORE L12 Lv6".
func previewLines(scores []storage.Entry) []string {
	if len(scores) == 0 {
		return []string{"No scores yet"}
	}
	n := min(len(scores), menuPreviewRows)
	lines := make([]string, n)
	for i, e := range scores[:n] {
		lines[i] = fmt.Sprintf("%d. %-12s %5d L%d Lv%d", i+1, e.Name, e.Score, e.Lines, e.Level)
	}
	return lines
}

// Choice returns what the player picked.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Level returns the selected start level.
func (m MenuModel) Level() int {
	return m.level
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
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
