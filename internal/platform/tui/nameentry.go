package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const nameEntryPrompt = "Enter your name:"

// NameEntry collects the player's name after a game ends.
type NameEntry struct {
	input     textinput.Model
	rank      int // Position the score takes in the table, 0 if it misses
	done      bool
	cancelled bool
}

// NewNameEntry returns a focused name field. A positive rank announces
// a new high score.
func NewNameEntry(rank int) NameEntry {
	ti := textinput.New()
	ti.Placeholder = storage.DefaultName
	ti.CharLimit = storage.MaxNameLen
	ti.Width = storage.MaxNameLen + 1
	ti.Prompt = "> "
	ti.Focus()
	return NameEntry{input: ti, rank: rank}
}

// Update handles key input. Enter submits; Esc gives up on typing and
// keeps the default name.
func (n NameEntry) Update(msg tea.Msg) (NameEntry, tea.Cmd) {
	if n.done {
		return n, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			n.done = true
			n.input.Blur()
			return n, nil
		case tea.KeyEsc:
			n.done = true
			n.cancelled = true
			n.input.Blur()
			return n, nil
		}
	}

	var cmd tea.Cmd
	n.input, cmd = n.input.Update(msg)
	return n, cmd
}

// Done reports whether the player submitted or aborted.
func (n NameEntry) Done() bool { return n.done }

// Cancelled reports whether the player aborted with Esc.
func (n NameEntry) Cancelled() bool { return n.cancelled }

// Name returns the normalized entered name, or the default name when
// the entry was aborted.
func (n NameEntry) Name() string {
	if n.cancelled {
		return storage.DefaultName
	}
	return storage.NormalizeName(n.input.Value())
}

// View renders the prompt box.
func (n NameEntry) View() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("229")).
		Padding(0, 2)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).
		Render("enter: save  esc: save as " + storage.DefaultName)

	headline := "Game Over!"
	if n.rank > 0 {
		headline = fmt.Sprintf("New high score! Rank #%d", n.rank)
	}

	return box.Render(lipgloss.JoinVertical(lipgloss.Left,
		headline,
		nameEntryPrompt,
		"",
		n.input.View(),
		"",
		hint,
	))
}
