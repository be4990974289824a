package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// onlyO always picks the O piece.
type onlyO struct{}

func (onlyO) Intn(int) int { return int(tetris.PieceO) }

func newTestGameModel(t *testing.T, store storage.ScoreStore) GameModel {
	t.Helper()
	game := tetris.New(tetris.Options{Config: config.DefaultTetrisConfig(), Randomizer: onlyO{}})
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}

	m := NewGameModel(game, rt, GameOptions{Store: store, Player: "tester"})
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	require.True(t, ok)
	return gm
}

// dropUntilOver hard-drops O pieces until the well fills.
func dropUntilOver(t *testing.T, m GameModel) GameModel {
	t.Helper()
	now := time.Unix(1000, 0)
	for i := 0; i < 30 && !m.State().GameOver; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
		now = now.Add(33 * time.Millisecond)
		m = update(t, m, TickMsg(now))
	}
	require.True(t, m.State().GameOver, "game should end")
	return m
}

func openTestStore(t *testing.T) storage.ScoreStore {
	t.Helper()
	store, err := storage.OpenCSV(filepath.Join(t.TempDir(), "scores.csv"), 10)
	require.NoError(t, err)
	return store
}

func TestGameModelSavesNamedScore(t *testing.T) {
	store := openTestStore(t)
	m := dropUntilOver(t, newTestGameModel(t, store))

	require.NotNil(t, m.entry, "name entry should open on game over")
	assert.Contains(t, m.View(), nameEntryPrompt)
	assert.Contains(t, m.View(), "New high score! Rank #1")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ann")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, m.entry)

	scores, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, "ann", scores[0].Name)
	assert.Equal(t, 5, scores[0].Level)
	assert.Equal(t, scores, m.Scores())
}

func TestGameModelRankHeadline(t *testing.T) {
	tests := []struct {
		name     string
		topN     int
		expected string
	}{
		{"makes the table", 2, "New high score! Rank #2"},
		{"misses the table", 1, "Game Over!"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := openTestStore(t)
			_, err := store.Add(context.Background(), storage.Entry{Name: "pro", Score: 1_000_000})
			require.NoError(t, err)

			game := tetris.New(tetris.Options{Config: config.DefaultTetrisConfig(), Randomizer: onlyO{}})
			rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 1}
			m := NewGameModel(game, rt, GameOptions{Store: store, TopN: tc.topN})
			m.Init()
			m = dropUntilOver(t, m)

			require.NotNil(t, m.entry)
			assert.Contains(t, m.View(), tc.expected)
		})
	}
}

func TestGameModelBlankNameDefaults(t *testing.T) {
	store := openTestStore(t)
	m := dropUntilOver(t, newTestGameModel(t, store))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	scores, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, storage.DefaultName, scores[0].Name)
}

func TestGameModelEscSavesDefaultName(t *testing.T) {
	store := openTestStore(t)
	m := dropUntilOver(t, newTestGameModel(t, store))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("zed")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.entry)

	scores, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, storage.DefaultName, scores[0].Name)
}

func TestGameModelCtrlCDuringEntrySavesAndQuits(t *testing.T) {
	store := openTestStore(t)
	m := dropUntilOver(t, newTestGameModel(t, store))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ann")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.IsQuitting())

	scores, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, storage.DefaultName, scores[0].Name)
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	m := dropUntilOver(t, newTestGameModel(t, nil))
	assert.Nil(t, m.entry, "no store means no name entry")

	m = update(t, m, runeKey('r'))
	assert.False(t, m.State().GameOver)
	assert.Contains(t, m.View(), "TETRIS")
}

func TestGameModelBackAndQuit(t *testing.T) {
	m := newTestGameModel(t, nil)

	// Back is ignored while playing.
	m = update(t, m, runeKey('b'))
	assert.False(t, m.BackToMenu())

	m = dropUntilOver(t, m)
	m = update(t, m, runeKey('b'))
	assert.True(t, m.BackToMenu())

	next, cmd := newTestGameModel(t, nil).Update(runeKey('q'))
	assert.True(t, next.(GameModel).IsQuitting())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	cfg := SessionConfig{
		NewGame: func(level int) (registry.Game, error) {
			return tetris.New(tetris.Options{
				Config:     config.DefaultTetrisConfig(),
				StartLevel: level,
				Randomizer: onlyO{},
			}), nil
		},
		StartLevel: 5,
		MaxLevel:   19,
		Game:       GameOptions{Store: store},
	}
	rt := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}
	s := NewSessionModel(cfg, rt)

	step := func(msg tea.Msg) {
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	assert.Contains(t, s.View(), "Start Level: 5")

	// Move to the level picker and raise it.
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyRight})
	step(tea.KeyMsg{Type: tea.KeyRight})
	assert.Contains(t, s.View(), "Start Level: < 7 >")

	step(tea.KeyMsg{Type: tea.KeyUp})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenGame, s.screen)
	assert.Equal(t, 7, s.gameModel.game.State().Level)

	// Quit the game to the menu via pause + back.
	step(runeKey('p'))
	step(TickMsg(time.Now()))
	step(runeKey('b'))
	require.Equal(t, screenMenu, s.screen)
	assert.Contains(t, s.View(), "Start Level: 7", "menu keeps the chosen level")

	// Scoreboard and back.
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyDown})
	step(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, screenScores, s.screen)
	assert.Contains(t, s.View(), "No scores recorded yet")
	step(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, screenMenu, s.screen)
}

func TestPreviewLines(t *testing.T) {
	assert.Equal(t, []string{"No scores yet"}, previewLines(nil))

	scores := make([]storage.Entry, 7)
	for i := range scores {
		scores[i] = storage.Entry{Name: "p", Score: 100 - i, Lines: i, Level: 5}
	}
	lines := previewLines(scores)
	require.Len(t, lines, menuPreviewRows)
	assert.True(t, strings.HasPrefix(lines[0], "1. p "))
	assert.True(t, strings.HasSuffix(lines[0], "100 L0 Lv5"))
}

func TestFormatScoreTable(t *testing.T) {
	assert.Equal(t, "No scores recorded yet.", FormatScoreTable(nil))

	out := FormatScoreTable([]storage.Entry{{Name: "ann", Score: 7200, Lines: 4, Level: 5}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Rank")
	assert.Equal(t, []string{"#1", "ann", "7200", "4", "5"}, strings.Fields(lines[1]))
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '█', core.ColorRed)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ab")
	assert.Contains(t, lines[0], "█")
}
