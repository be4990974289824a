package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// failingStore returns err from every call.
type failingStore struct{ err error }

func (f failingStore) Load(context.Context) ([]storage.Entry, error) {
	return nil, f.err
}

func (f failingStore) Add(context.Context, storage.Entry) ([]storage.Entry, error) {
	return nil, f.err
}

func (f failingStore) Stats(context.Context) (storage.Stats, error) {
	return storage.Stats{}, f.err
}

func (f failingStore) Close() error { return nil }

func TestScoreboardShowsEntriesAndSummary(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	_, err := store.Add(ctx, storage.Entry{Name: "ann", Score: 7200, Lines: 4, Level: 5})
	require.NoError(t, err)
	_, err = store.Add(ctx, storage.Entry{Name: "bob", Score: 240, Lines: 1, Level: 5})
	require.NoError(t, err)

	sb := NewScoreboardModel(store, 80, 24)
	view := sb.View()
	assert.Contains(t, view, "HIGH SCORES")
	assert.Contains(t, view, "ann")
	assert.Contains(t, view, "7200")
	assert.Contains(t, view, "Best 7200")
	assert.Contains(t, view, "2 kept")
}

func TestScoreboardReload(t *testing.T) {
	store := openTestStore(t)
	sb := NewScoreboardModel(store, 80, 24)
	assert.Contains(t, sb.View(), "No scores recorded yet")

	_, err := store.Add(context.Background(), storage.Entry{Name: "cat", Score: 100})
	require.NoError(t, err)

	next, _ := sb.Update(runeKey('r'))
	sb = next.(ScoreboardModel)
	assert.Contains(t, sb.View(), "cat")
}

func TestScoreboardLoadError(t *testing.T) {
	sb := NewScoreboardModel(failingStore{err: errors.New("connection refused")}, 80, 24)
	view := sb.View()
	assert.Contains(t, view, "Could not load scores")
	assert.Contains(t, view, "connection refused")
	assert.NotContains(t, view, "Best")
}

func TestScoreboardKeys(t *testing.T) {
	sb := NewScoreboardModel(nil, 80, 24)

	next, _ := sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, next.(ScoreboardModel).IsGoingBack())

	next, _ = sb.Update(runeKey('q'))
	assert.True(t, next.(ScoreboardModel).IsQuitting())
	assert.Empty(t, next.View())
}
