package tetris

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30, Seed: 12345}
}

func newTestGame(t *testing.T, p ...PieceType) *Game {
	t.Helper()
	g := New(Options{Config: config.DefaultTetrisConfig(), Randomizer: pieces(p...)})
	g.Reset(testRuntime())
	return g
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1 := New(Options{Config: config.DefaultTetrisConfig()})
	g1.Reset(testRuntime())
	g2 := New(Options{Config: config.DefaultTetrisConfig()})
	g2.Reset(testRuntime())

	input := core.NewInputFrame()
	for i := 0; i < 400; i++ {
		input.Clear()
		switch {
		case i%40 == 5:
			input.Set(core.ActionRotateCW)
		case i%40 == 39:
			input.Set(core.ActionHardDrop)
		}
		if i%40 >= 10 && i%40 < 25 {
			input.Hold(core.ActionLeft)
		} else {
			input.Release(core.ActionLeft)
		}

		g1.Step(input)
		g2.Step(input)
	}

	if diff := cmp.Diff(g1.Snapshot(), g2.Snapshot()); diff != "" {
		t.Errorf("snapshots diverged (-g1 +g2):\n%s", diff)
	}
	if g1.Snapshot().Tick == 0 {
		t.Error("expected ticks to advance")
	}
}

func TestStepTapMovesOnce(t *testing.T) {
	g := newTestGame(t, PieceT)

	input := core.NewInputFrame()
	input.Set(core.ActionLeft)
	g.Step(input)
	if got := g.Snapshot().OriginX; got != 4 {
		t.Fatalf("after tap OriginX = %d, expected 4", got)
	}

	input.Clear()
	for i := 0; i < 30; i++ {
		g.Step(input)
	}
	if got := g.Snapshot().OriginX; got != 4 {
		t.Errorf("tap should not auto-shift, OriginX = %d", got)
	}
}

func TestStepHeldAutoShifts(t *testing.T) {
	g := newTestGame(t, PieceT)

	input := core.NewInputFrame()
	input.Hold(core.ActionLeft)
	for i := 0; i < 11; i++ {
		g.Step(input)
	}
	if got := g.Snapshot().OriginX; got != 3 {
		t.Fatalf("after 11 held ticks OriginX = %d, expected 3", got)
	}

	input.Release(core.ActionLeft)
	for i := 0; i < 30; i++ {
		g.Step(input)
	}
	if got := g.Snapshot().OriginX; got != 3 {
		t.Errorf("release should stop the shift, OriginX = %d", got)
	}
}

func TestStepSoftDropFollowsHeld(t *testing.T) {
	g := newTestGame(t, PieceT)
	normal := g.Session().FallInterval()

	input := core.NewInputFrame()
	input.Hold(core.ActionSoftDrop)
	g.Step(input)
	if got := g.Session().FallInterval(); got >= normal {
		t.Errorf("soft drop interval = %v, expected less than %v", got, normal)
	}

	input.Release(core.ActionSoftDrop)
	g.Step(input)
	if got := g.Session().FallInterval(); got != normal {
		t.Errorf("after release interval = %v, expected %v", got, normal)
	}
}

func TestPauseFreezes(t *testing.T) {
	g := newTestGame(t, PieceT)

	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	before := g.Snapshot()

	input.Clear()
	input.Set(core.ActionHardDrop)
	for i := 0; i < 60; i++ {
		g.Step(input)
	}
	after := g.Snapshot()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("paused game changed (-before +after):\n%s", diff)
	}

	input.Clear()
	input.Set(core.ActionPause)
	g.Step(input)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestQuitStep(t *testing.T) {
	g := newTestGame(t, PieceT)

	input := core.NewInputFrame()
	input.Set(core.ActionQuit)
	input.Set(core.ActionHardDrop)
	res := g.Step(input)
	if !res.Quit {
		t.Error("expected Quit in step result")
	}
	if g.Session().Board().Len() != 0 {
		t.Error("quit should not process other input")
	}
}

func playUntilOver(t *testing.T, g *Game) {
	t.Helper()
	input := core.NewInputFrame()
	for i := 0; i < 50 && !g.State().GameOver; i++ {
		input.Clear()
		input.Set(core.ActionHardDrop)
		g.Step(input)
	}
	if !g.State().GameOver {
		t.Fatal("game did not end")
	}
}

func TestGameOverOnStackedColumn(t *testing.T) {
	g := newTestGame(t, PieceO)
	playUntilOver(t, g)

	res := g.Result()
	if res.Score != 0 || res.Lines != 0 || res.Level != 5 {
		t.Errorf("Result() = %+v, expected zero score at level 5", res)
	}

	// Pause is ignored once the game is over.
	input := core.NewInputFrame()
	input.Set(core.ActionPause)
	g.Step(input)
	if g.State().Paused {
		t.Error("pause should not toggle after game over")
	}
}

func TestResetStartLevel(t *testing.T) {
	g := newTestGame(t, PieceT)
	g.SetStartLevel(12)
	g.Reset(testRuntime())

	if got := g.State().Level; got != 12 {
		t.Errorf("Level = %d, expected 12", got)
	}
	if got := g.StartLevel(); got != 12 {
		t.Errorf("StartLevel() = %d, expected 12", got)
	}
}

func TestResizeKeepsSession(t *testing.T) {
	g := newTestGame(t, PieceO)
	input := core.NewInputFrame()
	input.Set(core.ActionHardDrop)
	g.Step(input)

	g.Resize(20, 10)
	if !g.State().Paused {
		t.Error("too-small screen should report paused")
	}
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("restored screen should resume")
	}
	if g.Session().Board().Len() != 4 {
		t.Errorf("Resize reset the board, Len() = %d", g.Session().Board().Len())
	}
}

func TestRegistryCreate(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("tetris should be registered")
	}

	g, err := registry.Create(GameID, nil)
	if err != nil {
		t.Fatalf("Create(nil) error = %v", err)
	}
	if g.ID() != GameID || g.Title() != "Tetris" {
		t.Errorf("created game %q/%q", g.ID(), g.Title())
	}

	cfg := config.DefaultTetrisConfig()
	cfg.StartLevel = 3
	g, err = registry.Create(GameID, &Options{Config: cfg})
	if err != nil {
		t.Fatalf("Create(*Options) error = %v", err)
	}
	g.Reset(testRuntime())
	if g.State().Level != 3 {
		t.Errorf("Level = %d, expected 3", g.State().Level)
	}

	if _, err := registry.Create(GameID, "fast"); err == nil {
		t.Error("expected error for unsupported options type")
	}

	bad := config.DefaultTetrisConfig()
	bad.Board.Cols = 2
	_, err = registry.Create(GameID, Options{Config: bad})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Create(invalid) error = %v, expected ErrInvalid", err)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, PieceO)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"TETRIS", "Score", "Level", "Lines", "██"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("fresh game should not show game over")
	}

	playUntilOver(t, g)
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected game over overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(Options{Config: config.DefaultTetrisConfig(), Randomizer: pieces(PieceT)})
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 30})

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected size warning, got:\n%s", screen.String())
	}
}
