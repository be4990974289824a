// Package tetris implements the falling-block puzzle: shapes, board,
// rotation with wall kicks, line clearing, scoring and the tick-driven
// session, plus the adapter that plugs it into the game registry.
package tetris

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// GameID is the registry identifier.
const GameID = "tetris"

// Options configures a Game.
type Options struct {
	Config config.TetrisConfig

	// StartLevel overrides Config.StartLevel when positive.
	StartLevel int

	// Randomizer picks pieces. Nil means a math/rand source seeded from
	// RuntimeConfig.Seed on every Reset.
	Randomizer Randomizer
}

// Game adapts a Session to the registry.Game contract.
type Game struct {
	opts    Options
	session *Session

	frame   time.Duration
	screenW int
	screenH int

	// Held state seen on the previous Step, used to derive edges.
	prevLeft     bool
	prevRight    bool
	prevSoftDrop bool

	paused   bool
	tooSmall bool
}

// New creates a game. Reset must be called before Step.
func New(opts Options) *Game {
	return &Game{opts: opts}
}

func init() {
	registry.Register(GameID, "Tetris", func(o any) (registry.Game, error) {
		opts, err := optionsFrom(o)
		if err != nil {
			return nil, err
		}
		return New(opts), nil
	})
}

func optionsFrom(o any) (Options, error) {
	var opts Options
	switch v := o.(type) {
	case nil:
		opts = Options{Config: config.DefaultTetrisConfig()}
	case Options:
		opts = v
	case *Options:
		if v == nil {
			return Options{Config: config.DefaultTetrisConfig()}, nil
		}
		opts = *v
	default:
		return Options{}, fmt.Errorf("tetris: unsupported options type %T", o)
	}
	if err := opts.Config.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// SetStartLevel changes the level used by the next Reset.
func (g *Game) SetStartLevel(level int) {
	g.opts.StartLevel = level
}

// StartLevel returns the level the next Reset will start at.
func (g *Game) StartLevel() int {
	if g.opts.StartLevel > 0 {
		return g.opts.StartLevel
	}
	return g.opts.Config.StartLevel
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.frame = cfg.FrameDuration()

	rng := g.opts.Randomizer
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	cfgCopy := g.opts.Config
	cfgCopy.StartLevel = g.StartLevel()
	g.session = NewSession(cfgCopy, rng)

	g.prevLeft, g.prevRight, g.prevSoftDrop = false, false, false
	g.paused = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize records new screen dimensions without restarting the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minSize()
	g.tooSmall = w < minW || h < minH
}

// Session exposes the underlying session.
func (g *Game) Session() *Session { return g.session }

// Result returns the outcome of the current session.
func (g *Game) Result() Result { return g.session.Result() }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		return core.StepResult{State: g.State(), Quit: true}
	}
	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}

	left, right, soft := in.IsHeld(core.ActionLeft), in.IsHeld(core.ActionRight), in.IsHeld(core.ActionSoftDrop)
	if g.paused || g.tooSmall {
		// Freeze, but keep edge tracking in sync so unpausing
		// does not replay a stale press.
		g.prevLeft, g.prevRight, g.prevSoftDrop = left, right, soft
		return core.StepResult{State: g.State()}
	}

	input := Input{
		RotateCW:  in.Has(core.ActionRotateCW),
		RotateCCW: in.Has(core.ActionRotateCCW),
		HardDrop:  in.Has(core.ActionHardDrop),
	}
	input.LeftPressed, input.LeftReleased = edges(in, core.ActionLeft, g.prevLeft)
	input.RightPressed, input.RightReleased = edges(in, core.ActionRight, g.prevRight)
	input.SoftDropPressed, input.SoftDropReleased = edges(in, core.ActionSoftDrop, g.prevSoftDrop)
	g.prevLeft, g.prevRight, g.prevSoftDrop = left, right, soft

	res := g.session.Tick(g.frameSeconds(in), input)

	return core.StepResult{
		State:   g.State(),
		Cleared: res.Cleared,
	}
}

// edges derives press/release transitions for an action.
// A triggered action that is not held counts as a tap: pressed and
// released within the same tick.
func edges(in core.InputFrame, a core.Action, prev bool) (pressed, released bool) {
	now := in.IsHeld(a)
	tapped := in.Has(a)
	pressed = !prev && (now || tapped)
	released = !now && (prev || tapped)
	return pressed, released
}

func (g *Game) frameSeconds(in core.InputFrame) float64 {
	if in.Delta > 0 {
		return in.Delta.Seconds()
	}
	return g.frame.Seconds()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		Lines:    g.session.Lines(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}
