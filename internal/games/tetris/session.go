package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/config"
)

// Phase is the session's position in the piece lifecycle.
//
// Falling is the only phase that lasts across ticks before the game ends.
// Locking, Clearing and Spawning are passed through within the tick that
// lands a piece; GameOver is terminal until Reset.
type Phase int

const (
	PhaseSpawning Phase = iota
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Input is the set of player events delivered for one tick.
// Press and release flags are edges; the session tracks held state itself.
type Input struct {
	LeftPressed      bool
	LeftReleased     bool
	RightPressed     bool
	RightReleased    bool
	SoftDropPressed  bool
	SoftDropReleased bool
	RotateCW         bool
	RotateCCW        bool
	HardDrop         bool
	Quit             bool
}

// TickResult reports what happened during a tick.
type TickResult struct {
	Cleared  int  // Rows removed this tick
	Locked   bool // A piece was committed to the board
	Spawned  bool // A new piece entered play
	GameOver bool // The session is over
	Quit     bool // Quit was requested; nothing else was processed
}

// Result is the final outcome of a session.
type Result struct {
	Score int
	Level int
	Lines int
}

// Randomizer picks piece types. *rand.Rand satisfies it.
type Randomizer interface {
	Intn(n int) int
}

// Session owns one game: the board, the falling piece and every counter.
// It is not safe for concurrent use; the platform drives it from one goroutine.
type Session struct {
	cfg   config.TetrisConfig
	rng   Randomizer
	board *Board
	piece Piece
	phase Phase

	startLevel int
	level      int
	score      int
	lines      int
	ticks      uint64

	fallAcc     float64 // Seconds since the last gravity step
	softDrop    bool
	leftHeld    bool
	rightHeld   bool
	holdTicks   int     // Ticks a direction has been held
	repeatTimer float64 // Auto-shift fires when this reaches 1
}

// NewSession creates a session and starts it at the configured level.
func NewSession(cfg config.TetrisConfig, rng Randomizer) *Session {
	s := &Session{
		cfg:   cfg,
		rng:   rng,
		board: NewBoard(cfg.Board.Cols, cfg.Board.Rows),
	}
	s.Reset(cfg.StartLevel)
	return s
}

// Reset clears all state and spawns the first piece.
func (s *Session) Reset(startLevel int) {
	s.board.Reset()
	s.startLevel = max(1, startLevel)
	s.level = s.startLevel
	s.score = 0
	s.lines = 0
	s.ticks = 0
	s.fallAcc = 0
	s.softDrop = false
	s.leftHeld = false
	s.rightHeld = false
	s.holdTicks = 0
	s.repeatTimer = 0
	s.spawn()
}

// Board returns the settled cells. Callers must not modify it.
func (s *Session) Board() *Board { return s.board }

// Piece returns the falling piece.
func (s *Session) Piece() Piece { return s.piece }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Lines returns the total number of rows cleared.
func (s *Session) Lines() int { return s.lines }

// Ticks returns the number of ticks processed since Reset.
func (s *Session) Ticks() uint64 { return s.ticks }

// GameOver reports whether the session has ended.
func (s *Session) GameOver() bool { return s.phase == PhaseGameOver }

// Result returns the score, level and total lines.
func (s *Session) Result() Result {
	return Result{Score: s.score, Level: s.level, Lines: s.lines}
}

// Tick advances the session by dt seconds.
//
// Order within a tick: quit check, input events, auto-shift, gravity.
// Rejected moves and rotations are silently ignored.
func (s *Session) Tick(dt float64, in Input) TickResult {
	var res TickResult
	if in.Quit {
		res.Quit = true
		res.GameOver = s.GameOver()
		return res
	}
	if s.phase == PhaseGameOver {
		res.GameOver = true
		return res
	}
	s.ticks++

	s.handleInput(in, &res)
	if s.phase == PhaseGameOver {
		res.GameOver = true
		return res
	}

	s.autoShift(dt)
	s.applyGravity(&res)
	s.fallAcc += dt

	res.GameOver = s.GameOver()
	return res
}

func (s *Session) handleInput(in Input, res *TickResult) {
	if in.LeftPressed {
		s.leftHeld = true
		s.shift(-1)
	}
	if in.RightPressed {
		s.rightHeld = true
		s.shift(1)
	}
	if in.LeftReleased {
		s.leftHeld = false
		s.holdTicks = 0
	}
	if in.RightReleased {
		s.rightHeld = false
		s.holdTicks = 0
	}
	if in.SoftDropPressed {
		s.softDrop = true
	}
	if in.SoftDropReleased {
		s.softDrop = false
	}
	if in.RotateCW {
		s.rotate(Clockwise)
	}
	if in.RotateCCW {
		s.rotate(CounterClockwise)
	}
	if in.HardDrop {
		s.piece, _ = HardDrop(s.board, s.piece)
		s.land(res)
		s.fallAcc = 0
	}
}

func (s *Session) shift(dCol int) {
	if next, ok := Move(s.board, s.piece, dCol, 0); ok {
		s.piece = next
	}
}

func (s *Session) rotate(dir Direction) {
	if next, ok := Rotate(s.board, s.piece, dir); ok {
		s.piece = next
	}
}

// autoShift repeats horizontal moves while a direction is held.
// The repeat timer runs even when nothing is held; firing resets only
// the timer, so the hold counter keeps the shift going until release.
func (s *Session) autoShift(dt float64) {
	if s.leftHeld || s.rightHeld {
		s.holdTicks++
	}
	s.repeatTimer += s.cfg.Timing.RepeatRate * dt
	if s.repeatTimer < 1 || s.holdTicks <= s.cfg.Timing.DASDelayTicks {
		return
	}
	if s.leftHeld {
		s.shift(-1)
	}
	if s.rightHeld {
		s.shift(1)
	}
	s.repeatTimer = 0
}

// FallInterval returns the current seconds-per-row, including soft drop.
func (s *Session) FallInterval() float64 {
	return s.cfg.Timing.FallInterval(s.level, s.softDrop)
}

func (s *Session) applyGravity(res *TickResult) {
	if s.fallAcc < s.FallInterval() {
		return
	}
	if next, ok := Move(s.board, s.piece, 0, 1); ok {
		s.piece = next
	} else {
		s.land(res)
	}
	s.fallAcc = 0
}

// land locks the piece, clears rows, scores and spawns the next piece.
func (s *Session) land(res *TickResult) {
	s.phase = PhaseLocking
	s.board.Lock(s.piece.Cells)
	res.Locked = true

	s.phase = PhaseClearing
	n := s.board.ClearLines()
	if n > 0 {
		s.score += Points(n, s.level)
		s.lines += n
		if s.cfg.Difficulty.Progresses() {
			s.level = max(s.level, LevelFor(s.startLevel, s.lines))
		}
	}
	res.Cleared += n

	s.spawn()
	res.Spawned = true
}

func (s *Session) spawn() {
	s.phase = PhaseSpawning
	t := AllPieces[s.rng.Intn(len(AllPieces))]
	s.piece = SpawnPiece(t, s.board.Cols())
	if !s.board.Fits(s.piece.Cells) {
		s.phase = PhaseGameOver
		return
	}
	s.phase = PhaseFalling
}
