package tui

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// HeldKeys synthesizes key-up events for terminals, which only report
// presses. A holdable action stays down while presses keep arriving
// (keyboard auto-repeat) and is released once none has been seen for
// the release window.
type HeldKeys struct {
	release  time.Duration
	lastSeen map[core.Action]time.Time
}

// holdable lists the actions whose held state the game reads.
var holdable = map[core.Action]bool{
	core.ActionLeft:     true,
	core.ActionRight:    true,
	core.ActionSoftDrop: true,
}

// NewHeldKeys creates a tracker with the given release window.
func NewHeldKeys(release time.Duration) *HeldKeys {
	if release <= 0 {
		release = 120 * time.Millisecond
	}
	return &HeldKeys{
		release:  release,
		lastSeen: make(map[core.Action]time.Time),
	}
}

// Press records a key press. It reports whether the action is holdable.
func (h *HeldKeys) Press(a core.Action, now time.Time) bool {
	if !holdable[a] {
		return false
	}
	// Opposite directions cannot both be held from a terminal.
	switch a {
	case core.ActionLeft:
		delete(h.lastSeen, core.ActionRight)
	case core.ActionRight:
		delete(h.lastSeen, core.ActionLeft)
	}
	h.lastSeen[a] = now
	return true
}

// Expire releases actions whose last press is older than the window.
func (h *HeldKeys) Expire(now time.Time) {
	for a, t := range h.lastSeen {
		if now.Sub(t) >= h.release {
			delete(h.lastSeen, a)
		}
	}
}

// Reset releases everything.
func (h *HeldKeys) Reset() {
	clear(h.lastSeen)
}

// IsHeld reports whether an action is currently down.
func (h *HeldKeys) IsHeld(a core.Action) bool {
	_, ok := h.lastSeen[a]
	return ok
}

// Apply copies the held set into an input frame.
func (h *HeldKeys) Apply(f *core.InputFrame) {
	for a := range holdable {
		if h.IsHeld(a) {
			f.Hold(a)
		} else {
			f.Release(a)
		}
	}
}
