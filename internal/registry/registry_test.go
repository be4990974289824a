package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }

func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {}

func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }

func (g *stubGame) Render(*core.Screen) {}

func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreate(t *testing.T) {
	Register("stub_a", "Stub A", func(any) (Game, error) {
		return &stubGame{id: "stub_a"}, nil
	})

	if !Exists("stub_a") {
		t.Fatal("Exists(stub_a) = false, expected true")
	}

	g, err := Create("stub_a", nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("Create().ID() = %q, expected %q", g.ID(), "stub_a")
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_a" {
			found = true
			if info.Title != "Stub A" {
				t.Errorf("List() title = %q, expected %q", info.Title, "Stub A")
			}
		}
	}
	if !found {
		t.Error("List() should include stub_a")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("does_not_exist", nil); err == nil {
		t.Error("Create() of unknown game should fail")
	}
}

func TestCreateFactoryError(t *testing.T) {
	boom := errors.New("bad options")
	Register("stub_err", "Stub Err", func(any) (Game, error) {
		return nil, boom
	})

	_, err := Create("stub_err", 42)
	if !errors.Is(err, boom) {
		t.Errorf("Create() error = %v, expected wrapped %v", err, boom)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", "Dup", func(any) (Game, error) { return &stubGame{}, nil })

	defer func() {
		if recover() == nil {
			t.Error("second Register with the same ID should panic")
		}
	}()
	Register("stub_dup", "Dup", func(any) (Game, error) { return &stubGame{}, nil })
}
