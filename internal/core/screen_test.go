package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 6x3", s.Width(), s.Height())
	}
	expected := strings.Repeat("      \n", 2) + "      "
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)
	s.SetColored(3, 2, '█', ColorCyan)

	if cell := s.GetCell(3, 2); cell != (Cell{Rune: '█', Color: ColorCyan}) {
		t.Errorf("GetCell(3, 2) = %+v, expected {█ Cyan}", cell)
	}

	s.Set(3, 2, 'x')
	if cell := s.GetCell(3, 2); cell != (Cell{Rune: 'x'}) {
		t.Errorf("Set should reset the color, got %+v", cell)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)
	points := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}}
	for _, p := range points {
		s.SetColored(p[0], p[1], '#', ColorRed)
		if cell := s.GetCell(p[0], p[1]); cell != blank {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], cell)
		}
	}
	if strings.ContainsRune(s.String(), '#') {
		t.Error("out of bounds writes must not reach the buffer")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", ColorRed)
	s.Clear()

	if c := s.GetCell(0, 0); c != blank {
		t.Errorf("after Clear, GetCell(0, 0) = %+v, expected blank", c)
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name     string
		x        int
		text     string
		expected string
	}{
		{"fits", 1, "abc", " abc  "},
		{"clipped right", 4, "abc", "    ab"},
		{"clipped left", -1, "abc", "bc    "},
		{"multibyte", 0, "██", "██    "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(6, 1)
			s.DrawText(tc.x, 0, tc.text)
			if got := s.String(); got != tc.expected {
				t.Errorf("String() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCenteredColored(0, "▶▶", ColorYellow)

	if s.GetCell(4, 0).Rune != '▶' || s.GetCell(5, 0).Rune != '▶' {
		t.Errorf("text not centered: %q", s.String())
	}
	if s.GetCell(4, 0).Color != ColorYellow {
		t.Error("centered text should keep its color")
	}

	s.Clear()
	s.DrawTextCentered(0, "PAUSED")
	if got := s.String(); got != "  PAUSED  " {
		t.Errorf("String() = %q, expected %q", got, "  PAUSED  ")
	}
}

func TestScreenDrawBoxColored(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBoxColored(NewRect(0, 0, 5, 4), ColorWhite)

	expected := "┌───┐\n│   │\n│   │\n└───┘"
	if got := s.String(); got != expected {
		t.Errorf("box =\n%s\nexpected\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorWhite || s.GetCell(4, 3).Color != ColorWhite {
		t.Error("box corners should carry the box color")
	}
}

func TestScreenDrawHLine(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawTextColored(0, 0, "xxxxx", ColorRed)
	s.DrawHLine(1, 0, 3, ' ')

	if got := s.String(); got != "x   x" {
		t.Errorf("String() = %q, expected %q", got, "x   x")
	}
	if s.GetCell(2, 0).Color != ColorDefault {
		t.Error("DrawHLine should clear the color it overwrites")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(6, 3)
	s.SetColored(1, 1, '#', ColorGray)
	s.SetColored(5, 2, '@', ColorRed)

	s.Resize(10, 5)
	if s.Width() != 10 || s.Height() != 5 {
		t.Fatalf("size = %dx%d, expected 10x5", s.Width(), s.Height())
	}
	if c := s.GetCell(1, 1); c != (Cell{Rune: '#', Color: ColorGray}) {
		t.Errorf("after grow, GetCell(1, 1) = %+v, expected {# Gray}", c)
	}

	s.Resize(3, 2)
	if c := s.GetCell(1, 1); c.Rune != '#' {
		t.Errorf("after shrink, GetCell(1, 1) = %+v, expected #", c)
	}
	if strings.ContainsRune(s.String(), '@') {
		t.Error("cells outside the new size should be dropped")
	}
}
