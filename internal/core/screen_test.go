package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(40, 12)

	if s.Width() != 40 || s.Height() != 12 {
		t.Fatalf("size = %dx%d, expected 40x12", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if s.Row(y) != strings.Repeat(" ", 40) {
			t.Errorf("row %d not blank: %q", y, s.Row(y))
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(3, 4, '@', ColorRed)
	cell := s.GetCell(3, 4)
	if cell.Rune != '@' || cell.Color != ColorRed {
		t.Errorf("GetCell(3, 4) = %+v, expected '@' in red", cell)
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 100, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, 'X', ColorGreen)
	s.Clear()

	if cell := s.GetCell(1, 1); cell.Rune != ' ' || cell.Color != ColorDefault {
		t.Errorf("after Clear cell = %+v, expected blank default", cell)
	}
}

func TestScreenDrawTextClipsAndCountsRunes(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawColoredText(5, 0, "♥♥♥♥", ColorRed) // only three fit

	if s.Row(0) != "     ♥♥♥" {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
	if s.GetCell(7, 0).Color != ColorRed {
		t.Error("expected colored heart at x=7")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, text not at expected position")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(1, 1, 'X')
	s.Resize(20, 8)

	if s.Width() != 20 || s.Height() != 8 {
		t.Errorf("size after Resize = %dx%d", s.Width(), s.Height())
	}
	if s.Get(19, 7) != ' ' {
		t.Error("new area should be blank")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")

	if got := s.String(); got != "abc\nde " {
		t.Errorf("String() = %q", got)
	}
}
