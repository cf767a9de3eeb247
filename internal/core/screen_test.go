package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(10, 5)
	if s.Width() != 10 || s.Height() != 5 {
		t.Errorf("size = %dx%d, want 10x5", s.Width(), s.Height())
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("GetCell(%d, %d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 5)
	s.Set(3, 2, 'X')
	if got := s.Get(3, 2); got != 'X' {
		t.Errorf("Get(3, 2) = %q, want 'X'", got)
	}

	s.SetColored(4, 2, '█', ColorCyan)
	if got := s.GetCell(4, 2); got.Rune != '█' || got.Color != ColorCyan {
		t.Errorf("GetCell(4, 2) = %+v, want cyan block", got)
	}

	// Out of bounds is ignored on write and blank on read.
	s.Set(-1, 0, 'Y')
	s.Set(10, 0, 'Y')
	s.Set(0, 5, 'Y')
	if got := s.Get(-1, 0); got != ' ' {
		t.Errorf("Get(-1, 0) = %q, want space", got)
	}
	if strings.ContainsRune(s.String(), 'Y') {
		t.Error("out-of-bounds Set should not write")
	}
}

func TestScreenClearResetsColor(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, '#', ColorRed)
	s.Clear()
	if got := s.GetCell(1, 1); got != blankCell {
		t.Errorf("after Clear GetCell = %+v, want blank", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")
	s.Resize(2, 3)
	if s.Row(0) != "ab" {
		t.Errorf("Row(0) = %q, want %q", s.Row(0), "ab")
	}
	if s.Row(2) != "  " {
		t.Errorf("Row(2) = %q, want blank", s.Row(2))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "ab")
	if got := s.Row(0); got != "    ab    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(4, 3)
	s.DrawBox(NewRect(0, 0, 4, 3), ColorWhite)
	want := "┌──┐\n│  │\n└──┘"
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if c := s.GetCell(0, 1); c.Color != ColorWhite {
		t.Errorf("border color = %v, want white", c.Color)
	}
}
