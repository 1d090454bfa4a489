package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative size should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen String() = %q", s.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorBall)
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorBall {
		t.Errorf("GetCell(5, 5) = %+v, expected X/ColorBall", c)
	}

	s.Set(5, 5, 'Y')
	if c := s.GetCell(5, 5); c.Rune != 'Y' || c.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %+v", c)
	}

	// Out of bounds is silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' || s.Get(100, 0) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(s.Bounds(), 'X', ColorWall)
	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("after Clear, expected blank at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColored(2, 1, "Hello", ColorHUD)

	for i, ch := range "Hello" {
		if c := s.GetCell(2+i, 1); c.Rune != ch || c.Color != ColorHUD {
			t.Errorf("expected %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Clipped at the right boundary
	s.DrawText(18, 0, "Hello")
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "●ab")
	if s.Row(0) != "●ab       " {
		t.Errorf("Row(0) = %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi", ColorTitle)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Error("DrawTextCentered did not place text at the center")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#', ColorObstacle)

	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			if c := s.GetCell(x, y); c.Rune != '#' || c.Color != ColorObstacle {
				t.Errorf("expected '#' at (%d, %d), got %+v", x, y, c)
			}
		}
	}
	if s.Get(1, 1) != ' ' || s.Get(5, 5) != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorBorder)

	corners := map[[2]int]rune{{1, 1}: '┌', {5, 1}: '┐', {1, 4}: '└', {5, 4}: '┘'}
	for pos, want := range corners {
		if got := s.Get(pos[0], pos[1]); got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}
	for x := 2; x < 5; x++ {
		if s.Get(x, 1) != '─' || s.Get(x, 4) != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.Get(1, y) != '│' || s.Get(5, y) != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
	if s.GetCell(1, 1).Color != ColorBorder {
		t.Error("box should use the given color")
	}
}

func TestScreenDrawVLine(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawVLine(3, 2, 4, '|', ColorWall)

	for y := 2; y < 6; y++ {
		if s.Get(3, y) != '|' {
			t.Errorf("expected '|' at (3, %d), got %q", y, s.Get(3, y))
		}
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got, want := s.String(), "AAAAA\nBBBBB\nCCCCC"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorHUD)

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}
	if s.GetCell(0, 0).Color != ColorHUD {
		t.Error("colors should be preserved across resize")
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)
	if got := s.Row(-1); got != "          " {
		t.Errorf("out of bounds row should be spaces, got %q", got)
	}
}
