package core

import (
	"strings"
)

// Cell is one character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// Screen is a 2D buffer of colored cells.
// Variants draw into it; the platform turns it into terminal output.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Bounds returns the whole screen as a Rect.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	copyW := min(s.width, width)
	copyH := min(s.height, height)

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear resets every cell to a default-colored space.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// Set places a default-colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	s.SetColored(x, y, r, ColorDefault)
}

// SetColored places a rune with a color at the given position.
func (s *Screen) SetColored(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return blankCell
	}
	return s.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes a colored string starting at (x, y).
func (s *Screen) DrawTextColored(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetColored(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string, c Color) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawTextColored(x, y, text, c)
}

// DrawRect fills a rectangular area with the given rune.
func (s *Screen) DrawRect(r Rect, fill rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetColored(x, y, fill, c)
		}
	}
}

// DrawBox draws a box outline using box-drawing characters.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	s.SetColored(r.X, r.Y, '┌', c)
	s.SetColored(r.Right()-1, r.Y, '┐', c)
	s.SetColored(r.X, r.Bottom()-1, '└', c)
	s.SetColored(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		s.SetColored(x, r.Y, '─', c)
		s.SetColored(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		s.SetColored(r.X, y, '│', c)
		s.SetColored(r.Right()-1, y, '│', c)
	}
}

// DrawVLine draws a vertical line from (x, y) with the given length.
func (s *Screen) DrawVLine(x, y, length int, r rune, c Color) {
	for i := 0; i < length; i++ {
		s.SetColored(x, y+i, r, c)
	}
}

// String returns the runes of the buffer without colors, rows joined by newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the runes of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, cell := range s.cells[y] {
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}
