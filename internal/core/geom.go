// Package core provides the host-neutral types shared by variants and the
// platform layer: input frames, the colored screen buffer and integer geometry.
// It has no Bubble Tea dependency so variant rendering stays testable.
package core

import "cmp"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Clip returns the overlap of two rectangles, or an empty Rect.
func (r Rect) Clip(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	return Rect{X: x, Y: y, W: min(r.Right(), other.Right()) - x, H: min(r.Bottom(), other.Bottom()) - y}
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
