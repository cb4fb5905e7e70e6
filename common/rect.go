package common

import "fmt"

// Rect is an axis-aligned pixel rectangle. The right and bottom edges are
// exclusive.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains reports whether the pixel (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() &&
		y >= r.Y && y < r.Bottom()
}

func (r Rect) Intersects(other Rect) bool {
	return r.X < other.Right() &&
		r.Right() > other.X &&
		r.Y < other.Bottom() &&
		r.Bottom() > other.Y
}

// Center returns the rectangle center in pixel space.
func (r Rect) Center() (float64, float64) {
	return float64(r.X) + float64(r.Width)/2, float64(r.Y) + float64(r.Height)/2
}

// MoveTo returns a copy of r with its origin at (x, y).
func (r Rect) MoveTo(x, y int) Rect {
	r.X = x
	r.Y = y
	return r
}

// ClampPoint clamps (x, y) into the rectangle.
func (r Rect) ClampPoint(x, y int) (int, int) {
	return Clamp(x, r.X, r.Right()-1), Clamp(y, r.Y, r.Bottom()-1)
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}
