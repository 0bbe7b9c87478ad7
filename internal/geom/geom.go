// Package geom holds the small value types used for terminal geometry.
package geom

import (
	"fmt"

	uv "github.com/charmbracelet/ultraviolet"
)

// Size is a height and width measured in cells.
type Size struct {
	Rows int
	Cols int
}

// Point is a zero-based cell position.
type Point struct {
	Row int
	Col int
}

// Rect is a rectangle of cells anchored at Origin.
type Rect struct {
	Origin Point
	Size   Size
}

// Sz is shorthand for Size{Rows: rows, Cols: cols}.
func Sz(rows, cols int) Size {
	return Size{Rows: rows, Cols: cols}
}

// Pt is shorthand for Point{Row: row, Col: col}.
func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

// Empty reports whether the size has no cells.
func (s Size) Empty() bool {
	return s.Rows <= 0 || s.Cols <= 0
}

// Area returns the number of cells.
func (s Size) Area() int {
	if s.Empty() {
		return 0
	}
	return s.Rows * s.Cols
}

// Contains reports whether p lies inside a rectangle of this size anchored at
// the origin.
func (s Size) Contains(p Point) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < s.Rows && p.Col < s.Cols
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{Row: p.Row + q.Row, Col: p.Col + q.Col}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{Row: p.Row - q.Row, Col: p.Col - q.Col}
}

// Clamp moves p into [0, s.Rows) x [0, s.Cols). An empty size clamps to the
// origin.
func (p Point) Clamp(s Size) Point {
	return Point{Row: Clamp(p.Row, 0, s.Rows-1), Col: Clamp(p.Col, 0, s.Cols-1)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// R builds a Rect from its origin and size components.
func R(row, col, rows, cols int) Rect {
	return Rect{Origin: Pt(row, col), Size: Sz(rows, cols)}
}

// Bottom returns the first row below the rectangle.
func (r Rect) Bottom() int { return r.Origin.Row + r.Size.Rows }

// Right returns the first column right of the rectangle.
func (r Rect) Right() int { return r.Origin.Col + r.Size.Cols }

// Empty reports whether the rectangle has no cells.
func (r Rect) Empty() bool { return r.Size.Empty() }

// Contains reports whether the absolute point p lies in r.
func (r Rect) Contains(p Point) bool {
	return r.Size.Contains(p.Sub(r.Origin))
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return !r.ToUV().Intersect(o.ToUV()).Empty()
}

// ToUV converts r to an ultraviolet rectangle (x is the column, y the row).
func (r Rect) ToUV() uv.Rectangle {
	if r.Empty() {
		return uv.Rectangle{}
	}
	return uv.Rect(r.Origin.Col, r.Origin.Row, r.Size.Cols, r.Size.Rows)
}

// FromUV converts an ultraviolet rectangle back to a Rect.
func FromUV(u uv.Rectangle) Rect {
	return R(u.Min.Y, u.Min.X, u.Dy(), u.Dx())
}

// Intersect returns the cells shared by r and o.
func (r Rect) Intersect(o Rect) Rect {
	return FromUV(r.ToUV().Intersect(o.ToUV()))
}

func (r Rect) String() string {
	return fmt.Sprintf("%v+%v", r.Origin, r.Size)
}

// Clamp returns v limited to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
