package layout

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

// Direction is a focus movement.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// ParseDirection accepts up, down, left, right and the vi keys k, j, h, l.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up", "k":
		return Up, nil
	case "down", "j":
		return Down, nil
	case "left", "h":
		return Left, nil
	case "right", "l":
		return Right, nil
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}

// measure reports whether cand lies in the half-plane beyond cur in direction
// d, the gap between their facing edges, and how much they overlap along the
// perpendicular axis.
func (d Direction) measure(cur, cand geom.Rect) (dist, overlap int, ok bool) {
	switch d {
	case Left:
		if cand.Right() > cur.Origin.Col {
			return 0, 0, false
		}
		dist = cur.Origin.Col - cand.Right()
		overlap = rowOverlap(cur, cand)
	case Right:
		if cand.Origin.Col < cur.Right() {
			return 0, 0, false
		}
		dist = cand.Origin.Col - cur.Right()
		overlap = rowOverlap(cur, cand)
	case Up:
		if cand.Bottom() > cur.Origin.Row {
			return 0, 0, false
		}
		dist = cur.Origin.Row - cand.Bottom()
		overlap = colOverlap(cur, cand)
	case Down:
		if cand.Origin.Row < cur.Bottom() {
			return 0, 0, false
		}
		dist = cand.Origin.Row - cur.Bottom()
		overlap = colOverlap(cur, cand)
	default:
		return 0, 0, false
	}
	return dist, overlap, true
}

// rowOverlap returns how many rows a and b share, ignoring columns.
func rowOverlap(a, b geom.Rect) int {
	return geom.R(a.Origin.Row, 0, a.Size.Rows, 1).Intersect(geom.R(b.Origin.Row, 0, b.Size.Rows, 1)).Size.Rows
}

// colOverlap returns how many columns a and b share, ignoring rows.
func colOverlap(a, b geom.Rect) int {
	return geom.R(0, a.Origin.Col, 1, a.Size.Cols).Intersect(geom.R(0, b.Origin.Col, 1, b.Size.Cols)).Size.Cols
}
