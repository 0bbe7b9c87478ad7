package layout

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/charmbracelet/x/ansi"
)

// Placeholder is drawn in the middle of a tree that holds no panels.
const Placeholder = "empty"

// Sink receives positioned writes.
type Sink interface {
	QueueAt(at geom.Point, data []byte)
}

// ContentFunc returns the rows to draw for a panel.
type ContentFunc func(id int) [][]byte

// Style controls how separators are drawn.
type Style struct {
	Border lipgloss.Border
	// Paint wraps separator and placeholder text, typically with colour.
	Paint func(string) string
}

// DefaultStyle draws plain single-line separators.
func DefaultStyle() Style {
	return Style{Border: lipgloss.NormalBorder()}
}

func (s Style) paint(str string) string {
	if s.Paint == nil {
		return str
	}
	return s.Paint(str)
}

// Render draws every leaf's content at its absolute origin followed by the
// separators of every internal node. Content is clipped to its leaf, so a
// panel never draws over its neighbours.
func (t *Tree) Render(sink Sink, style Style, content ContentFunc) {
	if t.root.rect.Empty() {
		return
	}
	if t.root.leaf() && !t.root.occupied {
		renderPlaceholder(sink, style, t.root.rect)
		return
	}

	for _, leaf := range t.Leaves() {
		if !leaf.Occupied || content == nil {
			continue
		}
		clip := leaf.Rect.Intersect(t.root.rect)
		if clip.Empty() {
			continue
		}
		rows := content(leaf.PanelID)
		for i, row := range rows {
			if i >= clip.Size.Rows {
				break
			}
			sink.QueueAt(geom.Pt(clip.Origin.Row+i, clip.Origin.Col), clipRow(row, clip.Size.Cols))
		}
	}

	renderSeparators(sink, style, t.rules())
}

// clipRow cuts a styled row to cols cells.
func clipRow(row []byte, cols int) []byte {
	if ansi.StringWidth(string(row)) <= cols {
		return row
	}
	out := ansi.Truncate(string(row), cols, "")
	if strings.IndexByte(out, ansi.ESC) >= 0 {
		out += ansi.ResetStyle
	}
	return []byte(out)
}

func renderPlaceholder(sink Sink, style Style, r geom.Rect) {
	text := ansi.Truncate(Placeholder, r.Size.Cols, "")
	w := ansi.StringWidth(text)
	at := geom.Pt(r.Origin.Row+(r.Size.Rows-1)/2, r.Origin.Col+(r.Size.Cols-w)/2)
	sink.QueueAt(at, []byte(style.paint(text)))
}

func renderSeparators(sink Sink, style Style, seps []rule) {
	cells := make(map[geom.Point]bool)
	for _, sep := range seps {
		s := sep.rect
		for row := s.Origin.Row; row < s.Bottom(); row++ {
			for col := s.Origin.Col; col < s.Right(); col++ {
				cells[geom.Pt(row, col)] = true
			}
		}
	}
	for _, sep := range seps {
		s := sep.rect
		for row := s.Origin.Row; row < s.Bottom(); row++ {
			for col := s.Origin.Col; col < s.Right(); col++ {
				p := geom.Pt(row, col)
				glyph := junction(style.Border, sep.axis,
					cells[geom.Pt(row-1, col)], cells[geom.Pt(row+1, col)],
					cells[geom.Pt(row, col-1)], cells[geom.Pt(row, col+1)])
				sink.QueueAt(p, []byte(style.paint(glyph)))
			}
		}
	}
}

// junction picks the border glyph for a separator cell from which of its
// neighbours are also separator cells.
func junction(b lipgloss.Border, axis Axis, up, down, left, right bool) string {
	var g string
	switch {
	case up && down && left && right:
		g = b.Middle
	case up && down && right:
		g = b.MiddleLeft
	case up && down && left:
		g = b.MiddleRight
	case left && right && down:
		g = b.MiddleTop
	case left && right && up:
		g = b.MiddleBottom
	case axis == Horizontal:
		g = b.Top
	default:
		g = b.Left
	}
	if g == "" {
		return " "
	}
	return g
}
