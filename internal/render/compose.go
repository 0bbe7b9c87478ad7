// Package render composites the display into positioned writes for a sink.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuimux/internal/display"
	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/charmbracelet/x/ansi"
)

// Sink receives one frame: positioned writes followed by a cursor
// instruction.
type Sink interface {
	QueueAt(at geom.Point, data []byte)
	SetCursor(at geom.Point, visible bool)
}

// Styles are the decorations drawn around panel content.
type Styles struct {
	Header       lipgloss.Style
	HeaderActive lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Prompt       lipgloss.Style
	Indicator    lipgloss.Style
}

// DefaultStyles uses the terminal's own palette.
func DefaultStyles() Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Faint(true),
		HeaderActive: lipgloss.NewStyle().Bold(true).Reverse(true),
		Status:       lipgloss.NewStyle().Faint(true),
		Error:        lipgloss.NewStyle().Bold(true).Foreground(ansi.BasicColor(1)),
		Prompt:       lipgloss.NewStyle(),
		Indicator:    lipgloss.NewStyle().Reverse(true),
	}
}

// Compositor draws frames with a fixed set of styles.
type Compositor struct {
	Styles Styles
}

// New returns a compositor using styles.
func New(styles Styles) *Compositor {
	return &Compositor{Styles: styles}
}

// Compose draws d into sink with the default styles.
func Compose(d *display.Display, sink Sink) {
	New(DefaultStyles()).Compose(d, sink)
}

// Compose draws one full frame: blank rows, the header, every panel and
// separator, the status row and finally the cursor.
func (c *Compositor) Compose(d *display.Display, sink Sink) {
	d.View(func(f display.Frame) {
		c.compose(f, sink)
	})
}

func (c *Compositor) compose(f display.Frame, sink Sink) {
	if f.Size.Empty() {
		sink.SetCursor(geom.Point{}, false)
		return
	}
	blank := []byte(strings.Repeat(" ", f.Size.Cols))
	for row := range f.Size.Rows {
		sink.QueueAt(geom.Pt(row, 0), blank)
	}

	if f.Header {
		sink.QueueAt(geom.Pt(0, 0), []byte(c.header(f)))
	}

	f.Tree.Render(sink, f.Style, func(id int) [][]byte {
		if p := f.Panel(id); p != nil {
			return p.Content()
		}
		return nil
	})

	for _, p := range f.Panels {
		r, ok := f.Tree.Geometry(p.ID)
		if !ok || r.Empty() {
			continue
		}
		if off := p.ScrollOffset(); off > 0 {
			tag := c.Styles.Indicator.Render(fmt.Sprintf("[%d/%d]", off, p.History()))
			col := max(r.Right()-ansi.StringWidth(tag), r.Origin.Col)
			sink.QueueAt(geom.Pt(r.Origin.Row, col), []byte(ansi.Truncate(tag, r.Size.Cols, "")))
		}
	}

	statusRow := f.Size.Rows - 1
	line, cursorCol := c.status(f)
	sink.QueueAt(geom.Pt(statusRow, 0), []byte(line))

	switch {
	case f.PromptActive:
		sink.SetCursor(geom.Pt(statusRow, min(cursorCol, f.Size.Cols-1)), true)
	case f.HasSelection && f.Panel(f.Selected) != nil:
		pos, visible := f.Panel(f.Selected).Cursor()
		leaf, ok := f.Tree.Geometry(f.Selected)
		visible = visible && ok && leaf.Size.Contains(pos)
		sink.SetCursor(leaf.Origin.Add(pos), visible)
	default:
		sink.SetCursor(geom.Pt(statusRow, 0), false)
	}
}

// header lists the panels, highlighting the selected one. Other panels that
// rang the bell since they were last selected are marked with "!".
func (c *Compositor) header(f display.Frame) string {
	var b strings.Builder
	for i, p := range f.Panels {
		if i > 0 {
			b.WriteByte(' ')
		}
		selected := f.HasSelection && p.ID == f.Selected
		label := " " + strconv.Itoa(p.ID) + ":" + p.Title()
		if !selected && p.Bells() > 0 {
			label += "!"
		}
		label += " "
		if selected {
			b.WriteString(c.Styles.HeaderActive.Render(label))
		} else {
			b.WriteString(c.Styles.Header.Render(label))
		}
	}
	return ansi.Truncate(b.String(), f.Size.Cols, "…")
}

// status returns the bottom row and the column where a prompt cursor sits.
func (c *Compositor) status(f display.Frame) (string, int) {
	switch {
	case f.PromptActive:
		text := ansi.Truncate(f.Prompt, f.Size.Cols, "")
		return c.Styles.Prompt.Render(text), ansi.StringWidth(text)
	case f.Error != "":
		return c.Styles.Error.Render(ansi.Truncate(f.Error, f.Size.Cols, "…")), 0
	default:
		return c.Styles.Status.Render(ansi.Truncate(f.Status, f.Size.Cols, "…")), 0
	}
}
