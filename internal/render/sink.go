package render

import (
	"bufio"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

const (
	resetStyle = "\x1b[0m"
	showCursor = "\x1b[?25h"
	hideCursor = "\x1b[?25l"
)

// WriterSink turns a frame into cursor-addressed writes on w. Call Flush
// after Compose.
type WriterSink struct {
	w   *bufio.Writer
	err error
}

// NewWriterSink wraps w. The cursor is hidden while the frame is drawn.
func NewWriterSink(w io.Writer) *WriterSink {
	s := &WriterSink{w: bufio.NewWriter(w)}
	s.write(hideCursor)
	return s
}

func (s *WriterSink) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(str)
}

func moveTo(p geom.Point) string {
	return fmt.Sprintf("\x1b[%d;%dH", p.Row+1, p.Col+1)
}

// QueueAt writes data at the absolute position at, resetting attributes on
// both sides.
func (s *WriterSink) QueueAt(at geom.Point, data []byte) {
	s.write(moveTo(at) + resetStyle)
	if s.err == nil {
		_, s.err = s.w.Write(data)
	}
	s.write(resetStyle)
}

// SetCursor places the terminal cursor and shows or hides it.
func (s *WriterSink) SetCursor(at geom.Point, visible bool) {
	s.write(moveTo(at))
	if visible {
		s.write(showCursor)
	}
}

// Flush writes out the frame and returns the first error seen.
func (s *WriterSink) Flush() error {
	if s.err != nil {
		return s.err
	}
	return s.w.Flush()
}

// Canvas collects a frame as lipgloss layers for a bubbletea view. Later
// writes are drawn over earlier ones.
type Canvas struct {
	size    geom.Size
	layers  []*lipgloss.Layer
	cursor  geom.Point
	visible bool
}

// NewCanvas returns an empty canvas of the given size.
func NewCanvas(size geom.Size) *Canvas {
	return &Canvas{size: size}
}

// QueueAt adds data as a layer at the absolute position at.
func (c *Canvas) QueueAt(at geom.Point, data []byte) {
	layer := lipgloss.NewLayer(string(data)).X(at.Col).Y(at.Row).Z(len(c.layers))
	c.layers = append(c.layers, layer)
}

// SetCursor records where the cursor goes.
func (c *Canvas) SetCursor(at geom.Point, visible bool) {
	c.cursor, c.visible = at, visible
}

// Cursor returns the recorded cursor.
func (c *Canvas) Cursor() (geom.Point, bool) {
	return c.cursor, c.visible
}

// Render composes the layers into one string.
func (c *Canvas) Render() string {
	canvas := lipgloss.NewCanvas(c.size.Cols, c.size.Rows)
	for _, l := range c.layers {
		canvas.Compose(l)
	}
	return canvas.Render()
}
