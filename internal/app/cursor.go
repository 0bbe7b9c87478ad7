package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/render"
)

// realCursor returns the terminal cursor for the frame in canvas, or nil to
// hide it.
func (m *Mux) realCursor(canvas *render.Canvas) *tea.Cursor {
	if m.Mode == ScrollbackMode {
		return nil
	}
	at, visible := canvas.Cursor()
	if !visible {
		return nil
	}

	cursor := tea.NewCursor(at.Col, at.Row)
	if m.Mode == CommandMode {
		return cursor
	}
	if p, ok := m.Display.Selected(); ok {
		cursor.Shape, cursor.Blink = mapCursorStyle(p.CursorStyle())
	}
	return cursor
}

// mapCursorStyle converts a DECSCUSR parameter to a cursor shape and blink.
func mapCursorStyle(style int) (tea.CursorShape, bool) {
	switch style {
	case 3, 4:
		return tea.CursorUnderline, style == 3
	case 5, 6:
		return tea.CursorBar, style == 5
	case 2:
		return tea.CursorBlock, false
	default:
		return tea.CursorBlock, true
	}
}
