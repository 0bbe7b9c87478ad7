package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/app"
	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/geom"
	"github.com/Gaurav-Gosain/tuimux/internal/panel"
)

// findClickedPanel returns the panel under the pointer, or nil.
func findClickedPanel(x, y int, m *app.Mux) *panel.Panel {
	at := geom.Pt(y, x)
	for _, p := range m.Display.Panels() {
		if p.Rect().Contains(at) {
			return p
		}
	}
	return nil
}

// handleMouseClick selects the panel under a left click.
func handleMouseClick(msg tea.MouseClickMsg, m *app.Mux) {
	if msg.Button != tea.MouseLeft || m.Mode == app.CommandMode {
		return
	}
	p := findClickedPanel(msg.X, msg.Y, m)
	if p == nil {
		return
	}
	if sel, ok := m.Display.Selected(); ok && sel.ID == p.ID {
		return
	}
	if m.Mode == app.ScrollbackMode {
		m.ExitScrollback()
	}
	_ = m.Display.SetSelected(p.ID)
}

// handleMouseWheel scrolls the history of the panel under the pointer.
func handleMouseWheel(msg tea.MouseWheelMsg, m *app.Mux) {
	p := findClickedPanel(msg.X, msg.Y, m)
	if p == nil {
		return
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		p.ScrollUp(config.WheelScrollLines)
	case tea.MouseWheelDown:
		p.ScrollDown(config.WheelScrollLines)
	default:
		return
	}
	if sel, ok := m.Display.Selected(); ok && sel.ID == p.ID && m.Mode == app.ScrollbackMode {
		m.UpdateScrollStatus(p)
	}
}
