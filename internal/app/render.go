package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/render"
)

// View composes the display into a Bubble Tea view.
func (m *Mux) View() tea.View {
	var view tea.View

	// Fast path: reuse the last frame when no panel produced output.
	if m.renderSkipped && m.cachedViewContent != "" {
		view.SetContent(m.cachedViewContent)
		view.Cursor = m.cachedCursor
	} else {
		canvas := render.NewCanvas(m.Display.Size())
		m.compositor.Compose(m.Display, canvas)
		content := lipgloss.Sprint(canvas.Render())
		m.cachedViewContent = content
		m.cachedCursor = m.realCursor(canvas)
		view.SetContent(content)
		view.Cursor = m.cachedCursor
	}

	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	return view
}
