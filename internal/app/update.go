package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// PanelExitMsg signals that a panel's process has gone away.
type PanelExitMsg struct {
	ID int
}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, m *Mux) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick timer and listens for panel exits.
func (m *Mux) Init() tea.Cmd {
	return tea.Batch(
		TickCmd(),
		ListenForPanelExits(m.exitChan),
	)
}

// ListenForPanelExits creates a command that waits for the next panel whose
// process ended.
func ListenForPanelExits(exitChan chan int) tea.Cmd {
	return func() tea.Msg {
		id, ok := <-exitChan
		if !ok {
			return nil
		}
		return PanelExitMsg{ID: id}
	}
}

// TickCmd creates a command that generates tick messages at 60 FPS.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages and updates the application state.
func (m *Mux) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Any non-tick message invalidates the render cache
	if _, isTick := msg.(TickerMsg); !isTick {
		m.renderSkipped = false
	}

	switch msg := msg.(type) {
	case TickerMsg:
		if m.quitting {
			return m, nil
		}
		// Skip the redraw when no panel produced output since the last tick.
		if !m.hasNewOutput.Swap(false) {
			m.renderSkipped = true
		}
		return m, TickCmd()

	case PanelExitMsg:
		if m.quitting {
			return m, nil
		}
		if p, ok := m.Display.Panel(msg.ID); ok && p.Exited() {
			m.Logger.Info("process exited", "id", msg.ID)
			if m.Mode == ScrollbackMode {
				if sel, ok := m.Display.Selected(); ok && sel.ID == msg.ID {
					m.ExitScrollback()
				}
			}
			if cmd := m.ClosePanel(msg.ID); cmd != nil {
				return m, cmd
			}
		}
		return m, ListenForPanelExits(m.exitChan)

	case tea.WindowSizeMsg:
		m.Resize(geom.Sz(msg.Height, msg.Width))
		return m, nil
	}

	if inputHandler != nil {
		return inputHandler(msg, m)
	}
	return m, nil
}

// Resize adapts the display to a new terminal size. Until the initial panel
// has opened, each resize tries to open it.
func (m *Mux) Resize(size geom.Size) {
	m.Display.Resize(size)
	if m.started || size.Rows <= 0 || size.Cols <= 0 {
		return
	}
	if err := m.OpenPanel(); err != nil {
		m.Logger.Error("open first panel", "err", err)
	}
}
