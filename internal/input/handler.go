// Package input implements tuimux input handling and key forwarding.
//
// Keys go to the selected panel until the prefix key is pressed; the next key
// is then read as a command. Scrollback and command-line modes take every
// key until they are left.
package input

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/app"
)

// PrefixKeyTimeout is the duration after which prefix mode times out
const PrefixKeyTimeout = 2 * time.Second

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, m *app.Mux) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return m, HandleKeyPress(msg, m)
	case tea.PasteMsg:
		if m.Mode == app.CommandMode {
			m.SetCommandLine(m.CommandLine + msg.Content)
			return m, nil
		}
		if m.Mode == app.TerminalMode {
			m.Paste(msg.Content)
		}
	case tea.MouseClickMsg:
		handleMouseClick(msg, m)
	case tea.MouseWheelMsg:
		handleMouseWheel(msg, m)
	}
	return m, nil
}
