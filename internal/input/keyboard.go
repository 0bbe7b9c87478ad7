package input

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/app"
	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/layout"
)

// HandleKeyPress routes a key by the current mode.
func HandleKeyPress(msg tea.KeyPressMsg, m *app.Mux) tea.Cmd {
	switch m.Mode {
	case app.PrefixMode:
		if time.Since(m.PrefixActivatedAt) > PrefixKeyTimeout {
			m.Mode = app.TerminalMode
			return HandleTerminalModeKey(msg, m)
		}
		return HandlePrefixCommand(msg, m)
	case app.ScrollbackMode:
		return HandleScrollbackKey(msg, m)
	case app.CommandMode:
		return HandleCommandLineKey(msg, m)
	default:
		return HandleTerminalModeKey(msg, m)
	}
}

// HandleTerminalModeKey forwards a key to the selected panel, or enters
// prefix mode on the leader key.
func HandleTerminalModeKey(msg tea.KeyPressMsg, m *app.Mux) tea.Cmd {
	if msg.String() == config.LeaderKey {
		m.EnterPrefixMode()
		return nil
	}
	p, ok := m.Display.Selected()
	if !ok {
		return nil
	}
	// Typing returns a scrolled panel to its live view.
	if p.ScrollOffset() > 0 {
		p.ScrollReset()
	}
	m.SendToSelected(KeyToBytes(msg, p.AppCursorKeys()))
	return nil
}

// HandlePrefixCommand runs the command bound to the key pressed after the
// leader key.
func HandlePrefixCommand(msg tea.KeyPressMsg, m *app.Mux) tea.Cmd {
	m.Mode = app.TerminalMode
	m.Display.ClearError()

	key := msg.String()
	if key == config.LeaderKey {
		// A second prefix sends the key itself.
		appCursor := false
		if p, ok := m.Display.Selected(); ok {
			appCursor = p.AppCursorKeys()
		}
		m.SendToSelected(KeyToBytes(msg, appCursor))
		return nil
	}

	switch key {
	case "|", "\\", "%":
		return dispatcher.Run("split v", m)
	case "-", "\"":
		return dispatcher.Run("split h", m)
	case "c":
		return dispatcher.Run("new", m)
	case "x":
		return dispatcher.Run("close", m)
	case "[":
		return dispatcher.Run("scrollback", m)
	case ":":
		m.StartCommand()
		return nil
	case "?":
		return dispatcher.Run("keys", m)
	case "q":
		return dispatcher.Run("quit", m)
	case "esc":
		return nil
	}

	if dir, ok := focusKey(key); ok {
		m.Display.FocusDirection(dir)
		return nil
	}

	m.Display.SetErrorMessage("no binding for " + config.LeaderKey + " " + key)
	return nil
}

// focusKey maps arrows and h/j/k/l to a direction.
func focusKey(key string) (layout.Direction, bool) {
	switch key {
	case "up", "k":
		return layout.Up, true
	case "down", "j":
		return layout.Down, true
	case "left", "h":
		return layout.Left, true
	case "right", "l":
		return layout.Right, true
	}
	return 0, false
}

// HandleScrollbackKey moves the selected panel's view through its history.
func HandleScrollbackKey(msg tea.KeyPressMsg, m *app.Mux) tea.Cmd {
	p, ok := m.Display.Selected()
	if !ok {
		m.ExitScrollback()
		return nil
	}
	page := max(p.Size().Rows/config.ScrollPageFraction, 1)

	switch msg.String() {
	case "up", "k":
		p.ScrollUp(1)
	case "down", "j":
		p.ScrollDown(1)
	case "pgup", "ctrl+u", "ctrl+b":
		p.ScrollUp(page)
	case "pgdown", "ctrl+d", "ctrl+f":
		p.ScrollDown(page)
	case "g", "home":
		p.ScrollUp(p.History())
	case "G", "end":
		p.ScrollReset()
	case "q", "esc", "enter":
		m.ExitScrollback()
		return nil
	default:
		return nil
	}
	m.UpdateScrollStatus(p)
	return nil
}

// HandleCommandLineKey edits and runs the command line.
func HandleCommandLineKey(msg tea.KeyPressMsg, m *app.Mux) tea.Cmd {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.EndCommand()
		return nil
	case "enter":
		line := m.CommandLine
		m.EndCommand()
		m.Display.ClearError()
		return dispatcher.Run(line, m)
	case "backspace":
		r := []rune(m.CommandLine)
		if len(r) == 0 {
			m.EndCommand()
			return nil
		}
		m.SetCommandLine(string(r[:len(r)-1]))
		return nil
	case "ctrl+u":
		m.SetCommandLine("")
		return nil
	case "space":
		m.SetCommandLine(m.CommandLine + " ")
		return nil
	}
	if msg.Text != "" && msg.Mod&^tea.ModShift == 0 {
		m.SetCommandLine(m.CommandLine + msg.Text)
	}
	return nil
}
