package app

import (
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/tuimux/internal/display"
	"github.com/Gaurav-Gosain/tuimux/internal/panel"
)

// EnterPrefixMode waits for the key that follows the leader key.
func (m *Mux) EnterPrefixMode() {
	m.Mode = PrefixMode
	m.PrefixActivatedAt = time.Now()
}

// EnterScrollback switches the selected panel into history browsing.
func (m *Mux) EnterScrollback() {
	p, ok := m.Display.Selected()
	if !ok {
		_ = m.Display.Fail(display.ErrNoSelection)
		return
	}
	m.Mode = ScrollbackMode
	m.UpdateScrollStatus(p)
}

// ExitScrollback returns the selected panel to its live view.
func (m *Mux) ExitScrollback() {
	if p, ok := m.Display.Selected(); ok {
		p.ScrollReset()
	}
	m.Mode = TerminalMode
	m.Display.SetStatus("")
}

// UpdateScrollStatus shows p's position in its history.
func (m *Mux) UpdateScrollStatus(p *panel.Panel) {
	m.Display.SetStatus(fmt.Sprintf("scrollback %d/%d  q to leave", p.ScrollOffset(), p.History()))
}

// StartCommand opens the command line.
func (m *Mux) StartCommand() {
	m.Mode = CommandMode
	m.CommandLine = ""
	m.Display.SetPrompt(":", true)
}

// SetCommandLine replaces the command line text.
func (m *Mux) SetCommandLine(s string) {
	m.CommandLine = s
	m.Display.SetPrompt(":"+s, true)
}

// EndCommand closes the command line.
func (m *Mux) EndCommand() {
	m.Mode = TerminalMode
	m.CommandLine = ""
	m.Display.SetPrompt("", false)
}
