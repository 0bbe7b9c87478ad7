package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/app"
	"github.com/Gaurav-Gosain/tuimux/internal/testutil"
)

func TestMouseClickSelectsPanel(t *testing.T) {
	h := newHarness(t, 10, 41)
	h.press(prefixKey, textKey("|"))

	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"left panel", 5, 3, 1},
		{"separator keeps selection", 20, 3, 1},
		{"header keeps selection", 30, 0, 1},
		{"right panel", 30, 3, 2},
		{"right panel bottom row", 40, 8, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			HandleInput(tea.MouseClickMsg{X: tt.x, Y: tt.y, Button: tea.MouseLeft}, h.m)
			if id := h.selected(t); id != tt.want {
				t.Errorf("selected %d, want %d", id, tt.want)
			}
		})
	}

	HandleInput(tea.MouseClickMsg{X: 5, Y: 3, Button: tea.MouseRight}, h.m)
	if id := h.selected(t); id != 2 {
		t.Errorf("right click changed selection to %d", id)
	}
}

func TestMouseClickLeavesScrollback(t *testing.T) {
	h := newHarness(t, 10, 41)
	h.press(prefixKey, textKey("|"))
	h.press(prefixKey, textKey("["))
	if h.m.Mode != app.ScrollbackMode {
		t.Fatalf("mode = %v", h.m.Mode)
	}
	HandleInput(tea.MouseClickMsg{X: 5, Y: 3, Button: tea.MouseLeft}, h.m)
	if h.m.Mode != app.TerminalMode || h.selected(t) != 1 {
		t.Errorf("mode %v selected %d", h.m.Mode, h.selected(t))
	}
}

func TestMouseWheelScrollsPanelUnderPointer(t *testing.T) {
	h := newHarness(t, 10, 41)
	h.press(prefixKey, textKey("|"))
	h.shells[1].SendOutput(testutil.NumberedLines(30))
	p1, _ := h.m.Display.Panel(1)
	waitFor(t, "history", func() bool { return p1.History() > 5 })

	HandleInput(tea.MouseWheelMsg{X: 2, Y: 4, Button: tea.MouseWheelUp}, h.m)
	HandleInput(tea.MouseWheelMsg{X: 2, Y: 4, Button: tea.MouseWheelUp}, h.m)
	if got := p1.ScrollOffset(); got != 6 {
		t.Errorf("offset = %d, want 6", got)
	}
	HandleInput(tea.MouseWheelMsg{X: 2, Y: 4, Button: tea.MouseWheelDown}, h.m)
	if got := p1.ScrollOffset(); got != 3 {
		t.Errorf("offset = %d, want 3", got)
	}
	if id := h.selected(t); id != 2 {
		t.Errorf("wheel changed selection to %d", id)
	}

	// Typing into the scrolled panel returns it to live output.
	h.press(prefixKey, tea.KeyPressMsg{Code: tea.KeyLeft})
	h.typeText("a")
	if got := p1.ScrollOffset(); got != 0 {
		t.Errorf("offset after typing = %d", got)
	}
}
