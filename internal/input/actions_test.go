package input

import (
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/display"
)

func TestActionDispatcherErrors(t *testing.T) {
	h := newHarness(t, 10, 40)
	d := NewActionDispatcher()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"split", nil, "want 1 argument"},
		{"split", []string{"diagonal"}, "axis"},
		{"focus", []string{"sideways"}, "direction"},
		{"close", []string{"99"}, "no panel 99"},
		{"close", []string{"1", "2"}, "want 0 to 1 arguments"},
		{"select", []string{"abc"}, "invalid panel id"},
		{"select", []string{"7"}, "unknown panel"},
		{"new", []string{"extra"}, "want 0 argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name+" "+strings.Join(tt.args, " "), func(t *testing.T) {
			_, err := d.Execute(tt.name, tt.args, h.m)
			if err == nil || !strings.Contains(strings.ToLower(err.Error()), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	if _, err := d.Execute("dance", nil, h.m); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("err = %v, want ErrUnknownCommand", err)
	}
}

func TestActionDispatcherRun(t *testing.T) {
	h := newHarness(t, 10, 41)
	d := NewActionDispatcher()

	if cmd := d.Run(`split "v"`, h.m); cmd != nil {
		t.Fatal("split should not return a command")
	}
	if n := len(h.m.Display.Panels()); n != 2 {
		t.Fatalf("%d panels, want 2", n)
	}

	d.Run("select 1", h.m)
	if id := h.selected(t); id != 1 {
		t.Errorf("selected %d", id)
	}
	d.Run("focus right", h.m)
	if id := h.selected(t); id != 2 {
		t.Errorf("selected %d after focus right", id)
	}

	d.Run("close 1", h.m)
	if _, ok := h.m.Display.Panel(1); ok {
		t.Error("panel 1 should be closed")
	}

	d.Run(`split "v`, h.m)
	if msg := h.m.Display.ErrorMessage(); !strings.Contains(msg, "parse command") {
		t.Errorf("unterminated quote: error %q", msg)
	}

	d.Run("KEYS", h.m)
	var status string
	h.m.Display.View(func(f display.Frame) { status = f.Status })
	if status != config.PrefixSummary() {
		t.Errorf("status = %q", status)
	}

	h.m.Logger.Error("hello from the test")
	d.Run("log", h.m)
	h.m.Display.View(func(f display.Frame) { status = f.Status })
	if !strings.Contains(status, "hello from the test") {
		t.Errorf("status = %q, want the latest log line", status)
	}

	if cmd := d.Run("close", h.m); cmd == nil {
		t.Error("closing the last panel should quit")
	}
}
