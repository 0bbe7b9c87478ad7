package logging

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func TestRing(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		writes []string
		n      int
		want   []string
	}{
		{"empty", 3, nil, 0, []string{}},
		{"partial line held back", 3, []string{"a\nb"}, 0, []string{"a"}},
		{"line joined across writes", 3, []string{"he", "llo\r\n"}, 0, []string{"hello"}},
		{"wraps", 3, []string{"1\n2\n3\n4\n5\n"}, 0, []string{"3", "4", "5"}},
		{"latest n", 5, []string{"1\n2\n3\n"}, 2, []string{"2", "3"}},
		{"n beyond count", 5, []string{"1\n"}, 9, []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRing(tt.size)
			for _, w := range tt.writes {
				if n, err := r.Write([]byte(w)); err != nil || n != len(w) {
					t.Fatalf("Write = %d, %v", n, err)
				}
			}
			got := r.Lines(tt.n)
			if fmt.Sprint(got) != fmt.Sprint(tt.want) {
				t.Errorf("Lines(%d) = %q, want %q", tt.n, got, tt.want)
			}
			if r.Len() < len(got) {
				t.Errorf("Len = %d < %d", r.Len(), len(got))
			}
		})
	}
}

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown", "panel", 3)
	l.Printf("layout: %s", "printf")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level:\n%s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "panel=3") {
		t.Errorf("missing warning:\n%s", out)
	}
	recent := l.Recent(0)
	if len(recent) != 2 || !strings.Contains(recent[0], "shown") || !strings.Contains(recent[1], "printf") {
		t.Errorf("Recent = %q", recent)
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close without a file: %v", err)
	}

	if _, err := New(nil, "loud"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestOpenWritesStateFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	l, err := Open("debug")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	l.Debug("started", "pid", 42)
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "tuimux.log" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "started") || !strings.Contains(string(data), "pid=42") {
		t.Errorf("log file = %q", data)
	}
}
