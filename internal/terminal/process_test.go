package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/colorprofile"

	"github.com/Gaurav-Gosain/tuimux/internal/geom"
)

func TestProfileToEnv(t *testing.T) {
	tests := []struct {
		name      string
		profile   colorprofile.Profile
		parent    string
		wantTerm  string
		wantColor string
	}{
		{"truecolor keeps parent", colorprofile.TrueColor, "alacritty", "alacritty", "truecolor"},
		{"truecolor without parent", colorprofile.TrueColor, "", "xterm-256color", "truecolor"},
		{"256 keeps 256color parent", colorprofile.ANSI256, "rxvt-256color", "rxvt-256color", ""},
		{"256 under screen", colorprofile.ANSI256, "screen", "screen-256color", ""},
		{"256 under tmux", colorprofile.ANSI256, "tmux", "tmux-256color", ""},
		{"256 default", colorprofile.ANSI256, "vt100", "xterm-256color", ""},
		{"ansi keeps parent", colorprofile.ANSI, "linux", "linux", ""},
		{"ansi replaces dumb", colorprofile.ANSI, "dumb", "xterm", ""},
		{"no tty", colorprofile.NoTTY, "xterm", "dumb", ""},
		{"ascii", colorprofile.Ascii, "xterm", "dumb", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, color := profileToEnv(tt.profile, tt.parent)
			if term != tt.wantTerm || color != tt.wantColor {
				t.Errorf("profileToEnv = (%q, %q), want (%q, %q)", term, color, tt.wantTerm, tt.wantColor)
			}
		})
	}
}

func TestDetectShell(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	dir := t.TempDir()
	preferred := filepath.Join(dir, "myshell")
	if err := os.WriteFile(preferred, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("preferred exists", func(t *testing.T) {
		if got := DetectShell(preferred); got != preferred {
			t.Errorf("DetectShell = %q, want %q", got, preferred)
		}
	})
	t.Run("preferred missing uses SHELL", func(t *testing.T) {
		t.Setenv("SHELL", "/usr/bin/fancy")
		if got := DetectShell(filepath.Join(dir, "missing")); got != "/usr/bin/fancy" {
			t.Errorf("DetectShell = %q", got)
		}
	})
	t.Run("no SHELL falls back to a system shell", func(t *testing.T) {
		t.Setenv("SHELL", "")
		got := DetectShell("")
		if !strings.HasPrefix(got, "/bin/") {
			t.Errorf("DetectShell = %q, want a /bin shell", got)
		}
	})
}

func TestStartRejectsEmptySize(t *testing.T) {
	if _, err := Start(Options{Shell: "/bin/sh"}); err == nil {
		t.Error("expected an error for a zero size")
	}
}

// readUntil collects output from p until it contains want or the child's
// output ends.
func readUntil(t *testing.T, p *Process, want string) string {
	t.Helper()
	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 1024)
		for {
			n, err := p.Read(buf)
			out.Write(buf[:n])
			if err != nil || strings.Contains(out.String(), want) {
				return
			}
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
	}
	return out.String()
}

func TestStartRunsChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix pty")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	p, err := Start(Options{
		Shell: "/bin/sh",
		Args:  []string{"-c", `printf "pane=%s cols=%s" "$TUIMUX_PANE_ID" "$(stty size)"; sleep 5`},
		Env:   []string{"TUIMUX_PANE_ID=7"},
		Size:  geom.Sz(12, 34),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Close()

	out := readUntil(t, p, "cols=12 34")
	if !strings.Contains(out, "pane=7") {
		t.Errorf("output = %q, want the extra environment", out)
	}
	if p.Pid() == 0 {
		t.Error("Pid should be set")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("child not reaped after Close")
	}
	if _, err := p.Write([]byte("x")); err != ErrClosed {
		t.Errorf("Write after Close = %v, want ErrClosed", err)
	}
	if err := p.Resize(geom.Sz(5, 5)); err != ErrClosed {
		t.Errorf("Resize after Close = %v, want ErrClosed", err)
	}
}

func TestResizeSignalsChild(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a unix pty")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	p, err := Start(Options{
		Shell: "/bin/sh",
		Args:  []string{"-c", `read line; stty size; sleep 5`},
		Size:  geom.Sz(10, 20),
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer p.Close()

	if err := p.Resize(geom.Sz(0, 20)); err == nil {
		t.Error("zero resize should fail")
	}
	if err := p.Resize(geom.Sz(15, 50)); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if _, err := p.Write([]byte("go\r")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	readUntil(t, p, "15 50")
}
