package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
)

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func allColors(th *tint.Tint) map[string]*tint.Color {
	return map[string]*tint.Color{
		"Fg": th.Fg, "Bg": th.Bg, "Cursor": th.Cursor,
		"Black": th.Black, "Red": th.Red, "Green": th.Green, "Yellow": th.Yellow,
		"Blue": th.Blue, "Purple": th.Purple, "Cyan": th.Cyan, "White": th.White,
		"BrightBlack": th.BrightBlack, "BrightRed": th.BrightRed, "BrightGreen": th.BrightGreen,
		"BrightYellow": th.BrightYellow, "BrightBlue": th.BrightBlue, "BrightPurple": th.BrightPurple,
		"BrightCyan": th.BrightCyan, "BrightWhite": th.BrightWhite,
	}
}

func TestLoadCustomThemeFile(t *testing.T) {
	tests := []struct {
		name, file, body string
		wantID, wantName string
		wantErr          bool
	}{
		{
			name:     "explicit id and name",
			file:     "ignored.json",
			body:     `{"id": "harbor", "display_name": "Harbor", "dark": true, "fg": "#d4d4d4", "bg": "#1e1e2e", "red": "#f38ba8"}`,
			wantID:   "harbor",
			wantName: "Harbor",
		},
		{
			name:     "id from file name",
			file:     "My-Cool-Theme.json",
			body:     `{"fg": "#ffffff", "bg": "#000000"}`,
			wantID:   "my-cool-theme",
			wantName: "my-cool-theme",
		},
		{
			name:    "invalid json",
			file:    "bad.json",
			body:    "not valid json{{{",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTheme(t, t.TempDir(), tt.file, tt.body)
			th, err := LoadCustomThemeFile(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCustomThemeFile: %v", err)
			}
			if th.ID != tt.wantID || th.DisplayName != tt.wantName {
				t.Errorf("got id %q name %q, want %q %q", th.ID, th.DisplayName, tt.wantID, tt.wantName)
			}
			for name, c := range allColors(th) {
				if c == nil {
					t.Errorf("%s not filled", name)
				}
			}
		})
	}
}

func TestFillDefaultsDerivesColors(t *testing.T) {
	th := &tint.Tint{Fg: tint.FromHex("#102030"), Red: tint.FromHex("#ff0000")}
	fillDefaults(th)

	if *th.Cursor != *th.Fg || th.Cursor == th.Fg {
		t.Error("cursor should be a copy of the foreground")
	}
	if *th.BrightRed != *th.Red {
		t.Error("bright red should follow red")
	}
	if got := ColorToString(th.Black); got != "#000000" {
		t.Errorf("black = %s", got)
	}
	if got := ColorToString(th.Blue); got != "#0000ee" {
		t.Errorf("blue = %s", got)
	}
}

func TestCopyColor(t *testing.T) {
	original := &tint.Color{R: 255, G: 128, B: 0, A: 255}
	copied := copyColor(original)
	if copied == original || *copied != *original {
		t.Fatal("copyColor should return an equal, distinct value")
	}
	copied.R = 0
	if original.R == 0 {
		t.Error("modifying the copy changed the original")
	}
	if copyColor(nil) != nil {
		t.Error("copyColor(nil) should return nil")
	}
}

func TestLoadCustomThemes(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"readme.txt", "notes.md", ".hidden"} {
		writeTheme(t, dir, name, "not a theme")
	}
	writeTheme(t, dir, "broken.json", "{")
	writeTheme(t, dir, "tuimux-test-registration.JSON", `{"fg": "#ffffff", "bg": "#000000"}`)
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o700); err != nil {
		t.Fatal(err)
	}

	tint.NewDefaultRegistry()
	loaded, err := LoadCustomThemes(dir)
	if err != nil {
		t.Fatalf("LoadCustomThemes: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != "tuimux-test-registration" {
		t.Fatalf("loaded = %v", loaded)
	}
	if !slices.Contains(tint.TintIDs(), "tuimux-test-registration") {
		t.Error("theme not registered")
	}

	if _, err := LoadCustomThemes(filepath.Join(dir, "missing")); err == nil {
		t.Error("missing directory should fail")
	}
}

func TestInitialize(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	t.Cleanup(func() {
		enabled = false
		xdg.Reload()
	})

	themes := filepath.Join(home, "tuimux", "themes")
	if err := os.MkdirAll(themes, 0o700); err != nil {
		t.Fatal(err)
	}
	writeTheme(t, themes, "tuimux-init.json", `{"fg": "#eeeeee", "bg": "#111111", "red": "#aa0000", "bright_black": "#444444"}`)

	if err := Initialize(""); err != nil || IsEnabled() {
		t.Fatalf("empty theme: err=%v enabled=%v", err, IsEnabled())
	}
	if got := ColorToString(ErrorFg()); got != "#cd0000" {
		t.Errorf("fallback error color = %s", got)
	}

	if err := Initialize("tuimux-no-such-theme"); err == nil || IsEnabled() {
		t.Errorf("unknown theme: err=%v enabled=%v", err, IsEnabled())
	}

	if err := Initialize("tuimux-init"); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if !IsEnabled() || Current() == nil {
		t.Fatal("theme should be active")
	}
	if got := ColorToString(ErrorFg()); got != "#aa0000" {
		t.Errorf("error color = %s", got)
	}
	if got := ColorToString(Separator()); got != "#444444" {
		t.Errorf("separator color = %s", got)
	}

	if !slices.Contains(Available(), "tuimux-init") {
		t.Error("Available should list custom themes")
	}
}
