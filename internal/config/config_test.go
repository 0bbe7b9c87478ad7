package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

// resetGlobals restores the resolved settings after a test.
func resetGlobals(t *testing.T) {
	t.Helper()
	saved := []any{BorderStyle, BorderColor, ShowHeader, ScrollbackLines, AutoWrap, PreferredShell, LeaderKey, LogLevel, ThemeName}
	t.Cleanup(func() {
		BorderStyle = saved[0].(string)
		BorderColor = saved[1].(string)
		ShowHeader = saved[2].(bool)
		ScrollbackLines = saved[3].(int)
		AutoWrap = saved[4].(bool)
		PreferredShell = saved[5].(string)
		LeaderKey = saved[6].(string)
		LogLevel = saved[7].(string)
		ThemeName = saved[8].(string)
	})
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClampScrollback(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, DefaultScrollbackLines},
		{-5, DefaultScrollbackLines},
		{1, MinScrollbackLines},
		{500, 500},
		{MaxScrollbackLines + 1, MaxScrollbackLines},
	}
	for _, tt := range tests {
		if got := ClampScrollback(tt.in); got != tt.want {
			t.Errorf("ClampScrollback(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestWriteAndLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := WriteConfig(path, DefaultConfig()); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# tuimux configuration") {
		t.Errorf("missing header comment:\n%s", data)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Appearance.BorderStyle != "rounded" || cfg.Keys.Prefix != "ctrl+b" || cfg.Log.Level != "info" {
		t.Errorf("loaded %+v", cfg)
	}
	if cfg.Terminal.ScrollbackLines != DefaultScrollbackLines {
		t.Errorf("scrollback = %d", cfg.Terminal.ScrollbackLines)
	}
	if cfg.Appearance.Header == nil || !*cfg.Appearance.Header {
		t.Error("header should default to on")
	}
}

func TestLoadFillsMissing(t *testing.T) {
	path := writeFile(t, `
[terminal]
scrollback_lines = 5
preferred_shell = "/bin/zsh"

[appearance]
header = false
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Terminal.ScrollbackLines != MinScrollbackLines {
		t.Errorf("scrollback = %d, want clamp to %d", cfg.Terminal.ScrollbackLines, MinScrollbackLines)
	}
	if cfg.Terminal.PreferredShell != "/bin/zsh" {
		t.Errorf("shell = %q", cfg.Terminal.PreferredShell)
	}
	if *cfg.Appearance.Header {
		t.Error("explicit header = false was overwritten")
	}
	if cfg.Terminal.AutoWrap == nil || !*cfg.Terminal.AutoWrap {
		t.Error("auto_wrap should default to true")
	}
	if cfg.Appearance.BorderStyle != "rounded" {
		t.Errorf("border style = %q", cfg.Appearance.BorderStyle)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[appearance\n", "parse"},
		{"border style", "[appearance]\nborder_style = \"wavy\"\n", "border_style"},
		{"border color", "[appearance]\nborder_color = \"red\"\n", "border_color"},
		{"log level", "[log]\nlevel = \"loud\"\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	resetGlobals(t)

	header, wrap := true, false
	cfg := &UserConfig{
		Appearance: AppearanceConfig{BorderStyle: "double", BorderColor: "#ff0000", Header: &header},
		Terminal:   TerminalConfig{ScrollbackLines: 2000, AutoWrap: &wrap, PreferredShell: "/bin/zsh"},
		Keys:       KeysConfig{Prefix: "ctrl+a"},
		Log:        LogConfig{Level: "warn"},
	}

	ApplyOverrides(Overrides{}, cfg)
	if BorderStyle != "double" || BorderColor != "#ff0000" || !ShowHeader {
		t.Errorf("appearance = %q %q %v", BorderStyle, BorderColor, ShowHeader)
	}
	if ScrollbackLines != 2000 || AutoWrap || PreferredShell != "/bin/zsh" {
		t.Errorf("terminal = %d %v %q", ScrollbackLines, AutoWrap, PreferredShell)
	}
	if LeaderKey != "ctrl+a" || LogLevel != "warn" {
		t.Errorf("keys/log = %q %q", LeaderKey, LogLevel)
	}

	ApplyOverrides(Overrides{
		Shell:           "/bin/fish",
		ScrollbackLines: 50,
		BorderStyle:     "thick",
		NoHeader:        true,
		Debug:           true,
	}, cfg)
	if BorderStyle != "thick" || ShowHeader {
		t.Errorf("flags should win: %q %v", BorderStyle, ShowHeader)
	}
	if ScrollbackLines != MinScrollbackLines {
		t.Errorf("flag scrollback should be clamped, got %d", ScrollbackLines)
	}
	if PreferredShell != "/bin/fish" || LogLevel != "debug" {
		t.Errorf("shell/log = %q %q", PreferredShell, LogLevel)
	}
}

func TestApplyOverridesWithoutConfig(t *testing.T) {
	resetGlobals(t)
	ApplyOverrides(Overrides{BorderStyle: "ascii"}, nil)
	if BorderStyle != "ascii" || !ShowHeader {
		t.Errorf("got %q %v", BorderStyle, ShowHeader)
	}
}

func TestBorderFor(t *testing.T) {
	tests := []struct {
		name string
		want lipgloss.Border
	}{
		{"ascii", lipgloss.ASCIIBorder()},
		{"normal", lipgloss.NormalBorder()},
		{"thick", lipgloss.ThickBorder()},
		{"double", lipgloss.DoubleBorder()},
		{"rounded", lipgloss.RoundedBorder()},
		{"unknown", lipgloss.RoundedBorder()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BorderFor(tt.name); got != tt.want {
				t.Errorf("BorderFor(%q) = %+v", tt.name, got)
			}
		})
	}
}

func TestFormatKeybindings(t *testing.T) {
	out := FormatKeybindings(GetKeybindings())
	for _, want := range []string{"Prefix (" + LeaderKey + ")", "Split panel left/right", "split v|h", "Scrollback mode"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
	if s := PrefixSummary(); !strings.Contains(s, "| split") || !strings.Contains(s, "q quit") {
		t.Errorf("PrefixSummary = %q", s)
	}
}
