package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func useTempXDG(t *testing.T) (configHome, stateHome string) {
	t.Helper()
	configHome, stateHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_STATE_HOME", stateHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return configHome, stateHome
}

func TestFindEditor(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		visual string
		want   []string
	}{
		{"editor", "nano", "", []string{"nano"}},
		{"editor with args", `code --wait "-n"`, "", []string{"code", "--wait", "-n"}},
		{"visual fallback", "", "emacs -nw", []string{"emacs", "-nw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			got, err := findEditor()
			if err != nil {
				t.Fatalf("findEditor: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("findEditor() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("unterminated quote", func(t *testing.T) {
		t.Setenv("EDITOR", `vim "x`)
		if _, err := findEditor(); err == nil {
			t.Error("expected a parse error")
		}
	})
}

func TestResetConfigToDefaults(t *testing.T) {
	configHome, _ := useTempXDG(t)
	path := filepath.Join(configHome, "tuimux", "config.toml")

	if err := resetConfigToDefaults(strings.NewReader("n\n"), false); err != nil {
		t.Fatalf("declined reset: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("declined reset must not write the config")
	}

	if err := resetConfigToDefaults(strings.NewReader("yes\n"), false); err != nil {
		t.Fatalf("confirmed reset: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}

func TestShowLogsMissingFile(t *testing.T) {
	useTempXDG(t)
	if err := showLogs(10); err != nil {
		t.Errorf("showLogs without a log file: %v", err)
	}
}
