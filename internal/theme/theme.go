// Package theme provides color themes for the multiplexer's own decorations.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup.
// If themeName is empty, theming will be disabled and standard terminal colors will be used.
func Initialize(themeName string) error {
	if themeName == "" {
		enabled = false
		return nil
	}

	loadRegistry()
	if !tint.SetTintID(themeName) {
		enabled = false
		return fmt.Errorf("unknown theme %q", themeName)
	}
	enabled = true
	return nil
}

// loadRegistry registers the built-in themes and any custom ones.
func loadRegistry() {
	tint.NewDefaultRegistry()
	if themesDir, err := GetThemesDir(); err == nil {
		if _, err := LoadCustomThemes(themesDir); err != nil {
			log.Warn("error loading custom themes", "err", err)
		}
	}
}

// Available returns the ids of every built-in and custom theme.
func Available() []string {
	loadRegistry()
	return tint.TintIDs()
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Separator returns the color for the lines between panels.
func Separator() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#7f7f7f")
	}
	return t.BrightBlack
}

// HeaderFg returns the color of inactive entries in the panel list.
func HeaderFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// HeaderBg returns the background of the panel list.
func HeaderBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#000000")
	}
	return t.Bg
}

// HeaderActive returns the highlight of the selected panel's entry.
func HeaderActive() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AAFFAA")
	}
	return t.BrightGreen
}

// StatusFg returns the color of informational status text.
func StatusFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#7f7f7f")
	}
	return t.BrightBlack
}

// ErrorFg returns the color for error messages.
func ErrorFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

// PromptFg returns the color of the command line.
func PromptFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Indicator returns the color of the scrollback position tag.
func Indicator() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cdcd00")
	}
	return t.Yellow
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
