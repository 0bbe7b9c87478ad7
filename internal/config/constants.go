// Package config provides configuration defaults, keybinding listings and
// user settings.
package config

import (
	"charm.land/lipgloss/v2"
)

// =============================================================================
// Limits
// =============================================================================

const (
	// DefaultScrollbackLines is the per-panel history kept when nothing is
	// configured.
	DefaultScrollbackLines = 10000
	// MinScrollbackLines is the smallest accepted history size.
	MinScrollbackLines = 100
	// MaxScrollbackLines is the largest accepted history size.
	MaxScrollbackLines = 1000000

	// NormalFPS is the redraw rate while output is arriving.
	NormalFPS = 60

	// WheelScrollLines is how far one mouse wheel step scrolls a panel.
	WheelScrollLines = 3

	// ScrollPageFraction is the part of a panel's height moved by PgUp/PgDn
	// in scrollback mode, as a divisor.
	ScrollPageFraction = 2
)

// BorderStyles lists the accepted border style names.
var BorderStyles = []string{
	"rounded", "normal", "thick", "double", "hidden", "block", "ascii",
	"outer-half-block", "inner-half-block",
}

// LogLevels lists the accepted log levels.
var LogLevels = []string{"debug", "info", "warn", "error"}

// =============================================================================
// Resolved settings
// =============================================================================

// BorderStyle controls which glyphs draw separators.
// Set via --border-style or appearance.border_style.
var BorderStyle = "rounded"

// BorderColor paints separators when no theme is active. Empty means the
// terminal's default colour.
var BorderColor = ""

// ShowHeader reserves the top row for the panel list.
// Cleared by --no-header or appearance.header = false.
var ShowHeader = true

// ScrollbackLines controls the number of lines kept per panel.
// Set via --scrollback or terminal.scrollback_lines.
var ScrollbackLines = DefaultScrollbackLines

// AutoWrap turns on DECAWM for new panels.
var AutoWrap = true

// PreferredShell is started in new panels; empty means detect.
// Set via --shell or terminal.preferred_shell.
var PreferredShell = ""

// LeaderKey is the prefix key for commands.
// Set via keys.prefix.
var LeaderKey = "ctrl+b"

// LogLevel is the minimum level written to the log file.
// Set via log.level, or forced to debug by --debug.
var LogLevel = "info"

// ThemeName is the active theme, empty for the terminal's own colours.
var ThemeName = ""

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	return BorderFor(BorderStyle)
}

// BorderFor returns the lipgloss Border named name, rounded when unknown.
func BorderFor(name string) lipgloss.Border {
	switch name {
	case "ascii":
		return lipgloss.ASCIIBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "outer-half-block":
		return lipgloss.OuterHalfBlockBorder()
	case "inner-half-block":
		return lipgloss.InnerHalfBlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}

// ClampScrollback limits n to the accepted history range. Zero or less
// means the default.
func ClampScrollback(n int) int {
	switch {
	case n <= 0:
		return DefaultScrollbackLines
	case n < MinScrollbackLines:
		return MinScrollbackLines
	case n > MaxScrollbackLines:
		return MaxScrollbackLines
	}
	return n
}
