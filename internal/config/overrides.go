package config

import (
	"github.com/charmbracelet/log"

	"github.com/Gaurav-Gosain/tuimux/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// Shell overrides the preferred shell
	Shell string

	// ScrollbackLines overrides the history size (0 means use default)
	ScrollbackLines int

	// BorderStyle overrides the separator style
	BorderStyle string

	// ThemeName is the theme to load
	ThemeName string

	// NoHeader hides the panel list
	NoHeader bool

	// Debug forces debug logging
	Debug bool
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if userConfig != nil {
		BorderColor = userConfig.Appearance.BorderColor
	}

	// Header - hidden if either the flag or the config says so
	ShowHeader = !overrides.NoHeader
	if userConfig != nil && userConfig.Appearance.Header != nil && !*userConfig.Appearance.Header {
		ShowHeader = false
	}

	if overrides.ScrollbackLines > 0 {
		ScrollbackLines = ClampScrollback(overrides.ScrollbackLines)
	} else if userConfig != nil && userConfig.Terminal.ScrollbackLines > 0 {
		ScrollbackLines = ClampScrollback(userConfig.Terminal.ScrollbackLines)
	}

	if userConfig != nil && userConfig.Terminal.AutoWrap != nil {
		AutoWrap = *userConfig.Terminal.AutoWrap
	}

	if overrides.Shell != "" {
		PreferredShell = overrides.Shell
	} else if userConfig != nil {
		PreferredShell = userConfig.Terminal.PreferredShell
	}

	// Leader Key - only from user config
	if userConfig != nil && userConfig.Keys.Prefix != "" {
		LeaderKey = userConfig.Keys.Prefix
	}

	if overrides.Debug {
		LogLevel = "debug"
	} else if userConfig != nil && userConfig.Log.Level != "" {
		LogLevel = userConfig.Log.Level
	}

	// Theme - CLI flag takes precedence, otherwise use user config
	themeName := overrides.ThemeName
	if themeName == "" && userConfig != nil {
		themeName = userConfig.Appearance.Theme
	}
	ThemeName = themeName
	if themeName != "" {
		if err := theme.Initialize(themeName); err != nil {
			log.Warn("failed to load theme", "theme", themeName, "err", err)
			ThemeName = ""
		}
	}
}
