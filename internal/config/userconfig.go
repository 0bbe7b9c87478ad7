package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// configRelPath is the config file location under the XDG config home.
const configRelPath = "tuimux/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Terminal   TerminalConfig   `toml:"terminal"`
	Keys       KeysConfig       `toml:"keys"`
	Log        LogConfig        `toml:"log"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle string `toml:"border_style"` // rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block
	BorderColor string `toml:"border_color"` // Hex colour for separators when no theme is set
	Header      *bool  `toml:"header"`       // Show the panel list on the top row (default: true)
	Theme       string `toml:"theme"`        // Color theme name (e.g., dracula, nord, my-custom-theme)
}

// TerminalConfig holds settings for the panels' terminals.
type TerminalConfig struct {
	ScrollbackLines int    `toml:"scrollback_lines"` // Lines of history per panel (default: 10000, min: 100, max: 1000000)
	AutoWrap        *bool  `toml:"auto_wrap"`        // Wrap at the right margin (default: true)
	PreferredShell  string `toml:"preferred_shell"`  // If empty, auto-detect based on platform.
}

// KeysConfig holds key settings.
type KeysConfig struct {
	Prefix string `toml:"prefix"` // Prefix key for commands (default: ctrl+b)
}

// LogConfig holds log settings.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error (default: info)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	header, wrap := true, true
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle: "rounded",
			Header:      &header,
		},
		Terminal: TerminalConfig{
			ScrollbackLines: DefaultScrollbackLines,
			AutoWrap:        &wrap,
		},
		Keys: KeysConfig{Prefix: "ctrl+b"},
		Log:  LogConfig{Level: "info"},
	}
}

// LoadUserConfig loads the user configuration from XDG config directory,
// writing the defaults there on first run.
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		path, err := xdg.ConfigFile(configRelPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		cfg := DefaultConfig()
		if err := WriteConfig(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile reads, completes and validates the config at path.
func LoadFile(path string) (*UserConfig, error) {
	// #nosec G304 - reading the user's own config is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	fillMissing(&cfg, DefaultConfig())
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteConfig writes cfg to path with a commented header, creating the
// directory if needed.
func WriteConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# tuimux configuration\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# appearance.border_style: " + strings.Join(BorderStyles, ", ") + "\n")
	sb.WriteString("# appearance.theme: leave empty for the terminal's own colours\n")
	sb.WriteString("# terminal.scrollback_lines: 100 to 1000000\n")
	sb.WriteString("# log.level: " + strings.Join(LogLevels, ", ") + "\n\n")
	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResetConfig overwrites the config file with the defaults and returns its
// path.
func ResetConfig() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	return path, WriteConfig(path, DefaultConfig())
}

// fillMissing fills in any missing settings with defaults and clamps the
// scrollback size.
func fillMissing(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.Header == nil {
		cfg.Appearance.Header = defaultCfg.Appearance.Header
	}
	cfg.Terminal.ScrollbackLines = ClampScrollback(cfg.Terminal.ScrollbackLines)
	if cfg.Terminal.AutoWrap == nil {
		cfg.Terminal.AutoWrap = defaultCfg.Terminal.AutoWrap
	}
	if cfg.Keys.Prefix == "" {
		cfg.Keys.Prefix = defaultCfg.Keys.Prefix
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = defaultCfg.Log.Level
	}
}

// ValidateConfig reports every invalid setting in cfg.
func ValidateConfig(cfg *UserConfig) error {
	var errs []error
	if !slices.Contains(BorderStyles, cfg.Appearance.BorderStyle) {
		errs = append(errs, fmt.Errorf("appearance.border_style: unknown style %q", cfg.Appearance.BorderStyle))
	}
	if c := cfg.Appearance.BorderColor; c != "" && !isHexColor(c) {
		errs = append(errs, fmt.Errorf("appearance.border_color: %q is not a #rrggbb colour", c))
	}
	if !slices.Contains(LogLevels, strings.ToLower(cfg.Log.Level)) {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", cfg.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration has %d error(s): %w", len(errs), errors.Join(errs...))
	}
	return nil
}

func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}
