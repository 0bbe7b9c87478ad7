// Package tuimux provides the terminal multiplexer as a Bubble Tea model that
// can be embedded in other programs.
//
// # Basic Usage
//
//	model := tuimux.New()
//	p := tea.NewProgram(model, tuimux.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//	model.Quit()
//
// # Custom Configuration
//
//	model := tuimux.New(
//		tuimux.WithTheme("dracula"),
//		tuimux.WithShell("/bin/zsh"),
//		tuimux.WithBorderStyle("double"),
//	)
package tuimux

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/app"
	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/input"
)

// Model is the multiplexer model. It implements tea.Model.
type Model = app.Mux

// Mode represents the current input mode.
type Mode = app.Mode

// Mode constants
const (
	TerminalMode   = app.TerminalMode
	PrefixMode     = app.PrefixMode
	ScrollbackMode = app.ScrollbackMode
	CommandMode    = app.CommandMode
)

// Options configures a multiplexer.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord").
	// Leave empty to use standard terminal colors.
	Theme string

	// Shell is the program started in every panel. Empty means $SHELL.
	Shell string

	// BorderStyle sets the separator style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// ScrollbackLines is the history kept per panel.
	ScrollbackLines int

	// HideHeader hides the panel list on the top row.
	HideHeader bool

	// UserConfig is a custom user configuration. If nil, the config file is
	// loaded, falling back to the defaults.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring the multiplexer.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithShell sets the program run in every panel.
func WithShell(shell string) Option {
	return func(o *Options) {
		o.Shell = shell
	}
}

// WithBorderStyle sets the separator style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithScrollbackLines sets the history size.
func WithScrollbackLines(lines int) Option {
	return func(o *Options) {
		o.ScrollbackLines = lines
	}
}

// WithHeader shows or hides the header row.
func WithHeader(show bool) Option {
	return func(o *Options) {
		o.HideHeader = !show
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// New creates a multiplexer with the given options. The first panel opens
// once the program reports the terminal size.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		if userConfig, err = config.LoadUserConfig(); err != nil {
			userConfig = config.DefaultConfig()
		}
	}
	config.ApplyOverrides(config.Overrides{
		Shell:           options.Shell,
		ScrollbackLines: options.ScrollbackLines,
		BorderStyle:     options.BorderStyle,
		ThemeName:       options.Theme,
		NoHeader:        options.HideHeader,
	}, userConfig)

	return app.New(app.OptionsFromConfig(nil))
}

// ProgramOptions returns the tea.ProgramOption values the multiplexer
// expects:
//
//	model := tuimux.New()
//	p := tea.NewProgram(model, tuimux.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion.
// Panels only react to clicks and the wheel.
func FilterMouseMotion(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); ok {
		return nil
	}
	return msg
}

// Config re-exports the config functions embedders need.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
