// Package main implements tuimux, a terminal multiplexer that divides the
// terminal into panels, each running its own shell.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/Gaurav-Gosain/tuimux/internal/theme"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode       bool
	cpuProfile      string
	shell           string
	themeName       string
	listThemes      bool
	previewTheme    string
	borderStyle     string
	scrollbackLines int
	noHeader        bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tuimux",
		Short: "Terminal multiplexer",
		Long: `tuimux - a terminal multiplexer

Divides the terminal into panels by splitting them in half, each running its
own shell. Press the prefix key (ctrl+b by default) followed by a command key
to split, close and move between panels.`,
		Example: `  # Run tuimux
  tuimux

  # Run a specific shell in every panel
  tuimux --shell /bin/zsh

  # Run with a theme
  tuimux --theme dracula

  # List all available themes
  tuimux --list-themes

  # Edit configuration
  tuimux config edit

  # List all keybindings
  tuimux keys`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			if previewTheme != "" {
				return previewThemeColors(previewTheme)
			}
			if listThemes {
				for _, t := range theme.Available() {
					fmt.Println(t)
				}
				return nil
			}
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cpuProfile, "cpuprofile", "", "Write CPU profile to file")
	rootCmd.PersistentFlags().StringVar(&shell, "shell", "", "Shell to run in new panels (default: from config, $SHELL or a system shell)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord, tokyonight). Leave empty to use standard terminal colors without theming")
	rootCmd.PersistentFlags().BoolVar(&listThemes, "list-themes", false, "List all available themes and exit")
	rootCmd.PersistentFlags().StringVar(&previewTheme, "preview-theme", "", "Preview a theme's 16 ANSI colors")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Separator style: rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block (default: from config or rounded)")
	rootCmd.PersistentFlags().IntVar(&scrollbackLines, "scrollback-lines", 0, "Number of lines to keep in scrollback buffer (default: from config or 10000, min: 100, max: 1000000)")
	rootCmd.PersistentFlags().BoolVar(&noHeader, "no-header", false, "Hide the panel list on the top row")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tuimux configuration",
		Long:  `Manage the tuimux configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the tuimux configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the tuimux configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	var resetYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the tuimux configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults(os.Stdin, resetYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keysCmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"keybinds", "kb"},
		Short:   "List all keybindings",
		Long:    `Display the prefix keys, scrollback keys and command-line commands`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	var logsCount int
	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "View recent log entries",
		Long: `View the last entries of the tuimux log file.

Use --debug when running tuimux to record more detail.`,
		Example: `  # View last 50 log entries
  tuimux logs

  # View last 200 log entries
  tuimux logs -n 200`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return showLogs(logsCount)
		},
	}
	logsCmd.Flags().IntVarP(&logsCount, "lines", "n", 50, "Number of log entries to show (0 for all)")

	rootCmd.AddCommand(configCmd, keysCmd, logsCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
