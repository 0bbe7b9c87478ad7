package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	shlex "github.com/anmitsu/go-shlex"
	tint "github.com/lrstanley/bubbletint/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/config"
	"github.com/Gaurav-Gosain/tuimux/internal/logging"
	"github.com/Gaurav-Gosain/tuimux/internal/theme"
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the command line of the user's editor.
func findEditor() ([]string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		words, err := shlex.Split(value, true)
		if err != nil {
			return nil, fmt.Errorf("parse $%s: %w", env, err)
		}
		if len(words) > 0 {
			return words, nil
		}
	}
	for _, editor := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(editor); err == nil {
			return []string{path}, nil
		}
	}
	return nil, errors.New("no editor found, set $EDITOR")
}

func editConfigFile() error {
	if _, err := config.LoadUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: current config is invalid: %v\n", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}

	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(editor[0], append(editor[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, err := config.LoadFile(path); err != nil {
		return fmt.Errorf("config saved but invalid: %w", err)
	}
	fmt.Println("Configuration is valid.")
	return nil
}

func resetConfigToDefaults(in io.Reader, yes bool) error {
	if !yes {
		fmt.Print("This will overwrite your configuration with the defaults. Continue? [y/N] ")
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}
	path, err := config.ResetConfig()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

func listKeybindings() error {
	if cfg, err := config.LoadUserConfig(); err == nil {
		config.ApplyOverrides(config.Overrides{}, cfg)
	}
	fmt.Print(config.FormatKeybindings(config.GetKeybindings()))
	return nil
}

func showLogs(n int) error {
	path, err := logging.Path()
	if err != nil {
		return err
	}
	// #nosec G304 - the path comes from xdg
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("No log yet (%s)\n", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}

func previewThemeColors(name string) error {
	if err := theme.Initialize(name); err != nil {
		return err
	}
	t := theme.Current()
	if t == nil {
		return fmt.Errorf("theme %q not found", name)
	}
	colors := []struct {
		name string
		c    *tint.Color
	}{
		{"black", t.Black}, {"red", t.Red}, {"green", t.Green}, {"yellow", t.Yellow},
		{"blue", t.Blue}, {"purple", t.Purple}, {"cyan", t.Cyan}, {"white", t.White},
		{"bright black", t.BrightBlack}, {"bright red", t.BrightRed}, {"bright green", t.BrightGreen},
		{"bright yellow", t.BrightYellow}, {"bright blue", t.BrightBlue}, {"bright purple", t.BrightPurple},
		{"bright cyan", t.BrightCyan}, {"bright white", t.BrightWhite},
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(t.Fg).Background(t.Bg).Padding(0, 1)
	lipgloss.Println(title.Render(t.DisplayName))
	for _, c := range colors {
		swatch := lipgloss.NewStyle().Background(c.c).Render("      ")
		lipgloss.Printf("%s %-14s %s\n", swatch, c.name, theme.ColorToString(c.c))
	}
	return nil
}
