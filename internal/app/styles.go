package app

import (
	"charm.land/lipgloss/v2"

	"github.com/Gaurav-Gosain/tuimux/internal/layout"
	"github.com/Gaurav-Gosain/tuimux/internal/render"
	"github.com/Gaurav-Gosain/tuimux/internal/theme"
)

// Styles returns the decorations for the active theme, or the terminal's
// own palette when theming is off.
func Styles() render.Styles {
	if !theme.IsEnabled() {
		return render.DefaultStyles()
	}
	return render.Styles{
		Header:       lipgloss.NewStyle().Foreground(theme.HeaderFg()).Background(theme.HeaderBg()),
		HeaderActive: lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderBg()).Background(theme.HeaderActive()),
		Status:       lipgloss.NewStyle().Foreground(theme.StatusFg()),
		Error:        lipgloss.NewStyle().Bold(true).Foreground(theme.ErrorFg()),
		Prompt:       lipgloss.NewStyle().Foreground(theme.PromptFg()),
		Indicator:    lipgloss.NewStyle().Foreground(theme.HeaderBg()).Background(theme.Indicator()),
	}
}

// SeparatorStyle draws separators with border, coloured by the theme or by
// hex when one is given.
func SeparatorStyle(border lipgloss.Border, hex string) layout.Style {
	style := layout.Style{Border: border}
	var paint lipgloss.Style
	switch {
	case theme.IsEnabled():
		paint = lipgloss.NewStyle().Foreground(theme.Separator())
	case hex != "":
		paint = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	default:
		return style
	}
	style.Paint = func(s string) string { return paint.Render(s) }
	return style
}
