package config

import (
	"fmt"
	"strings"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// GetPrefixKeybindings returns the keys accepted after the prefix key.
func GetPrefixKeybindings() []Keybinding {
	return []Keybinding{
		{"|", "Split panel left/right"},
		{"-", "Split panel top/bottom"},
		{"c", "New panel in the next empty slot"},
		{"x", "Close panel"},
		{"Arrows", "Focus neighbouring panel"},
		{"h/j/k/l", "Focus neighbouring panel"},
		{"[", "Scrollback mode"},
		{":", "Command line"},
		{"?", "Show keys"},
		{"q", "Quit"},
		{LeaderKey, "Send the prefix key to the panel"},
	}
}

// GetKeybindings returns all keybinding sections for the help listing.
func GetKeybindings() []KeybindingSection {
	return []KeybindingSection{
		{
			Title:    "Prefix (" + LeaderKey + ")",
			Bindings: GetPrefixKeybindings(),
		},
		{
			Title: "Scrollback mode",
			Bindings: []Keybinding{
				{"Up/k", "Scroll up a line"},
				{"Down/j", "Scroll down a line"},
				{"PgUp/PgDn", "Scroll half a panel"},
				{"g/G", "Oldest line / live view"},
				{"q/Esc", "Leave scrollback mode"},
			},
		},
		{
			Title: "Commands",
			Bindings: []Keybinding{
				{"split v|h", "Split the selected panel"},
				{"new", "New panel in the next empty slot"},
				{"close [id]", "Close a panel"},
				{"focus up|down|left|right", "Move the selection"},
				{"select <id>", "Select a panel"},
				{"log", "Show the latest log message"},
				{"keys", "Show the prefix keys"},
				{"quit", "Quit"},
			},
		},
	}
}

// FormatKeybindings renders sections as aligned plain text.
func FormatKeybindings(sections []KeybindingSection) string {
	width := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			width = max(width, len(b.Key))
		}
	}
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.Title + "\n")
		for _, b := range s.Bindings {
			fmt.Fprintf(&sb, "  %-*s  %s\n", width, b.Key, b.Description)
		}
	}
	return sb.String()
}

// PrefixSummary is a one-line reminder of the prefix keys.
func PrefixSummary() string {
	parts := make([]string, 0, 8)
	for _, b := range GetPrefixKeybindings() {
		if b.Key == "h/j/k/l" || b.Key == LeaderKey {
			continue
		}
		parts = append(parts, b.Key+" "+strings.ToLower(strings.Fields(b.Description)[0]))
	}
	return strings.Join(parts, "  ")
}
