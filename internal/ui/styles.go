// ABOUTME: Lipgloss styles built from the user's color configuration
// ABOUTME: Maps color names and #rrggbb values onto terminal colors
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gattoplayer/gatto/internal/config"
)

// namedColors maps the color names accepted in config.toml onto ANSI
// terminal colors, which adapt to the user's terminal theme.
var namedColors = map[string]lipgloss.TerminalColor{
	"black":        lipgloss.ANSIColor(0),
	"red":          lipgloss.ANSIColor(1),
	"green":        lipgloss.ANSIColor(2),
	"yellow":       lipgloss.ANSIColor(3),
	"blue":         lipgloss.ANSIColor(4),
	"magenta":      lipgloss.ANSIColor(5),
	"cyan":         lipgloss.ANSIColor(6),
	"white":        lipgloss.ANSIColor(7),
	"gray":         lipgloss.ANSIColor(8),
	"grey":         lipgloss.ANSIColor(8),
	"lightred":     lipgloss.ANSIColor(9),
	"lightgreen":   lipgloss.ANSIColor(10),
	"lightyellow":  lipgloss.ANSIColor(11),
	"lightblue":    lipgloss.ANSIColor(12),
	"lightmagenta": lipgloss.ANSIColor(13),
	"lightcyan":    lipgloss.ANSIColor(14),
}

// parseColor resolves a configured color: a known name, a #rrggbb hex
// value, or white when the value is unrecognized.
func parseColor(s string) lipgloss.TerminalColor {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 4) {
		return lipgloss.Color(name)
	}
	return lipgloss.ANSIColor(7)
}

// styles holds the prebuilt lipgloss styles so View never allocates
// them per frame.
type styles struct {
	title    lipgloss.Style
	text     lipgloss.Style
	dim      lipgloss.Style
	accent   lipgloss.Style
	playing  lipgloss.Style
	selected lipgloss.Style
	spectrum lipgloss.Style
	help     lipgloss.Style
}

func newStyles(c config.ColorConfig) styles {
	fg := parseColor(c.Foreground)
	accent := parseColor(c.Accent)
	vis := parseColor(c.VisualizerForeground)

	return styles{
		title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		text:     lipgloss.NewStyle().Foreground(fg),
		dim:      lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
		accent:   lipgloss.NewStyle().Foreground(accent),
		playing:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		selected: lipgloss.NewStyle().Foreground(fg).Bold(true).Reverse(true),
		spectrum: lipgloss.NewStyle().Foreground(vis),
		help:     lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(8)),
	}
}
