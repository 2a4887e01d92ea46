package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color palette
// - Default (white/black): Primary text
// - Accent (theme primary): Headers, tool names, interactive elements
// - Match (theme accent): Characters hit by a fuzzy query
// - Muted (gray): Descriptions, scores, hints
// - No colored success/error/warning - use unicode symbols only

const (
	defaultAccentColor = "#3c83f6"
	defaultMatchColor  = "#16a249"
	mutedColor         = "#6C7086"
)

var (
	accentColor = defaultAccentColor
	matchColor  = defaultMatchColor

	// Accent style for tool names, ids and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor))

	// Muted style for secondary info, hints, scores
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color(mutedColor))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)

	// AccentBold combines accent color with bold
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccentColor)).Bold(true)

	// Match marks matched characters in palette results
	Match = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultMatchColor)).Bold(true).Underline(true)
)

// ConfigureTheme sets the accent color. Values that do not parse ("none",
// "off", "default" or garbage) turn the accent off so output falls back to
// plain bold text.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		AccentBold = lipgloss.NewStyle().Bold(true)
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	AccentBold = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

// ConfigureMatchColor sets the color of fuzzy-match highlights. Invalid
// values keep matches bold and underlined without a color.
func ConfigureMatchColor(color string) {
	base := lipgloss.NewStyle().Bold(true).Underline(true)
	normalized, ok := normalizeAccentColor(color)
	if !ok {
		matchColor = ""
		Match = base
		return
	}
	matchColor = normalized
	Match = base.Foreground(lipgloss.Color(normalized))
}

// AccentColor returns the configured accent, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// MatchColor returns the configured match highlight color, if any.
func MatchColor() (string, bool) {
	return matchColor, matchColor != ""
}

// IsValidColor reports whether raw is an accepted accent value: an ANSI code
// 0-255 or a #RGB/#RRGGBB hex color.
func IsValidColor(raw string) bool {
	_, ok := normalizeAccentColor(raw)
	return ok
}

// normalizeAccentColor accepts ANSI codes 0-255 and #RGB/#RRGGBB hex colors.
// Short hex is expanded to six digits.
func normalizeAccentColor(raw string) (string, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "none", "off", "default":
		return "", false
	}

	if strings.HasPrefix(value, "#") {
		if len(value) == 4 {
			value = "#" + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2) + strings.Repeat(value[3:4], 2)
		}
		if len(value) != 7 || !isHexDigits(value[1:]) {
			return "", false
		}
		c, err := colorful.Hex(value)
		if err != nil {
			return "", false
		}
		return c.Hex(), true
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 || n > 255 {
		return "", false
	}
	return strconv.Itoa(n), true
}

func isHexDigits(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
