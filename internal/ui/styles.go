// Package ui provides the interactive monitor layout editor and its styling
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across the application
var (
	ColorPrimary   = lipgloss.Color("39")  // Bright blue
	ColorSecondary = lipgloss.Color("205") // Pink/magenta
	ColorSuccess   = lipgloss.Color("82")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorInfo      = lipgloss.Color("86")  // Cyan

	ColorText      = lipgloss.Color("252") // Light gray
	ColorSubtle    = lipgloss.Color("241") // Medium gray
	ColorMuted     = lipgloss.Color("238") // Dark gray
	ColorHighlight = lipgloss.Color("255") // White
)

// Icons shared by the CLI and the editor
var (
	IconSuccess  = "✓"
	IconError    = "✗"
	IconWarning  = "!"
	IconInfo     = "i"
	IconEnabled  = "●"
	IconDisabled = "○"
)

// Styles is the set of styles bound to one renderer, so every SSH session
// gets the color profile of its own terminal
type Styles struct {
	Title    lipgloss.Style
	Text     lipgloss.Style
	Subtle   lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Box      lipgloss.Style
	Panel    lipgloss.Style
	Selected lipgloss.Style

	MonitorBorder   lipgloss.Style
	SelectedBorder  lipgloss.Style
	MonitorLabel    lipgloss.Style
	CanvasBackPlane lipgloss.Style
}

// NewStyles builds the style set for a renderer; nil means the default renderer
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorMuted).
			Padding(0, 1),
		Text:    r.NewStyle().Foreground(ColorText),
		Subtle:  r.NewStyle().Foreground(ColorSubtle),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Warning: r.NewStyle().Foreground(ColorWarning),
		Error:   r.NewStyle().Foreground(ColorError),
		Info:    r.NewStyle().Foreground(ColorInfo),
		Box: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle),
		Panel: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorSubtle).
			Padding(0, 1),
		Selected: r.NewStyle().
			Bold(true).
			Foreground(ColorSecondary),

		MonitorBorder:   r.NewStyle().Foreground(ColorInfo),
		SelectedBorder:  r.NewStyle().Bold(true).Foreground(ColorSecondary),
		MonitorLabel:    r.NewStyle().Foreground(ColorHighlight),
		CanvasBackPlane: r.NewStyle().Foreground(ColorMuted),
	}
}

// FormatStatusLine renders an icon and a message in the style of its kind
func (s Styles) FormatStatusLine(kind, message string) string {
	switch kind {
	case "success":
		return s.Success.Render(IconSuccess + " " + message)
	case "error":
		return s.Error.Render(IconError + " " + message)
	case "warning":
		return s.Warning.Render(IconWarning + " " + message)
	default:
		return s.Info.Render(IconInfo + " " + message)
	}
}

// CreateSeparator creates a horizontal line separator
func (s Styles) CreateSeparator(width int, char string) string {
	if width <= 0 {
		width = 50 // Default width
	}
	if char == "" {
		char = "─"
	}
	return s.Subtle.Render(strings.Repeat(char, width))
}

// Default styles for plain CLI output
var defaultStyles = NewStyles(nil)

// FormatHeader renders a command header with a separator, for CLI output
func FormatHeader(title string) string {
	return defaultStyles.Title.Render(title) + "\n" + defaultStyles.CreateSeparator(50, "─")
}

// FormatResult is the success/failure line used by CLI commands
func FormatResult(success bool, message string) string {
	if success {
		return defaultStyles.FormatStatusLine("success", message)
	}
	return defaultStyles.FormatStatusLine("error", message)
}

// FormatEnabled renders the enabled indicator used in listings
func FormatEnabled(enabled bool) string {
	if enabled {
		return defaultStyles.Success.Render(IconEnabled)
	}
	return defaultStyles.Muted.Render(IconDisabled)
}
