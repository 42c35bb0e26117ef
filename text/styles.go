package text

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorCode    = lipgloss.Color("#10B981")
	colorLink    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
)

// Styles holds the lipgloss styles used by ANSI output
type Styles struct {
	Bold   lipgloss.Style
	Italic lipgloss.Style
	Pre    lipgloss.Style
	Link   lipgloss.Style
	Title  lipgloss.Style
	Header lipgloss.Style
	Border lipgloss.Style
}

// DefaultStyles returns the default styles bound to lr. A nil renderer
// uses the lipgloss default, which detects the color profile of stdout.
func DefaultStyles(lr *lipgloss.Renderer) Styles {
	if lr == nil {
		lr = lipgloss.DefaultRenderer()
	}

	return Styles{
		Bold:   lr.NewStyle().Bold(true),
		Italic: lr.NewStyle().Italic(true),
		Pre:    lr.NewStyle().Foreground(colorCode),
		Link: lr.NewStyle().
			Foreground(colorLink).
			Underline(true),
		Title: lr.NewStyle().
			Bold(true).
			Foreground(colorPrimary),
		Header: lr.NewStyle().Bold(true),
		Border: lr.NewStyle().Foreground(colorMuted),
	}
}
