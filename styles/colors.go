// Package styles holds the terminal palette shared by the CLI and the
// page browser
package styles

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	Background = "#272822"
	Foreground = "#F8F8F2"

	Red    = "#F92672"
	Orange = "#FD971F"
	Yellow = "#E6DB74"
	Green  = "#A6E22E"
	Cyan   = "#66D9EF"
	Purple = "#AE81FF"

	Comment = "#75715E"
	Border  = "#49483E"
)

var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Purple))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))

	// Diagnostics
	LocationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan))
	CaretStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Red)).Bold(true)
	LinkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Cyan)).Underline(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(Purple))

	TableStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(Border))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Background)).
			Background(lipgloss.Color(Yellow))

	DetailStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Border)).
			Padding(0, 1)
)

// Plain strips every style so output can go to a pipe or a file
func Plain() {
	for _, s := range []*lipgloss.Style{
		&SuccessStyle, &ErrorStyle, &WarningStyle, &DimStyle, &TitleStyle,
		&HighlightStyle, &HelpStyle, &LocationStyle, &CaretStyle, &LinkStyle,
	} {
		*s = lipgloss.NewStyle()
	}
}
