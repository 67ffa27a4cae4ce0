package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/vimwiki/styles"
)

var (
	spinnerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Purple))
	titleStyle     = styles.TitleStyle
	labelStyle     = styles.DimStyle
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(styles.Foreground))
	helpStyle      = styles.HelpStyle
	successStyle   = styles.SuccessStyle
	warningStyle   = styles.WarningStyle
	errorStyle     = styles.ErrorStyle
	highlightStyle = styles.HighlightStyle
	tableStyle     = styles.TableStyle
)
