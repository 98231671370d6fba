package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorDetecting = lipgloss.Color("#4682B4")
	ColorDetected  = lipgloss.Color("#32CD32")
	ColorFailed    = lipgloss.Color("#DC3C3C")
	ColorDim       = lipgloss.Color("#667788")
	ColorText      = lipgloss.Color("#F0F0F0")
)

var (
	StyleTitle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true).
			Padding(0, 1)

	StylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDim).
			Padding(0, 1)

	StyleLabel = lipgloss.NewStyle().Foreground(ColorDim)
	StyleValue = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleHelp  = lipgloss.NewStyle().Foreground(ColorDim)
)

func statusStyle(detecting bool, detected int) lipgloss.Style {
	switch {
	case detecting:
		return lipgloss.NewStyle().Foreground(ColorDetecting).Bold(true)
	case detected > 0:
		return lipgloss.NewStyle().Foreground(ColorDetected).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(ColorFailed).Bold(true)
	}
}
