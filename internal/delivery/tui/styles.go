package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleHeader    = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true) // Green
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)  // Red
	styleRef       = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // Yellow
	styleHighlight = lipgloss.NewStyle().Background(lipgloss.Color("22")).Foreground(lipgloss.Color("15"))
	styleCursor    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleInfo      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleVerse     = lipgloss.NewStyle().Padding(0, 2).Width(72)
	stylePanel     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginRight(2)
	styleBarGreen  = lipgloss.NewStyle().Background(lipgloss.Color("10")).SetString(" ")
	styleBarRed    = lipgloss.NewStyle().Background(lipgloss.Color("9")).SetString(" ")
)

// renderBar draws a two-colour bar; fraction is clamped to 0..1.
func renderBar(fraction float64, width int) string {
	fraction = max(0, min(fraction, 1))
	green := int(fraction * float64(width))
	return strings.Repeat(styleBarGreen.String(), green) +
		strings.Repeat(styleBarRed.String(), width-green)
}

func cursorMark(selected bool) string {
	if selected {
		return styleCursor.Render(">")
	}
	return " "
}
