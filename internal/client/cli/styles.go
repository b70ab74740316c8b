package cli

import "github.com/charmbracelet/lipgloss"

var (
	styleHeading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	styleDate    = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7A89"))
	styleDone    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
	stylePending = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
)

func statusMark(done bool) string {
	if done {
		return styleDone.Render("[x]")
	}
	return stylePending.Render("[ ]")
}
