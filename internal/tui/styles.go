package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("57"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))

	activeTaskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	completedTaskStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Strikethrough(true)

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	gatePromptStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2)

	badgeSynced  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badgeSaving  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badgeOffline = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	badgeLoading = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
