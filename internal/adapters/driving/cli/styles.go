package cli

import "github.com/charmbracelet/lipgloss"

// Output styles for command summaries.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2E7D32"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C7086"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CDD6F4"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F9E2AF"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#A6E3A1"))
)

// kv renders one label/value summary line.
func kv(label, value string) string {
	return labelStyle.Render(label+": ") + valueStyle.Render(value)
}
