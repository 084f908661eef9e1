package tui

import "github.com/charmbracelet/lipgloss"

// MinListWidth is the minimum character width for the contact list pane.
const MinListWidth = 24

// CursorMarker is the prefix shown on the selected contact row.
const CursorMarker = "▸ "

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	selectedStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}).
			Width(10)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)

// paneStyle returns a rounded-border pane, accented when focused.
func paneStyle(focused bool) lipgloss.Style {
	color := lipgloss.AdaptiveColor{Light: "240", Dark: "240"}
	if focused {
		color = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}

// PaneWidths splits a total width into list and detail panes.
// The list gets 1/3 (minimum MinListWidth), the detail pane the rest.
func PaneWidths(totalWidth int) (list, detail int) {
	if totalWidth <= 0 {
		return 0, 0
	}
	list = totalWidth / 3
	if list < MinListWidth {
		list = MinListWidth
	}
	detail = totalWidth - list
	if detail < 0 {
		detail = 0
	}
	return list, detail
}
