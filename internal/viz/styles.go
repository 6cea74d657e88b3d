package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
	graphStyle = lipgloss.NewStyle().Padding(1, 0)
)

// ProgressBar renders the visible share as a bar, the filled part in the
// theme's primary color, turning to its warning color below 10%.
func ProgressBar(ratio float64, width int, th Theme) string {
	filled := min(max(int(ratio*float64(width)), 0), width)

	fill := th.Primary
	if ratio < 0.1 {
		fill = th.Warning
	}
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(th.Faint).Render(strings.Repeat("░", width-filled))
}

// Separator is a decorative rule
func Separator(width int, color lipgloss.Color) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return lipgloss.NewStyle().Foreground(color).Render(left + " ◆ " + right)
}
