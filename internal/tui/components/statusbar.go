package components

import (
	"strings"

	"github.com/theirongolddev/cfoot/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders a one-line key hint bar with right-aligned info.
func RenderStatusBar(width int, hints, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " " + hints
	right := info
	if right != "" {
		right += " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
