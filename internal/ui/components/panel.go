package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for centered panels.
func ContentWidth(frameWidth int) int {
	// Leave room for the border (2) and inner padding (4).
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Centered places content in the middle of a width x height area.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Panel wraps content in a rounded-border card with an optional heading.
func Panel(heading, content string, cw int) string {
	if heading != "" {
		content = theme.Title.Render(heading) + "\n\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(1, 2).
		Render(content)
}
