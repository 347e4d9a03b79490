package layout

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// Smallest terminal the passage, question and essay panes fit in.
const (
	MinWidth  = 80
	MinHeight = 24
)

// LowTime is when the header clock switches to the warning colour.
const LowTime = 5 * time.Minute

const brand = "TOEFL Trainer"

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small!\n\nThe exam needs at least %d x %d\nto show the passage and questions.\n\nCurrent: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

// RenderHeader draws the brand on the left, title centered and timer
// (possibly empty) on the right.
func RenderHeader(title, timer string, width int) string {
	inner := max(width-4, 0) // border + padding
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)

	side := max(lipgloss.Width(left), lipgloss.Width(timer))
	middle := max(inner-2*side, 0)
	center := lipgloss.NewStyle().Foreground(theme.Text).MaxWidth(middle).Render(title)

	row := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.PlaceHorizontal(side, lipgloss.Left, left),
		lipgloss.PlaceHorizontal(middle, lipgloss.Center, center),
		lipgloss.PlaceHorizontal(side, lipgloss.Right, timer),
	)
	return bar.Width(width).Render(row)
}

// RenderTimer renders the time left in a timed section. The clock turns
// red under LowTime and reads "Time's up" once nothing is left.
func RenderTimer(remaining time.Duration) string {
	if remaining <= 0 {
		return theme.TimeUp.Render("Time's up")
	}
	label := "Time " + exam.FormatRemaining(remaining)
	if remaining < LowTime {
		return theme.TimeUp.Render(label)
	}
	return theme.Timer.Render(label)
}

// RenderFooter renders the key hints that fit in width. Hints are kept
// in order; the ones that would overflow are dropped.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	room := max(width-4, 0)
	var b strings.Builder
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		sep := ""
		if b.Len() > 0 {
			sep = "   "
		}
		if lipgloss.Width(b.String())+len(sep)+lipgloss.Width(part) > room {
			break
		}
		b.WriteString(sep + part)
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving the content all
// remaining rows.
func RenderFrame(header, content, footer string, width, height int) string {
	rows := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rows).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
