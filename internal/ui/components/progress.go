package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// AnswerMeter shows how much of an answer sheet is filled in.
type AnswerMeter struct {
	Label string
	Done  int
	Total int
	Width int
}

// NewAnswerMeter creates a meter for done of total answers.
func NewAnswerMeter(label string, done, total, width int) AnswerMeter {
	return AnswerMeter{Label: label, Done: done, Total: total, Width: width}
}

// Fraction returns done/total, 0 when total is 0.
func Fraction(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// View renders "label  [bar]  done/total".
func (m AnswerMeter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(theme.Body.Render(m.Label))
		b.WriteString("  ")
	}
	count := fmt.Sprintf("  %d/%d", m.Done, m.Total)

	barWidth := max(4, m.Width-lipgloss.Width(b.String())-len(count))
	filled := min(barWidth, max(0, int(float64(barWidth)*Fraction(m.Done, m.Total))))

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Hint.Render(count))
	return b.String()
}
