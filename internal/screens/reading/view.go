package reading

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/normalize"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.confirmQuit {
		return components.Centered(components.Panel("Leave this practice?",
			theme.Body.Render("Your answers will be discarded.\n\nPress Y to leave or N to keep going."),
			components.ContentWidth(width)), width, height)
	}

	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	status := s.renderStatus(inner)
	question := ""
	if len(s.choices) > 0 {
		question = s.choices[s.current].View(inner)
	}

	passageHeight := height - lipgloss.Height(status) - lipgloss.Height(question) - 4
	if passageHeight < 3 {
		passageHeight = 3
	}
	s.passage.SetWidth(inner)
	s.passage.SetHeight(passageHeight)

	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner))
	body := strings.Join([]string{
		s.passage.View(),
		rule,
		question,
		status,
	}, "\n")
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

func (s *Screen) renderStatus(width int) string {
	var lines []string

	if r := s.session.Results; r != nil {
		lines = append(lines, theme.Title.Render("Score "+r.String()))
		if s.current < len(r.Verdicts) {
			v := r.Verdicts[s.current]
			switch {
			case !v.Answered:
				lines = append(lines, theme.Incorrect.Render("Not answered. Correct: "+v.Expected))
			case v.Correct:
				lines = append(lines, theme.Correct.Render("Correct"))
			default:
				lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("Your answer: %s. Correct: %s", v.Chosen, v.Expected)))
			}
		}
	} else {
		answered := s.session.Answered()
		total := len(s.session.Questions)
		bar := components.NewAnswerMeter(fmt.Sprintf("Question %d of %d", s.current+1, total), answered, total, width)
		lines = append(lines, bar.View())
	}

	if w := warningLine(s.session.Warnings); w != "" {
		lines = append(lines, theme.Warning.Width(width).Render(w))
	}
	if s.notice != "" {
		lines = append(lines, theme.ErrorText.Width(width).Render(s.notice))
	}
	return strings.Join(lines, "\n")
}

// warningLine summarizes normalizer warnings. A short question list is
// reported verbatim; field repairs are only counted.
func warningLine(warnings []normalize.Warning) string {
	var partial string
	coerced := 0
	for _, w := range warnings {
		switch w.Kind {
		case normalize.PartialResult:
			partial = w.Detail
		case normalize.FieldCoerced:
			coerced++
		}
	}
	var parts []string
	if partial != "" {
		parts = append(parts, partial)
	}
	if coerced > 0 {
		parts = append(parts, fmt.Sprintf("%d question field(s) were repaired", coerced))
	}
	return strings.Join(parts, "; ")
}
