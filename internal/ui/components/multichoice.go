package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// ChoiceMsg is emitted when the user picks an option of a MultiChoice.
// Question is the MultiChoice's Number, so a pick that arrives after the
// user moved on still lands on the question it was made for.
type ChoiceMsg struct {
	Question int
	Option   string
}

// MultiChoice renders one question with lettered options. The chosen
// option is owned by the caller; the component only tracks the cursor.
type MultiChoice struct {
	Number   int
	Question string
	Options  []string
	Cursor   int

	// Chosen is the option text currently selected, empty if none.
	Chosen string

	// Revealed shows the correct option and marks a wrong choice.
	Revealed bool
	Correct  string
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(number int, question string, options []string) MultiChoice {
	return MultiChoice{
		Number:   number,
		Question: question,
		Options:  options,
	}
}

// Update moves the cursor with the arrow keys. Enter picks the option
// under the cursor; a letter or digit picks that option directly. Every
// letter is kept for picking, so questions with many options stay
// reachable from the keyboard.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case "down":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
		return m, nil
	case "enter":
		return m, m.pick(m.Cursor)
	}

	if len(key) == 1 {
		switch c := key[0]; {
		case c >= 'a' && c <= 'z':
			return m, m.pick(int(c - 'a'))
		case c >= '1' && c <= '9':
			return m, m.pick(int(c - '1'))
		}
	}
	return m, nil
}

func (m *MultiChoice) pick(i int) tea.Cmd {
	if i < 0 || i >= len(m.Options) {
		return nil
	}
	m.Cursor = i
	msg := ChoiceMsg{Question: m.Number, Option: m.Options[i]}
	return func() tea.Msg { return msg }
}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width)
	b.WriteString(questionStyle.Render(fmt.Sprintf("%d. %s", m.Number, m.Question)))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		mark := " "
		if opt == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %c) %s", prefix, mark, 'A'+rune(i), opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && opt == m.Correct:
			style = theme.Correct
		case m.Revealed && opt == m.Chosen:
			style = theme.Incorrect
		case m.Revealed:
			style = theme.Subtitle
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Width(width).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
