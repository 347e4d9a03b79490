package writing

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens/feedback"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// Screen shows the writing task and the essay editor.
type Screen struct {
	session *exam.Session
	trainer *exam.Trainer

	prompt      viewport.Model
	editor      textarea.Model
	confirmQuit bool
	notice      string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Timed = (*Screen)(nil)

// New creates the writing screen for a session already on the writing page.
func New(session *exam.Session, trainer *exam.Trainer) *Screen {
	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(8))
	vp.SoftWrap = true
	vp.SetContent(session.WritingPrompt)

	ta := textarea.New()
	ta.Placeholder = "Write your essay here..."
	ta.ShowLineNumbers = false
	ta.SetValue(session.EssayDraft)
	ta.Focus()

	return &Screen{
		session: session,
		trainer: trainer,
		prompt:  vp,
		editor:  ta,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.editor.Focus()
}

func (s *Screen) Title() string {
	return s.session.WritingTitle
}

func (s *Screen) Timed() bool {
	return true
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Discard essay"},
			{Key: "N", Description: "Keep writing"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "PgUp/PgDn", Description: "Scroll task"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	case tea.PasteMsg:
		if s.confirmQuit || s.editsClosed() {
			return s, nil
		}
	}
	return s.edit(msg)
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.confirmQuit {
		switch msg.String() {
		case "y", "Y":
			s.confirmQuit = false
			if err := exam.CancelWriting(s.session); err != nil {
				s.notice = err.Error()
				return s, nil
			}
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "ctrl+s":
		return s, s.submit()
	case "pgdown":
		s.prompt.PageDown()
		return s, nil
	case "pgup":
		s.prompt.PageUp()
		return s, nil
	}

	if s.editsClosed() {
		return s, nil
	}
	return s.edit(msg)
}

// editsClosed reports whether the writing timer has run out, and says so.
func (s *Screen) editsClosed() bool {
	if !s.session.Expired(s.trainer.Now()) {
		return false
	}
	s.notice = "Time's up. Editing is closed; press Ctrl+S to submit your essay."
	return true
}

// edit hands msg to the editor and keeps the draft in step with it. A
// change the session refuses is rolled back in the editor.
func (s *Screen) edit(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.editor, cmd = s.editor.Update(msg)
	if v := s.editor.Value(); v != s.session.EssayDraft && !exam.EditEssay(s.session, v, s.trainer.Now()) {
		s.editor.SetValue(s.session.EssayDraft)
	}
	return s, cmd
}

func (s *Screen) submit() tea.Cmd {
	if err := exam.SubmitEssay(s.session); err != nil {
		if errors.Is(err, exam.ErrEmptyEssay) {
			s.notice = "Please write your essay before submitting."
		} else {
			s.notice = err.Error()
		}
		return nil
	}
	next := feedback.New(s.session, s.trainer)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *Screen) View(width, height int) string {
	if s.confirmQuit {
		return components.Centered(components.Panel("Cancel this task?",
			theme.Body.Render("Your essay will be discarded.\n\nPress Y to leave or N to keep writing."),
			components.ContentWidth(width)), width, height)
	}

	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	status := theme.Subtitle.Render(fmt.Sprintf("%d words", wordCount(s.editor.Value())))
	if s.notice != "" {
		status += "\n" + theme.ErrorText.Width(inner).Render(s.notice)
	}

	promptHeight := (height - lipgloss.Height(status) - 2) / 2
	if promptHeight < 3 {
		promptHeight = 3
	}
	editorHeight := height - promptHeight - lipgloss.Height(status) - 2
	if editorHeight < 3 {
		editorHeight = 3
	}
	s.prompt.SetWidth(inner)
	s.prompt.SetHeight(promptHeight)
	s.editor.SetWidth(inner)
	s.editor.SetHeight(editorHeight)

	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner))
	body := strings.Join([]string{s.prompt.View(), rule, s.editor.View(), status}, "\n")
	return lipgloss.NewStyle().Padding(0, 2).Render(body)
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
