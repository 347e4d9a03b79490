package reading

import (
	"context"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
)

// Screen shows the passage and its questions, and the results once the
// answers are submitted.
type Screen struct {
	session *exam.Session
	trainer *exam.Trainer

	passage     viewport.Model
	choices     []components.MultiChoice
	current     int
	confirmQuit bool
	notice      string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Timed = (*Screen)(nil)

// New creates the reading screen for a session already on the reading page.
func New(session *exam.Session, trainer *exam.Trainer) *Screen {
	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(10))
	vp.SoftWrap = true
	vp.SetContent(session.Passage)

	s := &Screen{
		session: session,
		trainer: trainer,
		passage: vp,
		choices: make([]components.MultiChoice, len(session.Questions)),
	}
	for i, q := range session.Questions {
		mc := components.NewMultiChoice(i+1, q.Question, q.Options)
		if i < len(session.Answers) && session.Answers[i] != nil {
			mc.Chosen = *session.Answers[i]
		}
		s.choices[i] = mc
	}
	if session.Results != nil {
		s.reveal()
	}
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	if s.session.Topic == "" {
		return "Reading"
	}
	return "Reading: " + s.session.Topic
}

// Timed stops the header clock once the answers are scored.
func (s *Screen) Timed() bool {
	return s.session.Results == nil
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.session.Results != nil {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next question"},
			{Key: "PgUp/PgDn", Description: "Scroll passage"},
			{Key: "Enter", Description: "Home"},
		}
	}
	return []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "Tab/Shift+Tab", Description: "Next/prev question"},
		{Key: "PgUp/PgDn", Description: "Scroll passage"},
		{Key: "Ctrl+S", Description: "Submit"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.ChoiceMsg:
		s.choose(msg.Question-1, msg.Option)
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			return s, s.leave()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	switch key {
	case "tab", "right":
		s.move(1)
		return s, nil
	case "shift+tab", "left":
		s.move(-1)
		return s, nil
	case "pgdown", "shift+down":
		s.passage.PageDown()
		return s, nil
	case "pgup", "shift+up":
		s.passage.PageUp()
		return s, nil
	}

	if s.session.Results != nil {
		switch key {
		case "enter", "esc", "h":
			return s, s.leave()
		}
		return s, nil
	}

	switch key {
	case "ctrl+s":
		return s, s.submit()
	case "esc":
		s.confirmQuit = true
		return s, nil
	}

	if len(s.choices) == 0 {
		return s, nil
	}
	var cmd tea.Cmd
	s.choices[s.current], cmd = s.choices[s.current].Update(msg)
	return s, cmd
}

func (s *Screen) move(delta int) {
	if len(s.choices) == 0 {
		return
	}
	s.current = (s.current + delta + len(s.choices)) % len(s.choices)
}

// choose records option for question i. The screen only advances when
// i is still the question on display.
func (s *Screen) choose(i int, option string) {
	if i < 0 || i >= len(s.choices) {
		return
	}
	if !exam.ChooseAnswer(s.session, i, option, s.trainer.Now()) {
		if s.session.Expired(s.trainer.Now()) {
			s.notice = "Time's up. Answers are locked; press Ctrl+S to see your score."
		}
		return
	}
	s.notice = ""
	s.choices[i].Chosen = option
	if i == s.current && s.current < len(s.choices)-1 {
		s.current++
	}
}

func (s *Screen) submit() tea.Cmd {
	if _, err := exam.SubmitAnswers(s.session); err != nil {
		s.notice = err.Error()
		return nil
	}
	s.trainer.RecordResults(context.Background(), s.session)
	s.reveal()
	s.current = 0
	s.notice = ""
	return nil
}

func (s *Screen) reveal() {
	for i := range s.choices {
		s.choices[i].Revealed = true
		if i < len(s.session.Results.Verdicts) {
			s.choices[i].Correct = s.session.Results.Verdicts[i].Expected
		}
	}
}

func (s *Screen) leave() tea.Cmd {
	exam.ReturnHome(s.session)
	return func() tea.Msg { return router.PopToRootMsg{} }
}
