package readingsetup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/prompts"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens/reading"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

type field int

const (
	fieldTypes field = iota
	fieldNumber
	fieldStart
	numFields
)

// readingReadyMsg carries the outcome of a reading generation request.
type readingReadyMsg struct {
	Set *exam.ReadingSet
	Err error
}

// Screen configures and starts a reading practice.
type Screen struct {
	session *exam.Session
	trainer *exam.Trainer

	types   components.Checklist
	count   components.TextInput
	start   components.Button
	focus   field
	spinner spinner.Model
	loading bool
	topic   string
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Generating = (*Screen)(nil)

// New creates the reading setup screen from the session's current selection.
func New(session *exam.Session, trainer *exam.Trainer) *Screen {
	s := &Screen{
		session: session,
		trainer: trainer,
		types:   components.NewChecklist(prompts.QuestionTypes, session.QuestionTypes),
		count:   components.NewTextInput(strconv.Itoa(prompts.DefaultQuestions), true, 2),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Selected)),
	}
	s.count.SetValue(strconv.Itoa(session.QuestionCount))
	s.count.SetNote(fmt.Sprintf("%d to %d", prompts.MinQuestions, prompts.MaxQuestions))
	s.count.Blur()
	s.start = components.NewButton("Start Reading", "ctrl+s", s.begin)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Reading Setup"
}

func (s *Screen) Generating() string {
	if !s.loading {
		return ""
	}
	return "Passage and questions"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Space", Description: "Toggle type"},
		{Key: "Ctrl+S", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case readingReadyMsg:
		return s.handleReady(msg)

	case spinner.TickMsg:
		if !s.loading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		if s.loading {
			return s, nil
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if err := exam.Navigate(s.session, exam.PageHome); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		return s, s.setFocus((s.focus + 1) % numFields)
	case "shift+tab":
		return s, s.setFocus((s.focus + numFields - 1) % numFields)
	case "ctrl+s":
		return s, s.begin()
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldTypes:
		s.types, cmd = s.types.Update(msg)
	case fieldNumber:
		if msg.String() == "enter" {
			return s, s.setFocus(fieldStart)
		}
		s.count, cmd = s.count.Update(msg)
	case fieldStart:
		s.start, cmd = s.start.Update(msg)
	}
	return s, cmd
}

func (s *Screen) setFocus(f field) tea.Cmd {
	s.focus = f
	s.types.Focused = f == fieldTypes
	s.start.Active = f == fieldStart
	if f == fieldNumber {
		return s.count.Focus()
	}
	s.count.Blur()
	return nil
}

// begin stores the selection and starts generation.
func (s *Screen) begin() tea.Cmd {
	if err := exam.SelectQuestionTypes(s.session, s.types.Selected()); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if n, err := s.count.NumericValue(); err == nil {
		if err := exam.SetQuestionCount(s.session, n); err != nil {
			s.errMsg = err.Error()
			return nil
		}
	}
	s.count.SetValue(strconv.Itoa(s.session.QuestionCount))

	plan, err := s.trainer.PlanReading(s.session)
	if err != nil {
		s.session.LastError = err
		s.errMsg = err.Error()
		return nil
	}

	s.errMsg = ""
	s.loading = true
	s.topic = plan.Topic
	trainer := s.trainer
	generate := func() tea.Msg {
		set, err := trainer.GenerateReading(context.Background(), plan)
		return readingReadyMsg{Set: set, Err: err}
	}
	return tea.Batch(s.spinner.Tick, generate)
}

func (s *Screen) handleReady(msg readingReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.session.LastError = msg.Err
		s.errMsg = describe(msg.Err)
		return s, nil
	}
	if err := s.trainer.ApplyReading(context.Background(), s.session, msg.Set); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	next := reading.New(s.session, s.trainer)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// describe turns a generation failure into a one-line message.
func describe(err error) string {
	return "Could not generate the reading set: " + err.Error() + ". Press Ctrl+S to try again."
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Question types"))
	b.WriteString("\n")
	b.WriteString(s.types.View())
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Number of questions  "))
	b.WriteString(s.count.View())
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(s.spinner.View() + " " + theme.Body.Render("Generating a passage on "+s.topic+"..."))
	default:
		b.WriteString(s.start.View())
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Width(cw - 4).Render(s.errMsg))
	}

	return components.Centered(components.Panel("Reading Practice", b.String(), cw), width, height)
}
