package writingsetup

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens/writing"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// writingReadyMsg carries the outcome of a writing-task request.
type writingReadyMsg struct {
	Task *exam.WritingTask
	Err  error
}

// Screen picks the writing task type and generates the task.
type Screen struct {
	session *exam.Session
	trainer *exam.Trainer

	menu    components.Menu
	spinner spinner.Model
	loading bool
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Generating = (*Screen)(nil)

// New creates the writing setup screen.
func New(session *exam.Session, trainer *exam.Trainer) *Screen {
	s := &Screen{
		session: session,
		trainer: trainer,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Selected)),
	}
	var items []components.MenuItem
	for _, t := range []exam.TaskType{exam.Integrated, exam.Independent} {
		items = append(items, components.MenuItem{
			Label:  t.Title(),
			Hint:   fmt.Sprintf("%d min", int(t.Duration().Minutes())),
			Action: s.begin(t),
		})
	}
	s.menu = components.NewMenu(items)
	s.menu.Selected = int(session.TaskType)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Writing Setup"
}

func (s *Screen) Generating() string {
	if !s.loading {
		return ""
	}
	return "Writing task"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Task type"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case writingReadyMsg:
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
		if msg.String() == "esc" {
			if err := exam.Navigate(s.session, exam.PageHome); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) begin(t exam.TaskType) func() tea.Cmd {
	return func() tea.Cmd {
		if err := exam.ChooseTaskType(s.session, t); err != nil {
			s.errMsg = err.Error()
			return nil
		}
		plan, err := s.trainer.PlanWriting(s.session)
		if err != nil {
			s.session.LastError = err
			s.errMsg = err.Error()
			return nil
		}

		s.errMsg = ""
		s.loading = true
		trainer := s.trainer
		generate := func() tea.Msg {
			task, err := trainer.GenerateWriting(context.Background(), plan)
			return writingReadyMsg{Task: task, Err: err}
		}
		return tea.Batch(s.spinner.Tick, generate)
	}
}

func (s *Screen) handleReady(msg writingReadyMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.session.LastError = msg.Err
		s.errMsg = "Could not generate the writing task: " + msg.Err.Error() + ". Press Enter to try again."
		return s, nil
	}
	if err := s.trainer.ApplyWriting(context.Background(), s.session, msg.Task); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	next := writing.New(s.session, s.trainer)
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Choose a task"))
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())
	if s.loading {
		b.WriteString("\n")
		b.WriteString(s.spinner.View() + " " + theme.Body.Render("Generating the task..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Width(cw - 4).Render(s.errMsg))
	}
	return components.Centered(components.Panel("Writing Practice", b.String(), cw), width, height)
}
