package feedback

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/ui/layout"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// feedbackReadyMsg carries the outcome of a feedback request.
type feedbackReadyMsg struct {
	Plan exam.FeedbackPlan
	Text string
	Err  error
}

// Screen shows the review of a submitted essay.
type Screen struct {
	session *exam.Session
	trainer *exam.Trainer

	review  viewport.Model
	spinner spinner.Model
	loading bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Generating = (*Screen)(nil)

// New creates the feedback screen for a session on the feedback page.
// Init requests the review unless one is cached.
func New(session *exam.Session, trainer *exam.Trainer) *Screen {
	vp := viewport.New(viewport.WithWidth(80), viewport.WithHeight(10))
	vp.SoftWrap = true
	s := &Screen{
		session: session,
		trainer: trainer,
		review:  vp,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Selected)),
	}
	s.refreshContent()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.request()
}

func (s *Screen) Title() string {
	return "Feedback"
}

func (s *Screen) Generating() string {
	if !s.loading {
		return ""
	}
	return "Essay review"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.session.LastError != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retry"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Home"})
}

// request starts feedback generation when the submission has no review yet.
func (s *Screen) request() tea.Cmd {
	plan, needed, err := s.trainer.PlanFeedback(s.session)
	if err != nil {
		s.session.LastError = err
		s.refreshContent()
		return nil
	}
	if !needed {
		return nil
	}

	s.loading = true
	s.session.LastError = nil
	trainer := s.trainer
	generate := func() tea.Msg {
		text, err := trainer.GenerateFeedback(context.Background(), plan)
		return feedbackReadyMsg{Plan: plan, Text: text, Err: err}
	}
	return tea.Batch(s.spinner.Tick, generate)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackReadyMsg:
		s.loading = false
		if msg.Err != nil {
			s.session.LastError = msg.Err
		} else {
			s.trainer.ApplyFeedback(context.Background(), s.session, msg.Plan, msg.Text)
		}
		s.refreshContent()
		return s, nil

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
		switch msg.String() {
		case "r":
			if s.session.LastError != nil {
				return s, s.request()
			}
		case "enter", "esc", "h":
			exam.ReturnHome(s.session)
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "up", "k":
			s.review.ScrollUp(1)
		case "down", "j":
			s.review.ScrollDown(1)
		case "pgup":
			s.review.PageUp()
		case "pgdown", "space":
			s.review.PageDown()
		}
	}
	return s, nil
}

func (s *Screen) refreshContent() {
	var b strings.Builder
	if s.session.Feedback != "" {
		b.WriteString(s.session.Feedback)
		b.WriteString("\n\n")
	}
	b.WriteString("Your essay\n\n")
	b.WriteString(s.session.SubmittedEssay)
	s.review.SetContent(b.String())
}

func (s *Screen) View(width, height int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var header string
	switch {
	case s.loading:
		header = s.spinner.View() + " " + theme.Body.Render("Reviewing your essay...")
	case s.session.LastError != nil:
		header = theme.ErrorText.Width(inner).Render("Could not get feedback: " + s.session.LastError.Error() + ". Press R to retry.")
	default:
		header = theme.Title.Render(s.session.WritingTitle + " feedback")
	}

	s.review.SetWidth(inner)
	h := height - lipgloss.Height(header) - 1
	if h < 3 {
		h = 3
	}
	s.review.SetHeight(h)

	return lipgloss.NewStyle().Padding(0, 2).Render(header + "\n" + s.review.View())
}
