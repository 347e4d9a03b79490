package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens/home"
	"github.com/abhisek/examtrainer/internal/ui/layout"
)

// clockTickMsg redraws the header timer.
type clockTickMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	session *exam.Session
	trainer *exam.Trainer
	router  *router.Router
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(session *exam.Session, trainer *exam.Trainer) AppModel {
	return AppModel{
		session: session,
		trainer: trainer,
		router:  router.New(home.New(session, trainer)),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockTickMsg:
		return m, tickCmd()

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// timerLabel renders the remaining time while a timed section is active.
func (m AppModel) timerLabel() string {
	t, ok := m.router.Active().(screen.Timed)
	if !ok || !t.Timed() || !m.session.HasDeadline() {
		return ""
	}
	return layout.RenderTimer(m.session.Remaining(m.trainer.Now()))
}

func (m AppModel) keyHints() []layout.KeyHint {
	if g, ok := m.router.Active().(screen.Generating); ok {
		if what := g.Generating(); what != "" {
			return []layout.KeyHint{
				{Key: "…", Description: "Generating " + strings.ToLower(what)},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}
	if kh, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := kh.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame: header, active screen and footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.timerLabel(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// Run starts the Bubble Tea program on a fresh session.
func Run(session *exam.Session, trainer *exam.Trainer) error {
	p := tea.NewProgram(newAppModel(session, trainer))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
