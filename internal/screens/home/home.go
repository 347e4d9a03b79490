package home

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens/readingsetup"
	"github.com/abhisek/examtrainer/internal/screens/writingsetup"
	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/layout"
)

// HomeScreen is the landing page: pick reading or writing practice.
type HomeScreen struct {
	session *exam.Session
	trainer *exam.Trainer
	menu    components.Menu
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(session *exam.Session, trainer *exam.Trainer) *HomeScreen {
	h := &HomeScreen{session: session, trainer: trainer}
	h.menu = components.NewMenu([]components.MenuItem{
		{
			Label:  "Reading Practice",
			Hint:   "passage + questions, 35 min",
			Action: h.open(exam.PageReadingSetup),
		},
		{
			Label:  "Writing Practice",
			Hint:   "integrated 20 min, independent 30 min",
			Action: h.open(exam.PageWritingSetup),
		},
		{
			Label:  "Quit",
			Action: func() tea.Cmd { return tea.Quit },
		},
	})
	return h
}

func (h *HomeScreen) open(page exam.Page) func() tea.Cmd {
	return func() tea.Cmd {
		if err := exam.Navigate(h.session, page); err != nil {
			h.errMsg = err.Error()
			return nil
		}
		h.errMsg = ""

		var next screen.Screen
		if page == exam.PageReadingSetup {
			next = readingsetup.New(h.session, h.trainer)
		} else {
			next = writingsetup.New(h.session, h.trainer)
		}
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "r":
			h.menu.Selected = 0
			return h, h.menu.Items[0].Action()
		case "w":
			h.menu.Selected = 1
			return h, h.menu.Items[1].Action()
		case "q":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	return renderHome(h.menu, h.errMsg, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "R/W", Description: "Reading/Writing"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
