package app

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/screen"
	"github.com/abhisek/examtrainer/internal/screens/screentest"
)

func newModel(t *testing.T) (AppModel, *screentest.Env) {
	t.Helper()
	env := screentest.NewEnv(t)
	m := newAppModel(env.Session, env.Trainer)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(AppModel), env
}

func TestApp_CtrlCQuits(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(screentest.Ctrl('c'))
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestApp_HomeView(t *testing.T) {
	m, _ := newModel(t)
	content := m.render()
	if !strings.Contains(content, "TOEFL Trainer") || !strings.Contains(content, "Reading Practice") {
		t.Errorf("unexpected home view:\n%s", content)
	}
}

// sectionScreen stands in for a timed exam section.
type sectionScreen struct{ timed bool }

func (s *sectionScreen) Init() tea.Cmd { return nil }
func (s *sectionScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *sectionScreen) View(int, int) string { return "section" }
func (s *sectionScreen) Title() string { return "Section" }
func (s *sectionScreen) Timed() bool { return s.timed }

func TestApp_TimerLabel(t *testing.T) {
	m, env := newModel(t)
	env.Session.Deadline = env.Clock.Now().Add(90 * time.Second)
	if m.timerLabel() != "" {
		t.Error("no timer expected on the home page")
	}

	section := &sectionScreen{}
	m.router.Push(section)
	if m.timerLabel() != "" {
		t.Error("no timer expected once the section stops timing")
	}

	section.timed = true
	if got := m.timerLabel(); !strings.Contains(got, "01:30") {
		t.Errorf("timer = %q, want 01:30", got)
	}

	env.Clock.Advance(2 * time.Minute)
	if got := m.timerLabel(); !strings.Contains(got, "Time's up") {
		t.Errorf("timer = %q, want Time's up", got)
	}
}

func TestApp_TooSmall(t *testing.T) {
	env := screentest.NewEnv(t)
	m := newAppModel(env.Session, env.Trainer)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected the minimum size message")
	}
}

func TestApp_GeneratingHints(t *testing.T) {
	m, _ := newModel(t)

	updated, cmd := m.Update(screentest.KeyPress('w'))
	m = updated.(AppModel)
	for _, msg := range screentest.Exec(cmd) {
		updated, _ = m.Update(msg)
		m = updated.(AppModel)
	}
	if got := m.router.Active().Title(); got != "Writing Setup" {
		t.Fatalf("active screen = %q, want Writing Setup", got)
	}

	updated, _ = m.Update(screentest.SpecialKey(tea.KeyEnter))
	m = updated.(AppModel)
	hints := m.keyHints()
	if len(hints) != 2 || hints[0].Description != "Generating writing task" {
		t.Errorf("hints while generating = %+v", hints)
	}
}
