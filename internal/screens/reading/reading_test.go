package reading

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/llm"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screens/screentest"
)

func questionsJSON(n int) string {
	var parts []string
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf(
			`{"type":"Inference","question":"Q%d?","options":["a%d","b%d","c%d","d%d"],"correct":1}`,
			i+1, i, i, i, i))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func newReadingScreen(t *testing.T, n int) (*Screen, *screentest.Env) {
	t.Helper()
	env := screentest.NewEnv(t,
		llm.MockResponse{Text: "Glacial Lakes\n\nIce carves basins."},
		llm.MockResponse{Text: questionsJSON(n)},
	)
	if err := exam.Navigate(env.Session, exam.PageReadingSetup); err != nil {
		t.Fatal(err)
	}
	if err := exam.SetQuestionCount(env.Session, n); err != nil {
		t.Fatal(err)
	}
	if err := env.Trainer.StartReadingPractice(context.Background(), env.Session); err != nil {
		t.Fatal(err)
	}
	return New(env.Session, env.Trainer), env
}

// press sends a key and feeds any resulting choice back into the screen.
func press(s *Screen, key tea.KeyPressMsg) {
	_, cmd := s.Update(key)
	for _, msg := range screentest.Exec(cmd) {
		s.Update(msg)
	}
}

func TestReading_ChooseAndAdvance(t *testing.T) {
	s, env := newReadingScreen(t, 4)

	press(s, screentest.KeyPress('b'))

	if got := env.Session.Answers[0]; got == nil || *got != "b0" {
		t.Fatalf("answer 0 = %v, want b0", got)
	}
	if s.current != 1 {
		t.Errorf("current = %d, want 1 after answering", s.current)
	}
	if s.choices[0].Chosen != "b0" {
		t.Errorf("choice view not updated: %q", s.choices[0].Chosen)
	}
}

func TestReading_TabWrapsAround(t *testing.T) {
	s, _ := newReadingScreen(t, 4)
	press(s, screentest.SpecialKey(tea.KeyTab))
	if s.current != 1 {
		t.Fatalf("current = %d, want 1", s.current)
	}
	press(s, screentest.SpecialKey(tea.KeyLeft))
	press(s, screentest.SpecialKey(tea.KeyLeft))
	if s.current != 3 {
		t.Errorf("current = %d, want 3 after wrapping back", s.current)
	}
}

func TestReading_LateChoiceLandsOnItsQuestion(t *testing.T) {
	s, env := newReadingScreen(t, 4)

	_, pick := s.Update(screentest.KeyPress('a'))
	s.Update(screentest.SpecialKey(tea.KeyTab))
	if s.current != 1 {
		t.Fatalf("current = %d, want 1", s.current)
	}
	for _, msg := range screentest.Exec(pick) {
		s.Update(msg)
	}

	if got := env.Session.Answers[0]; got == nil || *got != "a0" {
		t.Errorf("answer 0 = %v, want a0", got)
	}
	if env.Session.Answers[1] != nil {
		t.Errorf("answer 1 = %q, want unanswered", *env.Session.Answers[1])
	}
	if s.choices[0].Chosen != "a0" || s.choices[1].Chosen != "" {
		t.Errorf("chosen = %q, %q", s.choices[0].Chosen, s.choices[1].Chosen)
	}
	if s.current != 1 {
		t.Errorf("current = %d, a late pick should not move the screen", s.current)
	}
}

func TestReading_LettersPickNotNavigate(t *testing.T) {
	s, env := newReadingScreen(t, 4)

	press(s, screentest.KeyPress('n'))
	press(s, screentest.KeyPress('p'))
	if s.current != 0 || env.Session.Answers[0] != nil {
		t.Errorf("n/p beyond the options should do nothing, current %d", s.current)
	}
}

func TestReading_SubmitShowsScore(t *testing.T) {
	s, env := newReadingScreen(t, 4)

	press(s, screentest.KeyPress('b')) // correct
	press(s, screentest.KeyPress('a')) // wrong
	press(s, screentest.Ctrl('s'))

	if env.Session.Results == nil {
		t.Fatal("expected results after submit")
	}
	if got := env.Session.Results.String(); got != "1/4 (25.0%)" {
		t.Errorf("score = %q", got)
	}
	if !s.choices[0].Revealed || s.choices[0].Correct != "b0" {
		t.Error("expected choices to reveal the correct option")
	}
	if view := s.View(100, 40); !strings.Contains(view, "Score 1/4 (25.0%)") {
		t.Errorf("view missing score:\n%s", view)
	}

	// Answers are locked after submission.
	press(s, screentest.KeyPress('c'))
	if *env.Session.Answers[0] != "b0" {
		t.Error("answer changed after submission")
	}
}

func TestReading_ExpiredIgnoresAnswers(t *testing.T) {
	s, env := newReadingScreen(t, 4)
	env.Clock.Advance(exam.ReadingDuration + time.Second)

	press(s, screentest.KeyPress('a'))

	if env.Session.Answers[0] != nil {
		t.Error("answer recorded after the deadline")
	}
	if !strings.Contains(s.notice, "Time's up") {
		t.Errorf("notice = %q", s.notice)
	}

	press(s, screentest.Ctrl('s'))
	if env.Session.Results == nil || env.Session.Results.Score != 0 {
		t.Error("submission after the deadline should still score")
	}
}

func TestReading_LeaveWithConfirm(t *testing.T) {
	s, env := newReadingScreen(t, 4)

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEscape))
	if cmd != nil || !s.confirmQuit {
		t.Fatal("expected a confirmation prompt")
	}
	_, cmd = s.Update(screentest.KeyPress('n'))
	if s.confirmQuit || cmd != nil {
		t.Fatal("expected the prompt to close")
	}

	s.Update(screentest.SpecialKey(tea.KeyEscape))
	_, cmd = s.Update(screentest.KeyPress('y'))
	if _, ok := screentest.Find[router.PopToRootMsg](screentest.Exec(cmd)); !ok {
		t.Fatal("expected pop to root")
	}
	if env.Session.Page != exam.PageHome || env.Session.Passage != "" {
		t.Errorf("expected a cleared home session, got page %v", env.Session.Page)
	}
}

func TestReading_PartialWarningShown(t *testing.T) {
	env := screentest.NewEnv(t,
		llm.MockResponse{Text: "Tides\n\nThe moon pulls."},
		llm.MockResponse{Text: questionsJSON(2)},
	)
	exam.Navigate(env.Session, exam.PageReadingSetup)
	exam.SetQuestionCount(env.Session, 10)
	if err := env.Trainer.StartReadingPractice(context.Background(), env.Session); err != nil {
		t.Fatal(err)
	}
	s := New(env.Session, env.Trainer)

	if view := s.View(100, 40); !strings.Contains(view, "only 2 questions generated (expected 10)") {
		t.Errorf("view missing partial warning:\n%s", view)
	}
}
