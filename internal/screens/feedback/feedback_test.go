package feedback

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/llm"
	"github.com/abhisek/examtrainer/internal/router"
	"github.com/abhisek/examtrainer/internal/screens/screentest"
)

// submitted returns an env whose session is on the feedback page.
func submitted(t *testing.T, responses ...llm.MockResponse) *screentest.Env {
	t.Helper()
	env := screentest.NewEnv(t)
	s := env.Session
	s.Page = exam.PageFeedback
	s.TaskType = exam.Independent
	s.WritingTitle = exam.Independent.Title()
	s.WritingPrompt = "Do you agree that cities should ban cars?"
	s.SubmittedEssay = "I agree because air quality matters."
	for _, r := range responses {
		env.Mock.AddResponse(r)
	}
	return env
}

func TestFeedback_InitRequestsReview(t *testing.T) {
	env := submitted(t, llm.MockResponse{Text: "Score: 4/5. Clear thesis."})
	s := New(env.Session, env.Trainer)

	cmd := s.Init()
	if s.Generating() == "" {
		t.Fatal("expected loading while the review is generated")
	}
	ready, ok := screentest.Find[feedbackReadyMsg](screentest.Exec(cmd))
	if !ok {
		t.Fatal("expected a feedback-ready message")
	}
	s.Update(ready)

	if env.Session.Feedback != "Score: 4/5. Clear thesis." {
		t.Errorf("feedback = %q", env.Session.Feedback)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "Clear thesis") || !strings.Contains(view, "air quality") {
		t.Errorf("view missing review or essay:\n%s", view)
	}
	if !strings.Contains(env.Mock.LastPrompt(), "I agree because air quality matters.") {
		t.Error("prompt should include the submitted essay")
	}
}

func TestFeedback_CachedReviewNotRequested(t *testing.T) {
	env := submitted(t)
	env.Session.Feedback = "Already reviewed."
	s := New(env.Session, env.Trainer)

	if cmd := s.Init(); cmd != nil {
		t.Error("expected no request for a cached review")
	}
	if env.Mock.CallCount() != 0 {
		t.Error("provider should not be called")
	}
}

func TestFeedback_FailureThenRetry(t *testing.T) {
	env := submitted(t,
		llm.MockResponse{Err: errors.New("overloaded")},
		llm.MockResponse{Text: "Good structure."},
	)
	s := New(env.Session, env.Trainer)

	ready, _ := screentest.Find[feedbackReadyMsg](screentest.Exec(s.Init()))
	s.Update(ready)

	if env.Session.LastError == nil || env.Session.Page != exam.PageFeedback {
		t.Fatalf("expected to stay on feedback with an error, page %v", env.Session.Page)
	}
	if !strings.Contains(s.View(100, 30), "Press R to retry") {
		t.Error("expected the retry hint")
	}

	_, cmd := s.Update(screentest.KeyPress('r'))
	ready, ok := screentest.Find[feedbackReadyMsg](screentest.Exec(cmd))
	if !ok {
		t.Fatal("expected a retry request")
	}
	s.Update(ready)

	if env.Session.Feedback != "Good structure." || env.Session.LastError != nil {
		t.Errorf("feedback %q, error %v", env.Session.Feedback, env.Session.LastError)
	}
}

func TestFeedback_StaleReviewDropped(t *testing.T) {
	env := submitted(t, llm.MockResponse{Text: "Review of the old essay."})
	s := New(env.Session, env.Trainer)
	ready, _ := screentest.Find[feedbackReadyMsg](screentest.Exec(s.Init()))

	env.Session.SubmittedEssay = "A different essay."
	s.Update(ready)

	if env.Session.Feedback != "" {
		t.Errorf("stale feedback stored: %q", env.Session.Feedback)
	}
}

func TestFeedback_ReturnHome(t *testing.T) {
	env := submitted(t)
	env.Session.Feedback = "Done."
	s := New(env.Session, env.Trainer)

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	if _, ok := screentest.Find[router.PopToRootMsg](screentest.Exec(cmd)); !ok {
		t.Fatal("expected pop to root")
	}
	if env.Session.Page != exam.PageHome || env.Session.SubmittedEssay != "" {
		t.Errorf("expected a cleared home session, page %v", env.Session.Page)
	}
}

func TestFeedback_KeysIgnoredWhileLoading(t *testing.T) {
	env := submitted(t, llm.MockResponse{Text: "Review."})
	s := New(env.Session, env.Trainer)
	s.Init()

	_, cmd := s.Update(screentest.SpecialKey(tea.KeyEnter))
	if cmd != nil || env.Session.Page != exam.PageFeedback {
		t.Error("enter should be ignored while the review is generated")
	}
}
