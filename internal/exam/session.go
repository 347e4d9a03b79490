// Package exam holds the practice-session state machine: which page is
// active, the generated material on it, the user's answers or essay, and
// the deadline of the timed activity.
package exam

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/normalize"
	"github.com/abhisek/examtrainer/internal/prompts"
)

// Page is the screen the session is on.
type Page int

const (
	PageHome Page = iota
	PageReadingSetup
	PageReading
	PageWritingSetup
	PageWriting
	PageFeedback
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "Home"
	case PageReadingSetup:
		return "Reading Setup"
	case PageReading:
		return "Reading"
	case PageWritingSetup:
		return "Writing Setup"
	case PageWriting:
		return "Writing"
	case PageFeedback:
		return "Feedback"
	default:
		return fmt.Sprintf("Page(%d)", int(p))
	}
}

// TaskType is the writing task subtype.
type TaskType int

const (
	Integrated TaskType = iota
	Independent
)

func (t TaskType) String() string {
	if t == Integrated {
		return "integrated"
	}
	return "independent"
}

// Title is the heading shown above the generated task.
func (t TaskType) Title() string {
	if t == Integrated {
		return "Integrated Writing Task"
	}
	return "Independent Writing Task"
}

// Duration is the time allowed for the task.
func (t TaskType) Duration() time.Duration {
	if t == Integrated {
		return IntegratedDuration
	}
	return IndependentDuration
}

// Time allowed per timed activity.
const (
	ReadingDuration     = 35 * time.Minute
	IntegratedDuration  = 20 * time.Minute
	IndependentDuration = 30 * time.Minute
)

// Session is the mutable state of one user's practice. It is owned by a
// single caller and mutated only through the functions of this package.
type Session struct {
	// ID identifies the session in the event log.
	ID string

	// Page is the active page.
	Page Page

	// QuestionTypes is the reading question-type selection, in menu order.
	QuestionTypes []string

	// QuestionCount is how many questions to request.
	QuestionCount int

	// Topic is the "Category: Topic" of the current passage.
	Topic string

	// Passage is the generated reading text.
	Passage string

	// Questions is the normalized question set for Passage.
	Questions []normalize.Question

	// Warnings lists what the normalizer had to fix.
	Warnings []normalize.Warning

	// Answers holds the chosen option text per question; nil is unanswered.
	Answers []*string

	// Results is set once the answers are submitted.
	Results *Results

	// TaskType is the selected writing subtype.
	TaskType TaskType

	// Theme is the writing theme behind the current task.
	Theme string

	// WritingTitle and WritingPrompt describe the generated task.
	WritingTitle  string
	WritingPrompt string

	// EssayDraft is the text being edited.
	EssayDraft string

	// SubmittedEssay is the essay the feedback is for.
	SubmittedEssay string

	// Feedback is the cached review of SubmittedEssay.
	Feedback string

	// Deadline ends the timed activity. Zero means no activity is timed.
	Deadline time.Time

	// LastError is the failure of the most recent generation, shown to
	// the user until the next action.
	LastError error

	// Rotation tracks which topics and themes were already served. It
	// survives returning home.
	Rotation *catalog.Rotation
}

// NewSession creates a session on the home page with the default reading
// setup. A nil rotation gets a fresh one.
func NewSession(rotation *catalog.Rotation) *Session {
	if rotation == nil {
		rotation = catalog.NewRotation(nil)
	}
	return &Session{
		ID:            uuid.NewString(),
		Page:          PageHome,
		QuestionTypes: append([]string(nil), prompts.DefaultQuestionTypes...),
		QuestionCount: prompts.DefaultQuestions,
		TaskType:      Integrated,
		Rotation:      rotation,
	}
}

// HasDeadline reports whether a timed activity is armed.
func (s *Session) HasDeadline() bool {
	return !s.Deadline.IsZero()
}

// Expired reports whether the armed deadline has passed at now.
func (s *Session) Expired(now time.Time) bool {
	return s.HasDeadline() && !now.Before(s.Deadline)
}

// Remaining returns the time left before the deadline, never negative.
func (s *Session) Remaining(now time.Time) time.Duration {
	if !s.HasDeadline() {
		return 0
	}
	if d := s.Deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Answered returns how many questions have an answer.
func (s *Session) Answered() int {
	n := 0
	for _, a := range s.Answers {
		if a != nil {
			n++
		}
	}
	return n
}

// FormatRemaining renders d as MM:SS, rounding partial seconds up so a
// running timer never shows 00:00 early.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "00:00"
	}
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (s *Session) clearReading() {
	s.Topic = ""
	s.Passage = ""
	s.Questions = nil
	s.Warnings = nil
	s.Answers = nil
	s.Results = nil
	s.Deadline = time.Time{}
}

func (s *Session) clearWriting() {
	s.Theme = ""
	s.WritingTitle = ""
	s.WritingPrompt = ""
	s.EssayDraft = ""
	s.SubmittedEssay = ""
	s.Feedback = ""
	s.Deadline = time.Time{}
}
