package exam

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/abhisek/examtrainer/internal/prompts"
)

var (
	// ErrWrongPage is returned when an action is not valid on the
	// session's current page.
	ErrWrongPage = errors.New("action not available on this page")

	// ErrNoQuestionTypes is returned when reading practice starts with an
	// empty question-type selection.
	ErrNoQuestionTypes = errors.New("select at least one question type")

	// ErrEmptyEssay is returned when the essay is blank on submission.
	ErrEmptyEssay = errors.New("please write your essay before submitting")
)

func requirePage(s *Session, pages ...Page) error {
	if slices.Contains(pages, s.Page) {
		return nil
	}
	return fmt.Errorf("%w: on %s", ErrWrongPage, s.Page)
}

// Navigate moves between the home and setup pages. Pages that hold
// generated material are left through ReturnHome or CancelWriting.
func Navigate(s *Session, page Page) error {
	if err := requirePage(s, PageHome, PageReadingSetup, PageWritingSetup); err != nil {
		return err
	}
	switch page {
	case PageHome, PageReadingSetup, PageWritingSetup:
		s.Page = page
		s.LastError = nil
		return nil
	default:
		return fmt.Errorf("%w: cannot navigate to %s", ErrWrongPage, page)
	}
}

// SelectQuestionTypes replaces the question-type selection. Names are
// matched case-insensitively and kept in menu order; an empty selection
// is accepted here and rejected when practice starts.
func SelectQuestionTypes(s *Session, types []string) error {
	if err := requirePage(s, PageReadingSetup); err != nil {
		return err
	}
	chosen := make(map[string]bool, len(types))
	for _, t := range types {
		name, ok := prompts.CanonicalType(t)
		if !ok {
			return fmt.Errorf("unknown question type %q", t)
		}
		chosen[name] = true
	}
	selected := make([]string, 0, len(chosen))
	for _, t := range prompts.QuestionTypes {
		if chosen[t] {
			selected = append(selected, t)
		}
	}
	s.QuestionTypes = selected
	return nil
}

// SetQuestionCount sets the number of questions, clamped to the allowed
// range.
func SetQuestionCount(s *Session, n int) error {
	if err := requirePage(s, PageReadingSetup); err != nil {
		return err
	}
	s.QuestionCount = max(prompts.MinQuestions, min(n, prompts.MaxQuestions))
	return nil
}

// ChooseAnswer records option as the answer to question i. It reports
// whether the answer sheet changed: selections after the deadline, after
// submission, or naming an option the question does not have are
// ignored.
func ChooseAnswer(s *Session, i int, option string, now time.Time) bool {
	if s.Page != PageReading || s.Results != nil || s.Expired(now) {
		return false
	}
	if i < 0 || i >= len(s.Questions) || i >= len(s.Answers) {
		return false
	}
	if !slices.Contains(s.Questions[i].Options, option) {
		return false
	}
	s.Answers[i] = &option
	return true
}

// SubmitAnswers scores the answer sheet. It is allowed after the
// deadline; once submitted the answers are locked.
func SubmitAnswers(s *Session) (*Results, error) {
	if err := requirePage(s, PageReading); err != nil {
		return nil, err
	}
	if s.Results == nil {
		s.Results = score(s)
	}
	return s.Results, nil
}

// ReturnHome leaves the current page and clears the material it held.
// The topic rotation is kept.
func ReturnHome(s *Session) {
	switch s.Page {
	case PageReading:
		s.clearReading()
	case PageWriting, PageFeedback:
		s.clearWriting()
	}
	s.Page = PageHome
	s.LastError = nil
}

// ChooseTaskType selects the writing subtype.
func ChooseTaskType(s *Session, t TaskType) error {
	if err := requirePage(s, PageWritingSetup); err != nil {
		return err
	}
	if t != Integrated && t != Independent {
		return fmt.Errorf("unknown task type %d", int(t))
	}
	s.TaskType = t
	return nil
}

// EditEssay replaces the draft. It reports whether the draft changed;
// edits after the deadline are ignored.
func EditEssay(s *Session, text string, now time.Time) bool {
	if s.Page != PageWriting || s.Expired(now) {
		return false
	}
	if s.EssayDraft == text {
		return false
	}
	s.EssayDraft = text
	return true
}

// SubmitEssay moves the draft to the feedback page. It is allowed after
// the deadline.
func SubmitEssay(s *Session) error {
	if err := requirePage(s, PageWriting); err != nil {
		return err
	}
	if strings.TrimSpace(s.EssayDraft) == "" {
		return ErrEmptyEssay
	}
	s.SubmittedEssay = s.EssayDraft
	s.Feedback = ""
	s.LastError = nil
	s.Page = PageFeedback
	return nil
}

// CancelWriting abandons the writing task.
func CancelWriting(s *Session) error {
	if err := requirePage(s, PageWriting); err != nil {
		return err
	}
	ReturnHome(s)
	return nil
}
