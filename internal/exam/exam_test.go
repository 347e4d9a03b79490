package exam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/llm"
	"github.com/abhisek/examtrainer/internal/normalize"
	"github.com/abhisek/examtrainer/internal/prompts"
	"github.com/abhisek/examtrainer/internal/store"
)

// fakeClock is a settable clock for deadline tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

const passageText = "The Formation of Deltas\n\nRivers carry sediment to the sea."

func questionsJSON(n int) string {
	var parts []string
	for i := 0; i < n; i++ {
		parts = append(parts, fmt.Sprintf(
			`{"type":"Inference","question":"Q%d?","options":["a%d","b%d","c%d","d%d"],"correct":%d}`,
			i+1, i, i, i, i, i%4))
	}
	return "Here are the questions:\n[" + strings.Join(parts, ",") + "]"
}

type fixture struct {
	mock    *llm.MockProvider
	clock   *fakeClock
	trainer *Trainer
	session *Session
}

func newFixture(t *testing.T, responses ...llm.MockResponse) *fixture {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	trainer := NewTrainer(
		llm.NewClient(mock),
		prompts.New(prompts.DefaultConfig()),
		WithClock(clock.Now),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	session := NewSession(catalog.NewRotation(rand.New(rand.NewPCG(7, 11))))
	return &fixture{mock: mock, clock: clock, trainer: trainer, session: session}
}

// startReading drives a fixture to the reading page with n questions.
func (f *fixture) startReading(t *testing.T, n int) {
	t.Helper()
	f.mock.AddResponse(llm.MockResponse{Text: passageText})
	f.mock.AddResponse(llm.MockResponse{Text: questionsJSON(n)})
	require.NoError(t, Navigate(f.session, PageReadingSetup))
	require.NoError(t, SetQuestionCount(f.session, n))
	require.NoError(t, f.trainer.StartReadingPractice(context.Background(), f.session))
}

func TestNewSession_Defaults(t *testing.T) {
	s := NewSession(nil)
	assert.Equal(t, PageHome, s.Page)
	assert.Equal(t, prompts.DefaultQuestionTypes, s.QuestionTypes)
	assert.Equal(t, 10, s.QuestionCount)
	assert.NotEmpty(t, s.ID)
	assert.NotNil(t, s.Rotation)
	assert.False(t, s.HasDeadline())
	assert.False(t, s.Expired(time.Now()))
}

func TestNavigate(t *testing.T) {
	s := NewSession(nil)

	require.NoError(t, Navigate(s, PageReadingSetup))
	assert.Equal(t, PageReadingSetup, s.Page)
	require.NoError(t, Navigate(s, PageWritingSetup))
	require.NoError(t, Navigate(s, PageHome))

	err := Navigate(s, PageReading)
	assert.ErrorIs(t, err, ErrWrongPage)
	assert.Equal(t, PageHome, s.Page)

	s.Page = PageReading
	assert.ErrorIs(t, Navigate(s, PageHome), ErrWrongPage, "reading is left through ReturnHome")
}

func TestSelectQuestionTypes(t *testing.T) {
	s := NewSession(nil)
	assert.ErrorIs(t, SelectQuestionTypes(s, []string{"Inference"}), ErrWrongPage)

	require.NoError(t, Navigate(s, PageReadingSetup))
	require.NoError(t, SelectQuestionTypes(s, []string{"reference", "Vocabulary", "Reference"}))
	assert.Equal(t, []string{"Vocabulary", "Reference"}, s.QuestionTypes, "menu order, deduplicated")

	assert.Error(t, SelectQuestionTypes(s, []string{"Essay"}))
	assert.Equal(t, []string{"Vocabulary", "Reference"}, s.QuestionTypes, "unchanged on error")

	require.NoError(t, SelectQuestionTypes(s, nil))
	assert.Empty(t, s.QuestionTypes)
}

func TestSetQuestionCount_Clamps(t *testing.T) {
	s := NewSession(nil)
	require.NoError(t, Navigate(s, PageReadingSetup))

	tests := []struct{ in, want int }{
		{1, 4}, {4, 4}, {9, 9}, {14, 14}, {40, 14},
	}
	for _, tt := range tests {
		require.NoError(t, SetQuestionCount(s, tt.in))
		assert.Equal(t, tt.want, s.QuestionCount, "SetQuestionCount(%d)", tt.in)
	}
}

func TestStartReadingPractice(t *testing.T) {
	f := newFixture(t)
	f.startReading(t, 5)
	s := f.session

	assert.Equal(t, PageReading, s.Page)
	assert.Equal(t, passageText, s.Passage)
	assert.Len(t, s.Questions, 5)
	assert.Len(t, s.Answers, 5)
	for _, a := range s.Answers {
		assert.Nil(t, a)
	}
	assert.Equal(t, f.clock.Now().Add(35*time.Minute), s.Deadline)
	assert.NotEmpty(t, s.Topic)
	assert.True(t, s.Rotation.Reading[s.Topic])
	assert.NoError(t, s.LastError)

	require.Equal(t, 2, f.mock.CallCount())
	passageReq, questionsReq := f.mock.Calls[0], f.mock.Calls[1]
	assert.Contains(t, passageReq.Messages[0].Content, s.Topic)
	assert.Equal(t, 0.8, passageReq.Temperature)
	assert.Contains(t, questionsReq.Messages[0].Content, "Generate 5 TOEFL-style questions")
	assert.Contains(t, questionsReq.Messages[0].Content, "Rivers carry sediment to the sea.")
	assert.Equal(t, 0.3, questionsReq.Temperature)
	assert.Equal(t, 2000, questionsReq.MaxTokens)
}

func TestStartReadingPractice_PartialResultKeepsGoing(t *testing.T) {
	f := newFixture(t, llm.MockResponse{Text: passageText}, llm.MockResponse{Text: questionsJSON(3)})
	require.NoError(t, Navigate(f.session, PageReadingSetup))

	require.NoError(t, f.trainer.StartReadingPractice(context.Background(), f.session))
	assert.Len(t, f.session.Questions, 3)
	assert.Len(t, f.session.Answers, 3)
	require.NotEmpty(t, f.session.Warnings)
	assert.Equal(t, normalize.PartialResult, f.session.Warnings[0].Kind)
}

func TestStartReadingPractice_Failures(t *testing.T) {
	tests := []struct {
		name      string
		responses []llm.MockResponse
		check     func(t *testing.T, err error)
	}{
		{
			name:      "passage service failure",
			responses: []llm.MockResponse{{Err: errors.New("connection refused")}},
			check: func(t *testing.T, err error) {
				assert.True(t, llm.IsKind(err, llm.ServiceFailure), "got %v", err)
			},
		},
		{
			name:      "empty questions response",
			responses: []llm.MockResponse{{Text: passageText}, {Text: "  "}},
			check: func(t *testing.T, err error) {
				assert.True(t, llm.IsKind(err, llm.EmptyResponse), "got %v", err)
			},
		},
		{
			name:      "questions without an array",
			responses: []llm.MockResponse{{Text: passageText}, {Text: "Sorry, I cannot help with that."}},
			check: func(t *testing.T, err error) {
				var ne *normalize.NormalizationError
				require.ErrorAs(t, err, &ne)
				assert.Equal(t, normalize.NoArrayFound, ne.Kind)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.responses...)
			require.NoError(t, Navigate(f.session, PageReadingSetup))

			err := f.trainer.StartReadingPractice(context.Background(), f.session)
			require.Error(t, err)
			tt.check(t, err)

			s := f.session
			assert.Equal(t, PageReadingSetup, s.Page, "no partial transition")
			assert.Equal(t, err, s.LastError)
			assert.Empty(t, s.Passage)
			assert.Nil(t, s.Questions)
			assert.False(t, s.HasDeadline())
		})
	}
}

func TestStartReadingPractice_NoQuestionTypes(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, Navigate(f.session, PageReadingSetup))
	require.NoError(t, SelectQuestionTypes(f.session, nil))

	err := f.trainer.StartReadingPractice(context.Background(), f.session)
	assert.ErrorIs(t, err, ErrNoQuestionTypes)
	assert.Equal(t, 0, f.mock.CallCount())
	assert.Equal(t, PageReadingSetup, f.session.Page)
}

func TestChooseAnswer(t *testing.T) {
	f := newFixture(t)
	f.startReading(t, 5)
	s := f.session
	now := f.clock.Now()

	assert.True(t, ChooseAnswer(s, 0, "b0", now))
	require.NotNil(t, s.Answers[0])
	assert.Equal(t, "b0", *s.Answers[0])
	assert.Nil(t, s.Answers[1], "only one slot changes")

	assert.True(t, ChooseAnswer(s, 0, "c0", now))
	assert.Equal(t, "c0", *s.Answers[0])

	assert.False(t, ChooseAnswer(s, 0, "not an option", now))
	assert.False(t, ChooseAnswer(s, 9, "a0", now))
	assert.False(t, ChooseAnswer(s, -1, "a0", now))
	assert.Equal(t, 1, s.Answered())
}

func TestSubmitAnswers_Score(t *testing.T) {
	f := newFixture(t)
	f.startReading(t, 5)
	s := f.session
	now := f.clock.Now()

	// correct indices are 0,1,2,3,0 -> a0, b1, c2, d3, a4
	ChooseAnswer(s, 0, "a0", now)
	ChooseAnswer(s, 1, "b1", now)
	ChooseAnswer(s, 2, "c2", now)
	ChooseAnswer(s, 3, "a3", now)

	res, err := SubmitAnswers(s)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Score)
	assert.Equal(t, 5, res.Total)
	assert.InDelta(t, 60.0, res.Percent(), 1e-9)
	assert.Equal(t, "3/5 (60.0%)", res.String())

	assert.True(t, res.Verdicts[0].Correct)
	assert.False(t, res.Verdicts[3].Correct)
	assert.Equal(t, "d3", res.Verdicts[3].Expected)
	assert.False(t, res.Verdicts[4].Answered)

	assert.False(t, ChooseAnswer(s, 3, "d3", now), "answers are locked after submission")
	again, err := SubmitAnswers(s)
	require.NoError(t, err)
	assert.Equal(t, 3, again.Score)
}

func TestSubmitAnswers_DuplicateOptionText(t *testing.T) {
	s := NewSession(nil)
	s.Page = PageReading
	s.Questions = []normalize.Question{
		{Type: "Inference", Question: "Q", Options: []string{"same", "x", "same", "y"}, Correct: 2},
	}
	s.Answers = make([]*string, 1)

	require.True(t, ChooseAnswer(s, 0, "same", time.Now()))
	res, err := SubmitAnswers(s)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
}

func TestDeadlineExpiry(t *testing.T) {
	f := newFixture(t)
	f.startReading(t, 5)
	s := f.session

	ChooseAnswer(s, 0, "a0", f.clock.Now())
	f.clock.Advance(35 * time.Minute)

	assert.True(t, s.Expired(f.clock.Now()), "expired exactly at the deadline")
	assert.Equal(t, time.Duration(0), s.Remaining(f.clock.Now()))
	assert.False(t, ChooseAnswer(s, 1, "b1", f.clock.Now()))
	assert.Nil(t, s.Answers[1], "state unchanged after expiry")

	res, err := SubmitAnswers(s)
	require.NoError(t, err, "submission is allowed after expiry")
	assert.Equal(t, 1, res.Score)
}

func TestReturnHome_ClearsReading(t *testing.T) {
	f := newFixture(t)
	f.startReading(t, 4)
	s := f.session
	topic := s.Topic

	ReturnHome(s)
	assert.Equal(t, PageHome, s.Page)
	assert.Empty(t, s.Passage)
	assert.Nil(t, s.Questions)
	assert.Nil(t, s.Answers)
	assert.Nil(t, s.Results)
	assert.False(t, s.HasDeadline())
	assert.True(t, s.Rotation.Reading[topic], "rotation survives returning home")
}

func TestReadingTopicsDoNotRepeat(t *testing.T) {
	f := newFixture(t)
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		f.startReading(t, 4)
		assert.False(t, seen[f.session.Topic], "topic %q repeated", f.session.Topic)
		seen[f.session.Topic] = true
		ReturnHome(f.session)
	}
}

func TestWritingFlow(t *testing.T) {
	f := newFixture(t,
		llm.MockResponse{Text: "# Independent Writing Prompt\nDo you agree?"},
		llm.MockResponse{Text: "Development: 4/5\nOverall: 24/30"},
	)
	s := f.session
	ctx := context.Background()

	require.NoError(t, Navigate(s, PageWritingSetup))
	require.NoError(t, ChooseTaskType(s, Independent))
	require.NoError(t, f.trainer.StartWritingPractice(ctx, s))

	assert.Equal(t, PageWriting, s.Page)
	assert.Equal(t, "Independent Writing Task", s.WritingTitle)
	assert.Equal(t, "# Independent Writing Prompt\nDo you agree?", s.WritingPrompt)
	assert.Equal(t, f.clock.Now().Add(30*time.Minute), s.Deadline)
	assert.True(t, strings.HasPrefix(s.Theme, catalog.IndependentPrefix))
	assert.Contains(t, f.mock.Calls[0].Messages[0].Content, "Base the task on this theme: "+s.Theme)
	assert.Equal(t, 0.7, f.mock.Calls[0].Temperature)

	assert.ErrorIs(t, SubmitEssay(s), ErrEmptyEssay)
	assert.True(t, EditEssay(s, "   ", f.clock.Now()))
	assert.ErrorIs(t, SubmitEssay(s), ErrEmptyEssay, "whitespace-only essays are rejected")
	assert.Equal(t, PageWriting, s.Page)

	assert.True(t, EditEssay(s, "I agree because reasons.", f.clock.Now()))
	require.NoError(t, SubmitEssay(s))
	assert.Equal(t, PageFeedback, s.Page)
	assert.Equal(t, "I agree because reasons.", s.SubmittedEssay)
	assert.Empty(t, s.Feedback)

	require.NoError(t, f.trainer.EnterFeedback(ctx, s))
	assert.Equal(t, "Development: 4/5\nOverall: 24/30", s.Feedback)
	assert.Equal(t, 2, f.mock.CallCount())
	feedbackPrompt := f.mock.LastPrompt()
	assert.Contains(t, feedbackPrompt, "Do you agree?")
	assert.Contains(t, feedbackPrompt, "I agree because reasons.")

	require.NoError(t, f.trainer.EnterFeedback(ctx, s))
	assert.Equal(t, 2, f.mock.CallCount(), "cached feedback is not regenerated")

	ReturnHome(s)
	assert.Equal(t, PageHome, s.Page)
	assert.Empty(t, s.SubmittedEssay)
	assert.Empty(t, s.Feedback)
	assert.Empty(t, s.WritingPrompt)
	assert.Empty(t, s.WritingTitle)
	assert.Empty(t, s.EssayDraft)
	assert.False(t, s.HasDeadline())
}

func TestIntegratedWritingDeadline(t *testing.T) {
	f := newFixture(t, llm.MockResponse{Text: "# Reading Passage\n..."})
	s := f.session
	require.NoError(t, Navigate(s, PageWritingSetup))
	require.NoError(t, ChooseTaskType(s, Integrated))
	require.NoError(t, f.trainer.StartWritingPractice(context.Background(), s))

	assert.Equal(t, "Integrated Writing Task", s.WritingTitle)
	assert.Equal(t, f.clock.Now().Add(20*time.Minute), s.Deadline)
	assert.True(t, strings.HasPrefix(s.Theme, catalog.IntegratedPrefix))
}

func TestWritingExpiry(t *testing.T) {
	f := newFixture(t, llm.MockResponse{Text: "# Independent Writing Prompt\nTopic"})
	s := f.session
	require.NoError(t, Navigate(s, PageWritingSetup))
	require.NoError(t, ChooseTaskType(s, Independent))
	require.NoError(t, f.trainer.StartWritingPractice(context.Background(), s))

	require.True(t, EditEssay(s, "Draft one.", f.clock.Now()))
	f.clock.Advance(31 * time.Minute)

	assert.False(t, EditEssay(s, "Draft two.", f.clock.Now()))
	assert.Equal(t, "Draft one.", s.EssayDraft)
	require.NoError(t, SubmitEssay(s), "submission is allowed after expiry")
	assert.Equal(t, "Draft one.", s.SubmittedEssay)
}

func TestStartWritingPractice_FailureStaysOnSetup(t *testing.T) {
	f := newFixture(t, llm.MockResponse{Text: ""})
	s := f.session
	require.NoError(t, Navigate(s, PageWritingSetup))

	err := f.trainer.StartWritingPractice(context.Background(), s)
	assert.True(t, llm.IsKind(err, llm.EmptyResponse))
	assert.Equal(t, PageWritingSetup, s.Page)
	assert.Equal(t, err, s.LastError)
}

func TestEnterFeedback_FailureThenRetry(t *testing.T) {
	f := newFixture(t,
		llm.MockResponse{Text: "# Independent Writing Prompt\nTopic"},
		llm.MockResponse{Err: errors.New("503")},
		llm.MockResponse{Text: "Overall: 20/30"},
	)
	s := f.session
	ctx := context.Background()
	require.NoError(t, Navigate(s, PageWritingSetup))
	require.NoError(t, f.trainer.StartWritingPractice(ctx, s))
	EditEssay(s, "Essay.", f.clock.Now())
	require.NoError(t, SubmitEssay(s))

	err := f.trainer.EnterFeedback(ctx, s)
	require.Error(t, err)
	assert.Equal(t, PageFeedback, s.Page)
	assert.Empty(t, s.Feedback)
	assert.Equal(t, err, s.LastError)

	require.NoError(t, f.trainer.EnterFeedback(ctx, s))
	assert.Equal(t, "Overall: 20/30", s.Feedback)
	assert.NoError(t, s.LastError)
}

func TestApplyFeedback_DropsStaleReview(t *testing.T) {
	f := newFixture(t)
	s := NewSession(nil)
	s.Page = PageFeedback
	s.SubmittedEssay = "new essay"

	f.trainer.ApplyFeedback(context.Background(), s, FeedbackPlan{Essay: "old essay"}, "review")
	assert.Empty(t, s.Feedback)
}

func TestCancelWriting(t *testing.T) {
	f := newFixture(t, llm.MockResponse{Text: "# Reading Passage\n..."})
	s := f.session
	require.NoError(t, Navigate(s, PageWritingSetup))
	require.NoError(t, f.trainer.StartWritingPractice(context.Background(), s))
	EditEssay(s, "half an essay", f.clock.Now())

	require.NoError(t, CancelWriting(s))
	assert.Equal(t, PageHome, s.Page)
	assert.Empty(t, s.WritingPrompt)
	assert.Empty(t, s.WritingTitle)
	assert.Empty(t, s.EssayDraft)
	assert.False(t, s.HasDeadline())

	assert.ErrorIs(t, CancelWriting(s), ErrWrongPage)
}

func TestWritingThemesStayInSubtype(t *testing.T) {
	f := newFixture(t)
	s := f.session
	ctx := context.Background()
	independent := len(catalog.WritingThemes(false))

	for i := 0; i < independent; i++ {
		f.mock.AddResponse(llm.MockResponse{Text: "prompt"})
		require.NoError(t, Navigate(s, PageWritingSetup))
		require.NoError(t, ChooseTaskType(s, Independent))
		require.NoError(t, f.trainer.StartWritingPractice(ctx, s))
		require.NoError(t, CancelWriting(s))
	}

	f.mock.AddResponse(llm.MockResponse{Text: "prompt"})
	require.NoError(t, Navigate(s, PageWritingSetup))
	require.NoError(t, ChooseTaskType(s, Integrated))
	require.NoError(t, f.trainer.StartWritingPractice(ctx, s))
	assert.True(t, strings.HasPrefix(s.Theme, catalog.IntegratedPrefix))
}

func TestPracticeEventsRecorded(t *testing.T) {
	st, err := store.OpenMemory("exam_practice_events")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	f := newFixture(t)
	f.trainer.events = st.EventRepo()
	f.startReading(t, 4)
	ChooseAnswer(f.session, 0, "a0", f.clock.Now())
	_, err = SubmitAnswers(f.session)
	require.NoError(t, err)
	f.trainer.RecordResults(context.Background(), f.session)

	events, err := st.EventRepo().QueryPracticeEvents(context.Background(), f.session.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, store.ActionStarted, events[0].Action)
	assert.Equal(t, f.session.Topic, events[0].Topic)
	assert.Equal(t, store.ActionSubmitted, events[1].Action)
	assert.Equal(t, 1, events[1].Score)
	assert.Equal(t, 4, events[1].Total)
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{35 * time.Minute, "35:00"},
		{65 * time.Second, "01:05"},
		{500 * time.Millisecond, "00:01"},
		{0, "00:00"},
		{-time.Minute, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRemaining(tt.in), "FormatRemaining(%v)", tt.in)
	}
}
