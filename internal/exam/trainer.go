package exam

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/examtrainer/internal/llm"
	"github.com/abhisek/examtrainer/internal/normalize"
	"github.com/abhisek/examtrainer/internal/prompts"
	"github.com/abhisek/examtrainer/internal/store"
)

// Generator is the text-generation boundary. *llm.Client implements it.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Trainer runs the generation side of the state machine. Each generating
// action is split into Plan (validates and consumes a topic), Generate
// (remote calls only, no session access) and Apply (stores the result),
// so a UI can run Generate off its event loop. Start* composes the three.
type Trainer struct {
	gen     Generator
	prompts *prompts.Builder
	events  store.EventRepo
	logger  *slog.Logger
	now     func() time.Time
}

// Option configures a Trainer.
type Option func(*Trainer)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Trainer) { t.now = now }
}

// WithEventRepo records practice events.
func WithEventRepo(repo store.EventRepo) Option {
	return func(t *Trainer) { t.events = repo }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Trainer) { t.logger = logger }
}

// NewTrainer creates a Trainer.
func NewTrainer(gen Generator, builder *prompts.Builder, opts ...Option) *Trainer {
	t := &Trainer{
		gen:     gen,
		prompts: builder,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Now returns the trainer's clock reading.
func (t *Trainer) Now() time.Time {
	return t.now()
}

func (t *Trainer) generate(ctx context.Context, sessionID string, req prompts.Request) (string, error) {
	ctx = llm.WithSessionID(llm.WithPurpose(ctx, string(req.Kind)), sessionID)
	return t.gen.Generate(ctx, req.Text, req.MaxTokens, req.Temperature)
}

func (t *Trainer) record(ctx context.Context, data store.PracticeEventData) {
	if t.events == nil {
		return
	}
	if err := t.events.AppendPracticeEvent(ctx, data); err != nil {
		t.logger.Warn("failed to record practice event", "action", data.Action, "error", err)
	}
}

// ReadingPlan is a validated request for a reading set.
type ReadingPlan struct {
	SessionID string
	Topic     string
	Types     []string
	Count     int
}

// ReadingSet is the generated passage and its normalized questions.
type ReadingSet struct {
	Plan      ReadingPlan
	Passage   string
	Questions []normalize.Question
	Warnings  []normalize.Warning
}

// PlanReading validates the reading setup and selects the next topic.
func (t *Trainer) PlanReading(s *Session) (ReadingPlan, error) {
	if err := requirePage(s, PageReadingSetup); err != nil {
		return ReadingPlan{}, err
	}
	if len(s.QuestionTypes) == 0 {
		return ReadingPlan{}, ErrNoQuestionTypes
	}
	return ReadingPlan{
		SessionID: s.ID,
		Topic:     s.Rotation.NextReadingTopic(),
		Types:     append([]string(nil), s.QuestionTypes...),
		Count:     s.QuestionCount,
	}, nil
}

// GenerateReading produces the passage, then the questions for it.
func (t *Trainer) GenerateReading(ctx context.Context, plan ReadingPlan) (*ReadingSet, error) {
	passage, err := t.generate(ctx, plan.SessionID, t.prompts.Passage(plan.Topic))
	if err != nil {
		return nil, fmt.Errorf("generate passage: %w", err)
	}

	raw, err := t.generate(ctx, plan.SessionID, t.prompts.Questions(passage, plan.Types, plan.Count))
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	res, err := normalize.Questions(raw, plan.Types, plan.Count)
	if err != nil {
		t.logger.Warn("question response rejected", "session", plan.SessionID, "error", err, "raw", raw)
		return nil, fmt.Errorf("read questions: %w", err)
	}
	for _, w := range res.Warnings {
		t.logger.Warn("question response repaired", "session", plan.SessionID, "kind", w.Kind.String(), "detail", w.String())
	}

	return &ReadingSet{
		Plan:      plan,
		Passage:   passage,
		Questions: res.Questions,
		Warnings:  res.Warnings,
	}, nil
}

// ApplyReading stores a reading set, arms the reading deadline and moves
// to the reading page.
func (t *Trainer) ApplyReading(ctx context.Context, s *Session, set *ReadingSet) error {
	if err := requirePage(s, PageReadingSetup); err != nil {
		return err
	}
	s.Topic = set.Plan.Topic
	s.Passage = set.Passage
	s.Questions = set.Questions
	s.Warnings = set.Warnings
	s.Answers = make([]*string, len(set.Questions))
	s.Results = nil
	s.Deadline = t.now().Add(ReadingDuration)
	s.LastError = nil
	s.Page = PageReading

	t.logger.Info("reading practice started", "session", s.ID, "topic", s.Topic, "questions", len(s.Questions))
	t.record(ctx, store.PracticeEventData{
		SessionID: s.ID,
		Action:    store.ActionStarted,
		Section:   "reading",
		Topic:     s.Topic,
		Total:     len(s.Questions),
	})
	return nil
}

// StartReadingPractice generates a reading set and moves to the reading
// page. On failure the session stays on the setup page with LastError set.
func (t *Trainer) StartReadingPractice(ctx context.Context, s *Session) error {
	plan, err := t.PlanReading(s)
	if err != nil {
		s.LastError = err
		return err
	}
	set, err := t.GenerateReading(ctx, plan)
	if err != nil {
		s.LastError = err
		return err
	}
	return t.ApplyReading(ctx, s, set)
}

// RecordResults logs a submitted answer sheet.
func (t *Trainer) RecordResults(ctx context.Context, s *Session) {
	if s.Results == nil {
		return
	}
	t.logger.Info("reading answers submitted", "session", s.ID, "score", s.Results.String())
	t.record(ctx, store.PracticeEventData{
		SessionID: s.ID,
		Action:    store.ActionSubmitted,
		Section:   "reading",
		Topic:     s.Topic,
		Score:     s.Results.Score,
		Total:     s.Results.Total,
	})
}

// WritingPlan is a validated request for a writing task.
type WritingPlan struct {
	SessionID string
	Task      TaskType
	Theme     string
}

// WritingTask is a generated writing task.
type WritingTask struct {
	Plan   WritingPlan
	Title  string
	Prompt string
}

// PlanWriting selects the next theme for the chosen subtype.
func (t *Trainer) PlanWriting(s *Session) (WritingPlan, error) {
	if err := requirePage(s, PageWritingSetup); err != nil {
		return WritingPlan{}, err
	}
	return WritingPlan{
		SessionID: s.ID,
		Task:      s.TaskType,
		Theme:     s.Rotation.NextWritingTheme(s.TaskType == Integrated),
	}, nil
}

// GenerateWriting produces the task text.
func (t *Trainer) GenerateWriting(ctx context.Context, plan WritingPlan) (*WritingTask, error) {
	req := t.prompts.IndependentWriting(plan.Theme)
	if plan.Task == Integrated {
		req = t.prompts.IntegratedWriting(plan.Theme)
	}
	text, err := t.generate(ctx, plan.SessionID, req)
	if err != nil {
		return nil, fmt.Errorf("generate %s writing task: %w", plan.Task, err)
	}
	return &WritingTask{Plan: plan, Title: plan.Task.Title(), Prompt: text}, nil
}

// ApplyWriting stores the task, clears any earlier draft and arms the
// task deadline.
func (t *Trainer) ApplyWriting(ctx context.Context, s *Session, task *WritingTask) error {
	if err := requirePage(s, PageWritingSetup); err != nil {
		return err
	}
	s.clearWriting()
	s.TaskType = task.Plan.Task
	s.Theme = task.Plan.Theme
	s.WritingTitle = task.Title
	s.WritingPrompt = task.Prompt
	s.Deadline = t.now().Add(task.Plan.Task.Duration())
	s.LastError = nil
	s.Page = PageWriting

	t.logger.Info("writing practice started", "session", s.ID, "task", task.Plan.Task.String(), "theme", s.Theme)
	t.record(ctx, store.PracticeEventData{
		SessionID: s.ID,
		Action:    store.ActionStarted,
		Section:   task.Plan.Task.String(),
		Topic:     s.Theme,
	})
	return nil
}

// StartWritingPractice generates a writing task and moves to the writing
// page. On failure the session stays on the setup page with LastError set.
func (t *Trainer) StartWritingPractice(ctx context.Context, s *Session) error {
	plan, err := t.PlanWriting(s)
	if err != nil {
		s.LastError = err
		return err
	}
	task, err := t.GenerateWriting(ctx, plan)
	if err != nil {
		s.LastError = err
		return err
	}
	return t.ApplyWriting(ctx, s, task)
}

// FeedbackPlan is a request to review one submitted essay.
type FeedbackPlan struct {
	SessionID string
	Task      TaskType
	Prompt    string
	Essay     string
}

// PlanFeedback reports whether feedback still has to be generated for
// the submitted essay. It returns false when the feedback is cached.
func (t *Trainer) PlanFeedback(s *Session) (FeedbackPlan, bool, error) {
	if err := requirePage(s, PageFeedback); err != nil {
		return FeedbackPlan{}, false, err
	}
	if s.Feedback != "" {
		return FeedbackPlan{}, false, nil
	}
	return FeedbackPlan{
		SessionID: s.ID,
		Task:      s.TaskType,
		Prompt:    s.WritingPrompt,
		Essay:     s.SubmittedEssay,
	}, true, nil
}

// GenerateFeedback produces the review text.
func (t *Trainer) GenerateFeedback(ctx context.Context, plan FeedbackPlan) (string, error) {
	text, err := t.generate(ctx, plan.SessionID, t.prompts.Feedback(plan.Prompt, plan.Essay))
	if err != nil {
		return "", fmt.Errorf("generate feedback: %w", err)
	}
	return text, nil
}

// ApplyFeedback caches the review. A review for an essay that is no
// longer the submitted one is dropped.
func (t *Trainer) ApplyFeedback(ctx context.Context, s *Session, plan FeedbackPlan, text string) {
	if s.Page != PageFeedback || s.SubmittedEssay != plan.Essay || s.Feedback != "" {
		return
	}
	s.Feedback = text
	s.LastError = nil

	t.logger.Info("essay feedback ready", "session", s.ID, "task", plan.Task.String())
	t.record(ctx, store.PracticeEventData{
		SessionID: s.ID,
		Action:    store.ActionFeedback,
		Section:   plan.Task.String(),
		Topic:     s.Theme,
	})
}

// EnterFeedback is the feedback page's entry action: it generates and
// caches feedback unless a review of the current submission exists. On
// failure the session stays on the feedback page with LastError set, and
// calling EnterFeedback again retries.
func (t *Trainer) EnterFeedback(ctx context.Context, s *Session) error {
	plan, needed, err := t.PlanFeedback(s)
	if err != nil || !needed {
		return err
	}
	text, err := t.GenerateFeedback(ctx, plan)
	if err != nil {
		s.LastError = err
		return err
	}
	t.ApplyFeedback(ctx, s, plan, text)
	return nil
}
