package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // LLM events only; empty matches all
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls by purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by served model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Practice actions recorded for a session.
const (
	ActionStarted   = "started"
	ActionSubmitted = "submitted"
	ActionFeedback  = "feedback"
)

// PracticeEventData records one step of an exam session.
type PracticeEventData struct {
	SessionID string
	Action    string
	Section   string // "reading", "integrated", "independent"
	Topic     string
	Score     int
	Total     int
}

// PracticeEvent is a stored practice event.
type PracticeEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	PracticeEventData
}

// EventRepo provides append and query access to diagnostic events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendPracticeEvent records an exam session step.
	AppendPracticeEvent(ctx context.Context, data PracticeEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage per served model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// QueryPracticeEvents returns the events of one session in order.
	QueryPracticeEvents(ctx context.Context, sessionID string) ([]PracticeEvent, error)
}
