// Package screentest holds helpers for driving screens in tests.
package screentest

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/catalog"
	"github.com/abhisek/examtrainer/internal/exam"
	"github.com/abhisek/examtrainer/internal/llm"
	"github.com/abhisek/examtrainer/internal/prompts"
)

// Clock is a settable clock.
type Clock struct{ T time.Time }

func (c *Clock) Now() time.Time          { return c.T }
func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Env bundles a session and a trainer backed by a mock provider.
type Env struct {
	Mock    *llm.MockProvider
	Clock   *Clock
	Trainer *exam.Trainer
	Session *exam.Session
}

// NewEnv returns an Env whose provider answers with responses in order.
func NewEnv(t *testing.T, responses ...llm.MockResponse) *Env {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	clock := &Clock{T: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	trainer := exam.NewTrainer(
		llm.NewClient(mock),
		prompts.New(prompts.DefaultConfig()),
		exam.WithClock(clock.Now),
		exam.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	session := exam.NewSession(catalog.NewRotation(rand.New(rand.NewPCG(3, 5))))
	return &Env{Mock: mock, Clock: clock, Trainer: trainer, Session: session}
}

// KeyPress returns a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey returns a non-printable key press such as tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl returns ctrl+r.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Exec runs cmd and returns the messages it produces, flattening batches.
// Only use it on commands that do not sleep.
func Exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Exec(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// Find returns the first message of type T.
func Find[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
