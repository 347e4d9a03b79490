// Package screen defines what the app shell needs from each page of the
// trainer.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/ui/layout"
)

// Screen is one page of the trainer: home, a practice setup form, a
// timed exam section or the essay feedback.
type Screen interface {
	Init() tea.Cmd

	// Update handles a message and returns the screen to keep showing.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the page body. The app draws the header and footer.
	View(width, height int) string

	// Title is shown in the header, e.g. "Reading: Glacial Lakes".
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Generating is implemented by screens that wait on the model. A
// non-empty result names what is being generated; the footer shows it
// in place of the screen's key hints.
type Generating interface {
	Generating() string
}

// Timed is implemented by exam sections that run against the session
// deadline. The header shows the remaining time while Timed is true.
type Timed interface {
	Timed() bool
}
