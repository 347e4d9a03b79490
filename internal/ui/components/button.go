package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// Button runs OnPress when enter is pressed while it has focus. Shortcut,
// when set, is shown next to the label.
type Button struct {
	Label    string
	Shortcut string
	Active   bool
	OnPress  func() tea.Cmd
}

// NewButton creates an unfocused button.
func NewButton(label, shortcut string, onPress func() tea.Cmd) Button {
	return Button{Label: label, Shortcut: shortcut, OnPress: onPress}
}

// Update presses the button on enter.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	if kmsg.String() == "enter" {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	label := "[ " + b.Label + " ]"
	if b.Active {
		label = theme.ButtonActive.Render("▸ " + label)
	} else {
		label = theme.ButtonInactive.Render("  " + label)
	}
	if b.Shortcut != "" {
		label += "  " + theme.Hint.Render(b.Shortcut)
	}
	return label
}
