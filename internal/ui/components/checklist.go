package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examtrainer/internal/ui/theme"
)

// Checklist is a vertical list of toggleable items.
type Checklist struct {
	Items   []string
	Checked []bool
	Cursor  int
	Focused bool
}

// NewChecklist creates a checklist with the given items pre-checked.
func NewChecklist(items, checked []string) Checklist {
	c := Checklist{
		Items:   items,
		Checked: make([]bool, len(items)),
		Focused: true,
	}
	for i, item := range items {
		for _, want := range checked {
			if item == want {
				c.Checked[i] = true
			}
		}
	}
	return c
}

// Update moves the cursor and toggles items with space or x.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !c.Focused {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", "x":
		if c.Cursor < len(c.Checked) {
			c.Checked[c.Cursor] = !c.Checked[c.Cursor]
		}
	}
	return c, nil
}

// Selected returns the checked items in list order.
func (c Checklist) Selected() []string {
	var out []string
	for i, item := range c.Items {
		if c.Checked[i] {
			out = append(out, item)
		}
	}
	return out
}

// View renders the checklist.
func (c Checklist) View() string {
	var b strings.Builder
	for i, item := range c.Items {
		box := "[ ]"
		if c.Checked[i] {
			box = "[x]"
		}
		prefix := "  "
		if c.Focused && i == c.Cursor {
			prefix = "▸ "
		}
		line := prefix + box + " " + item
		if c.Focused && i == c.Cursor {
			b.WriteString(theme.Selected.Render(line))
		} else {
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
