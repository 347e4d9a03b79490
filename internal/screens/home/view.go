package home

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examtrainer/internal/ui/components"
	"github.com/abhisek/examtrainer/internal/ui/theme"
)

const banner = `╔╦╗╔═╗╔═╗╔═╗╦    ╔═╗┬─┐┌─┐┌─┐┌┬┐┬┌─┐┌─┐
 ║ ║ ║║╣ ╠╣ ║    ╠═╝├┬┘├─┤│   │ ││  ├┤
 ╩ ╚═╝╚═╝╚  ╩═╝  ╩  ┴└─┴ ┴└─┘ ┴ ┴└─┘└─┘`

const bannerCompact = "T O E F L   P R A C T I C E"

func renderHome(menu components.Menu, errMsg string, width, height int) string {
	cw := components.ContentWidth(width)
	compact := width < 100 || height < 22

	title := banner
	if compact {
		title = bannerCompact
	}

	var sections []string
	sections = append(sections,
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(theme.Title.Render(title)),
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(
			theme.Subtitle.Render("Timed reading and writing tasks with generated material")),
		components.Panel("", menu.View(), cw),
	)
	if errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(errMsg))
	}

	return components.Centered(strings.Join(sections, "\n\n"), width, height)
}
