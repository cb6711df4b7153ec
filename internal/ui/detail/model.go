// Package detail renders a single selected activity.
package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohitkumarofficial/reactivities/internal/registry"
	"github.com/rohitkumarofficial/reactivities/internal/theme"
)

// Model is the activity detail view. It reads the registry's selection
// on every render, so committed updates show up without extra wiring.
type Model struct {
	reg    *registry.Registry
	width  int
	height int
}

// New creates the detail view over the given registry.
func New(reg *registry.Registry, width, height int) Model {
	return Model{reg: reg, width: width, height: height}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update is a no-op; the root model owns the detail view's key handling.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the selected activity, or a hint when nothing is selected.
func (m Model) View() string {
	act, ok := m.reg.Selected()
	if !ok {
		return theme.HelpStyle.Render("\n  nothing selected")
	}

	var b strings.Builder

	title := act.Title
	if act.IsCancelled {
		title = theme.CancelledStyle.Render(title + "  (cancelled)")
	}
	b.WriteString(theme.DayHeadingStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s\n",
		act.Date.Format("Monday, 02 Jan 2006 15:04"),
		theme.CategoryStyle(act.Category).Render(act.Category),
	))
	b.WriteString(fmt.Sprintf("%s, %s\n\n", act.Venue, act.City))

	if act.Description != "" {
		b.WriteString(act.Description)
		b.WriteString("\n\n")
	}

	if act.IsGoing {
		b.WriteString(theme.GoingStyle.Render("you are going"))
	} else {
		b.WriteString(theme.HelpStyle.Render("press a to attend"))
	}

	return theme.DetailPanelStyle.Width(m.width - 4).Render(b.String())
}
