// Package schedule renders the date-grouped activity list.
package schedule

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohitkumarofficial/reactivities/internal/keys"
	"github.com/rohitkumarofficial/reactivities/internal/model"
	"github.com/rohitkumarofficial/reactivities/internal/registry"
	"github.com/rohitkumarofficial/reactivities/internal/theme"
)

// OpenDetailMsg is sent when the user opens an activity's detail view.
type OpenDetailMsg struct {
	ID string
}

// Model is the grouped schedule view.
type Model struct {
	reg     *registry.Registry
	keys    *keys.KeyMap
	spinner spinner.Model
	cursor  int
	width   int
	height  int
	offset  int
}

// New creates the schedule view over the given registry.
func New(reg *registry.Registry, k *keys.KeyMap, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.HelpStyle

	return Model{
		reg:     reg,
		keys:    k,
		spinner: sp,
		width:   width,
		height:  height,
	}
}

// Init starts the loading spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the activity under the cursor.
func (m Model) Selected() (model.Activity, bool) {
	flat := m.reg.ByDate()
	if len(flat) == 0 || m.cursor >= len(flat) {
		return model.Activity{}, false
	}
	return flat[m.cursor], true
}

// Update handles messages for the schedule view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.cursor < m.reg.Len()-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if act, ok := m.Selected(); ok {
				return m, func() tea.Msg {
					return OpenDetailMsg{ID: act.ID}
				}
			}
			return m, nil
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// ClampCursor keeps the cursor inside the list after deletions.
func (m *Model) ClampCursor() {
	if n := m.reg.Len(); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

// View renders the grouped schedule.
func (m Model) View() string {
	groups := m.reg.GroupedByDate()

	if len(groups) == 0 {
		if m.reg.LoadingInitial() {
			return fmt.Sprintf("\n  %s loading activities...", m.spinner.View())
		}
		return theme.HelpStyle.Render("\n  no activities yet. press n to create one")
	}

	var b strings.Builder
	index := 0
	for _, group := range groups {
		b.WriteString(theme.DayHeadingStyle.Render(group.Label))
		b.WriteString("\n")

		for _, act := range group.Activities {
			b.WriteString(m.renderItem(act, index == m.cursor))
			b.WriteString("\n")
			index++
		}
	}

	return b.String()
}

// renderItem renders one schedule row.
func (m Model) renderItem(act model.Activity, selected bool) string {
	title := act.Title
	if act.IsCancelled {
		title = theme.CancelledStyle.Render(title)
	}

	line := fmt.Sprintf(
		"%s  %s %s· %s, %s",
		act.Date.Format("15:04"),
		title,
		theme.CategoryStyle(act.Category).Render(act.Category),
		act.Venue,
		act.City,
	)
	if act.IsGoing {
		line += theme.GoingStyle.Render("  going")
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
