// Package form is the create/edit activity form.
package form

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/rohitkumarofficial/reactivities/internal/model"
	"github.com/rohitkumarofficial/reactivities/internal/theme"
)

// dateInputLayout is the format the date field accepts.
const dateInputLayout = "2006-01-02 15:04"

// SubmittedMsg is dispatched when the form completes. IsNew
// distinguishes create from update.
type SubmittedMsg struct {
	Activity model.Activity
	IsNew    bool
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// bindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type bindings struct {
	title       string
	date        string
	category    string
	description string
	city        string
	venue       string
}

// Model is the Bubble Tea model for the activity create/edit form.
type Model struct {
	form     *huh.Form
	fb       *bindings
	editMode bool
	editing  model.Activity
	width    int
	height   int
}

// New creates a new activity form model.
func New(width, height int) Model {
	return Model{
		fb:     &bindings{category: model.CategoryCulture},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for a new activity.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editing = model.Activity{}
	*m.fb = bindings{category: model.CategoryCulture}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing activity's fields.
func (m *Model) StartEdit(act model.Activity) tea.Cmd {
	m.editMode = true
	m.editing = act
	*m.fb = bindings{
		title:       act.Title,
		date:        act.Date.Format(dateInputLayout),
		category:    act.Category,
		description: act.Description,
		city:        act.City,
		venue:       act.Venue,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// buildForm assembles the huh form over the current bindings.
func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.fb.title).
				Validate(required("title")),
			huh.NewInput().
				Title("Date").
				Description("format: 2006-01-02 15:04").
				Value(&m.fb.date).
				Validate(validDate),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("Culture", model.CategoryCulture),
					huh.NewOption("Drinks", model.CategoryDrinks),
					huh.NewOption("Film", model.CategoryFilm),
					huh.NewOption("Food", model.CategoryFood),
					huh.NewOption("Music", model.CategoryMusic),
					huh.NewOption("Travel", model.CategoryTravel),
				).
				Value(&m.fb.category),
			huh.NewText().
				Title("Description").
				Value(&m.fb.description),
			huh.NewInput().
				Title("City").
				Value(&m.fb.city).
				Validate(required("city")),
			huh.NewInput().
				Title("Venue").
				Value(&m.fb.venue).
				Validate(required("venue")),
		),
	).WithWidth(min(m.width-4, 72))
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// handleSubmit converts the bindings into an activity and emits
// SubmittedMsg. New activities get a fresh identifier; edits keep the
// identifier and remote-owned flags of the original.
func (m Model) handleSubmit() tea.Cmd {
	date, _ := time.Parse(dateInputLayout, strings.TrimSpace(m.fb.date))

	act := model.Activity{
		ID:          m.editing.ID,
		Title:       strings.TrimSpace(m.fb.title),
		Date:        date,
		Description: strings.TrimSpace(m.fb.description),
		Category:    m.fb.category,
		City:        strings.TrimSpace(m.fb.city),
		Venue:       strings.TrimSpace(m.fb.venue),
		IsCancelled: m.editing.IsCancelled,
		IsGoing:     m.editing.IsGoing,
	}
	if !m.editMode {
		act.ID = uuid.New().String()
	}

	isNew := !m.editMode
	return func() tea.Msg {
		return SubmittedMsg{Activity: act, IsNew: isNew}
	}
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Activity"
	if m.editMode {
		titleText = "Edit Activity"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return titleStyle.Render(titleText) + "\n" + m.form.View()
}

// required validates that a field is not blank.
func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// validDate validates the date field format.
func validDate(s string) error {
	if _, err := time.Parse(dateInputLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use the format 2006-01-02 15:04")
	}
	return nil
}
