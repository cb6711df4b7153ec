// Package app is the root Bubble Tea model: view routing, key handling,
// and the bridges between the registry, the poller, and the UI.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohitkumarofficial/reactivities/internal/api"
	"github.com/rohitkumarofficial/reactivities/internal/keys"
	"github.com/rohitkumarofficial/reactivities/internal/model"
	"github.com/rohitkumarofficial/reactivities/internal/registry"
	"github.com/rohitkumarofficial/reactivities/internal/session"
	appsync "github.com/rohitkumarofficial/reactivities/internal/sync"
	"github.com/rohitkumarofficial/reactivities/internal/theme"
	"github.com/rohitkumarofficial/reactivities/internal/ui"
	"github.com/rohitkumarofficial/reactivities/internal/ui/detail"
	"github.com/rohitkumarofficial/reactivities/internal/ui/form"
	"github.com/rohitkumarofficial/reactivities/internal/ui/schedule"
)

// opTimeout bounds a single interactive operation, injected delay
// included.
const opTimeout = 30 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewSchedule ViewState = iota
	ViewDetail
	ViewForm
	ViewNotFound
	ViewServerError
	ViewHelp
)

// registryEventMsg wraps a registry commit notification.
type registryEventMsg struct {
	ev registry.Event
}

// opDoneMsg reports completion of an interactive registry operation.
type opDoneMsg struct {
	op  string
	err error
}

// Model is the root Bubble Tea model.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	reg          *registry.Registry
	sess         *session.Session
	poller       *appsync.Poller
	keys         *keys.KeyMap
	nav          *navigator
	events       <-chan registry.Event

	scheduleView schedule.Model
	detailView   detail.Model
	formView     form.Model

	ready     bool
	statusMsg string
}

// New creates the root application model. It installs itself as the
// session's navigator so transport-level 404/500 signals reach the UI.
func New(
	reg *registry.Registry,
	sess *session.Session,
	poller *appsync.Poller,
) Model {
	k := keys.DefaultKeyMap()
	nav := newNavigator()
	sess.SetNavigator(nav)

	return Model{
		currentView:  ViewSchedule,
		reg:          reg,
		sess:         sess,
		poller:       poller,
		keys:         k,
		nav:          nav,
		events:       reg.Subscribe(),
		scheduleView: schedule.New(reg, k, 80, 24),
		detailView:   detail.New(reg, 80, 24),
		formView:     form.New(80, 24),
	}
}

// Init starts the poller and the event/navigation subscriptions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.scheduleView.Init(),
		m.poller.Start(),
		m.waitForEvent(),
		m.waitForNav(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.scheduleView.SetSize(msg.Width, m.layout.ContentHeight())
		m.detailView.SetSize(msg.Width, m.layout.ContentHeight())
		return m.updateActiveView(msg)

	case registryEventMsg:
		if msg.ev.Op == registry.OpRemove {
			m.scheduleView.ClampCursor()
		}
		return m, m.waitForEvent()

	case navMsg:
		m.previousView = m.currentView
		if msg.kind == navNotFound {
			m.currentView = ViewNotFound
		} else {
			m.currentView = ViewServerError
		}
		return m, m.waitForNav()

	case appsync.ResultMsg:
		if msg.Err != nil {
			m.statusMsg = fmt.Sprintf("sync failed: %v", msg.Err)
		} else if msg.Imported > 0 {
			m.statusMsg = fmt.Sprintf("imported %d invitation(s)", msg.Imported)
		} else {
			m.statusMsg = ""
		}
		return m, m.poller.WaitForNextResult()

	case schedule.OpenDetailMsg:
		m.currentView = ViewDetail
		return m, m.loadDetail(msg.ID)

	case form.SubmittedMsg:
		m.currentView = ViewSchedule
		if msg.IsNew {
			return m, m.createActivity(msg.Activity)
		}
		return m, m.updateActivity(msg.Activity)

	case form.CancelMsg:
		m.currentView = ViewSchedule
		m.reg.SetEditMode(false)
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.statusMsg = operationError(msg.op, msg.err)
		} else {
			m.statusMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m.updateActiveView(msg)
}

// handleKeys processes keyboard input for the current view.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The form owns all input while active.
	if m.currentView == ViewForm {
		var cmd tea.Cmd
		m.formView, cmd = m.formView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
		} else {
			m.previousView = m.currentView
			m.currentView = ViewHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		switch m.currentView {
		case ViewDetail:
			m.reg.Deselect()
			m.currentView = ViewSchedule
		case ViewNotFound, ViewServerError, ViewHelp:
			m.currentView = ViewSchedule
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.statusMsg = "refreshing..."
		return m, m.poller.Refresh()

	case key.Matches(msg, m.keys.New):
		if m.currentView == ViewSchedule {
			m.currentView = ViewForm
			return m, m.formView.StartCreate()
		}

	case key.Matches(msg, m.keys.Edit):
		if act, ok := m.currentActivity(); ok {
			m.reg.SetEditMode(true)
			m.currentView = ViewForm
			return m, m.formView.StartEdit(act)
		}

	case key.Matches(msg, m.keys.Delete):
		if act, ok := m.currentActivity(); ok {
			return m, m.deleteActivity(act.ID)
		}

	case key.Matches(msg, m.keys.Attend):
		if act, ok := m.currentActivity(); ok {
			return m, m.attendActivity(act.ID)
		}
	}

	return m.updateActiveView(msg)
}

// currentActivity resolves the activity the action keys apply to: the
// selection in detail view, the cursor row in the schedule.
func (m Model) currentActivity() (model.Activity, bool) {
	if m.currentView == ViewDetail {
		return m.reg.Selected()
	}
	if m.currentView == ViewSchedule {
		return m.scheduleView.Selected()
	}
	return model.Activity{}, false
}

// updateActiveView forwards a message to the active view's Update.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewSchedule:
		m.scheduleView, cmd = m.scheduleView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	}
	return m, cmd
}

// View renders the full frame.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Reactivities", m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSchedule:
		return m.scheduleView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewForm:
		return m.formView.View()
	case ViewNotFound:
		return theme.ErrorStyle.Render("\n  activity not found") +
			theme.HelpStyle.Render("\n\n  esc to go back")
	case ViewServerError:
		return theme.ErrorStyle.Render("\n  server error") +
			"\n\n  " + m.sess.ServerError() +
			theme.HelpStyle.Render("\n\n  esc to go back")
	case ViewHelp:
		return m.helpText()
	default:
		return ""
	}
}

// syncStatus returns a short string describing the background sync.
func (m Model) syncStatus() string {
	if m.reg.Loading() || m.reg.LoadingInitial() {
		return "working..."
	}

	st := m.poller.Status()
	switch st.State {
	case appsync.Running:
		return "syncing..."
	case appsync.Failed:
		return "sync failed"
	default:
		if st.LastSync.IsZero() {
			return ""
		}
		return "synced " + st.LastSync.Format("15:04")
	}
}

// statusLine renders either the transient status message or key hints.
func (m Model) statusLine() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewSchedule:
		return "enter: detail · n: new · e: edit · d: delete · a: attend · r: refresh · ?: help · q: quit"
	case ViewDetail:
		return "e: edit · d: delete · a: attend · esc: back"
	case ViewForm:
		return "esc: cancel"
	default:
		return "esc: back"
	}
}

// helpText renders the full key listing.
func (m Model) helpText() string {
	bindings := []key.Binding{
		m.keys.Up, m.keys.Down, m.keys.Select, m.keys.New, m.keys.Edit,
		m.keys.Delete, m.keys.Attend, m.keys.Refresh, m.keys.Back,
		m.keys.Help, m.keys.Quit,
	}

	var b strings.Builder
	b.WriteString(theme.DayHeadingStyle.Render("Keys"))
	b.WriteString("\n\n")
	for _, binding := range bindings {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
	}
	return b.String()
}

// waitForEvent returns a tea.Cmd that delivers the next registry
// commit notification.
func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return registryEventMsg{ev: ev}
	}
}

// waitForNav returns a tea.Cmd that delivers the next navigation
// signal from the transport pipeline.
func (m Model) waitForNav() tea.Cmd {
	return func() tea.Msg {
		return <-m.nav.ch
	}
}

// loadDetail loads (or short-circuits to) an activity and selects it.
func (m Model) loadDetail(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		_, err := m.reg.Load(ctx, id)
		return opDoneMsg{op: "load", err: err}
	}
}

// createActivity sends a new activity through the registry.
func (m Model) createActivity(act model.Activity) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return opDoneMsg{op: "create", err: m.reg.Create(ctx, act)}
	}
}

// updateActivity sends a replacement through the registry.
func (m Model) updateActivity(act model.Activity) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return opDoneMsg{op: "update", err: m.reg.Update(ctx, act)}
	}
}

// deleteActivity removes an activity through the registry.
func (m Model) deleteActivity(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return opDoneMsg{op: "delete", err: m.reg.Delete(ctx, id)}
	}
}

// attendActivity toggles attendance through the registry.
func (m Model) attendActivity(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		return opDoneMsg{op: "attend", err: m.reg.Attend(ctx, id)}
	}
}

// operationError formats a failed operation for the status bar.
// Validation failures keep their itemized messages.
func operationError(op string, err error) string {
	if apiErr, ok := api.AsError(err); ok && apiErr.Kind == api.KindValidation {
		return fmt.Sprintf("%s rejected: %s",
			op, strings.Join(apiErr.Messages, "; "))
	}
	return fmt.Sprintf("%s failed: %v", op, err)
}
