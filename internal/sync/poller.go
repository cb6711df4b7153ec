// Package sync drives background refresh of the activity registry and
// bridges completion results into the Bubble Tea runtime.
package sync

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rohitkumarofficial/reactivities/internal/invite"
	"github.com/rohitkumarofficial/reactivities/internal/registry"
)

// State represents the current state of the background sync.
type State int

const (
	Idle State = iota
	Running
	Failed
)

// Status holds the sync state and the outcome of the last pass.
type Status struct {
	State    State
	LastSync time.Time
	Err      error
}

// ResultMsg is a tea.Msg sent when a sync pass completes.
type ResultMsg struct {
	Activities int
	Imported   int
	Err        error
}

// refreshTimeout is the maximum time allowed for a single sync pass.
const refreshTimeout = 60 * time.Second

// Poller periodically reloads the registry from the remote service and,
// when configured, imports mailbox invitations.
type Poller struct {
	reg      *registry.Registry
	importer *invite.Importer
	interval time.Duration
	log      *slog.Logger

	resultCh  chan ResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}

	mu      gosync.Mutex
	status  Status
	running bool
}

// New creates a poller for the given registry. The importer may be nil
// when mail import is disabled.
func New(
	reg *registry.Registry,
	importer *invite.Importer,
	interval time.Duration,
	log *slog.Logger,
) *Poller {
	if interval <= 0 {
		interval = 120 * time.Second
	}
	return &Poller{
		reg:       reg,
		importer:  importer,
		interval:  interval,
		log:       log,
		resultCh:  make(chan ResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the polling goroutine and returns a subscription
// command that delivers ResultMsg messages to the program.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the polling goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate sync pass.
func (p *Poller) Refresh() tea.Cmd {
	select {
	case p.triggerCh <- struct{}{}:
	default:
	}
	return nil
}

// Status returns the current sync status.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// loop runs the periodic sync until Stop is called.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Initial pass immediately.
	p.refresh()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.refresh()
		case <-p.triggerCh:
			p.refresh()
		}
	}
}

// refresh performs a single sync pass and reports the outcome on the
// result channel.
func (p *Poller) refresh() {
	p.setStatus(Running, nil)

	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := p.reg.LoadAll(ctx); err != nil {
		p.log.Warn("sync failed", "error", err)
		p.setStatus(Failed, err)
		p.sendResult(ResultMsg{Err: err})
		return
	}

	imported := 0
	if p.importer != nil {
		n, err := p.importer.Run(ctx)
		if err != nil {
			// Mail import failing does not fail the sync pass.
			p.log.Warn("invite import failed", "error", err)
		}
		imported = n
	}

	p.setStatus(Idle, nil)
	p.sendResult(ResultMsg{
		Activities: p.reg.Len(),
		Imported:   imported,
	})
}

// setStatus updates the sync status.
func (p *Poller) setStatus(state State, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Err = err
	if state == Idle && err == nil {
		p.status.LastSync = time.Now()
	}
}

// sendResult sends a ResultMsg without blocking the polling goroutine.
func (p *Poller) sendResult(msg ResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
	}
}

// waitForResult returns a tea.Cmd that delivers the next sync result.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next sync
// result. Call after processing a ResultMsg to keep listening.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
