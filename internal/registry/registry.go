// Package registry holds the client-side source of truth for activity
// records: an identifier-keyed cache that mediates every CRUD operation
// against the remote service and publishes a notification whenever a
// mutation commits.
//
// Mutations are never optimistic. Create, update, and delete touch the
// cache only after the remote call succeeds, so a failed call leaves
// the cache exactly as it was.
package registry

import (
	"context"
	"sync"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

// Gateway is the remote surface the registry coordinates with. It is
// satisfied by *api.Client; tests substitute fakes.
type Gateway interface {
	ListActivities(ctx context.Context) ([]model.ActivityPayload, error)
	ActivityDetails(ctx context.Context, id string) (*model.ActivityPayload, error)
	CreateActivity(ctx context.Context, payload model.ActivityPayload) error
	UpdateActivity(ctx context.Context, payload model.ActivityPayload) error
	DeleteActivity(ctx context.Context, id string) error
	Attend(ctx context.Context, id string) error
}

// Op identifies the kind of committed change carried by an Event.
type Op int

const (
	// OpSync is a bulk load or hydration.
	OpSync Op = iota

	// OpUpsert is a single-entry insert or replace.
	OpUpsert

	// OpRemove is a single-entry removal.
	OpRemove

	// OpSelect is a selection or edit-mode change.
	OpSelect
)

// Event is published to subscribers after a commit.
type Event struct {
	Op Op

	// ID is set for single-entry operations.
	ID string
}

// Registry is the in-memory activity cache and its mutation API.
// All methods are safe for concurrent use; commits are serialized
// under the internal lock so no partial write is ever observable.
type Registry struct {
	gw Gateway

	mu             sync.Mutex
	activities     map[string]model.Activity
	selected       *model.Activity
	editMode       bool
	loading        bool
	loadingInitial bool
	subs           []chan Event
}

// New creates an empty registry backed by the given gateway.
func New(gw Gateway) *Registry {
	return &Registry{
		gw:         gw,
		activities: make(map[string]model.Activity),
	}
}

// LoadAll fetches the full collection and upserts every returned
// activity, normalizing wire dates. On failure the cache is untouched
// and the error is surfaced to the caller.
func (r *Registry) LoadAll(ctx context.Context) error {
	r.setLoadingInitial(true)
	defer r.setLoadingInitial(false)

	payloads, err := r.gw.ListActivities(ctx)
	if err != nil {
		return err
	}

	// Normalize everything before committing so a malformed record
	// cannot leave a half-applied batch behind.
	activities := make([]model.Activity, 0, len(payloads))
	for _, p := range payloads {
		act, err := p.Activity()
		if err != nil {
			return err
		}
		activities = append(activities, act)
	}

	r.mu.Lock()
	for _, act := range activities {
		r.activities[act.ID] = act
	}
	r.mu.Unlock()

	r.publish(Event{Op: OpSync})
	return nil
}

// Load returns the activity with the given identifier, selecting it.
// A cached entry short-circuits without a network call; the registry is
// authoritative once populated and never re-validates against the
// server on read.
func (r *Registry) Load(ctx context.Context, id string) (model.Activity, error) {
	r.mu.Lock()
	if act, ok := r.activities[id]; ok {
		selected := act
		r.selected = &selected
		r.mu.Unlock()

		r.publish(Event{Op: OpSelect, ID: id})
		return act, nil
	}
	r.mu.Unlock()

	r.setLoadingInitial(true)
	defer r.setLoadingInitial(false)

	payload, err := r.gw.ActivityDetails(ctx, id)
	if err != nil {
		// Selection stays as it was.
		return model.Activity{}, err
	}

	act, err := payload.Activity()
	if err != nil {
		return model.Activity{}, err
	}

	r.mu.Lock()
	r.activities[act.ID] = act
	selected := act
	r.selected = &selected
	r.mu.Unlock()

	r.publish(Event{Op: OpUpsert, ID: act.ID})
	return act, nil
}

// Create sends a fully-formed activity (identifier included) to the
// service and inserts it into the cache once the call succeeds.
func (r *Registry) Create(ctx context.Context, act model.Activity) error {
	r.setLoading(true)
	defer r.setLoading(false)

	if err := r.gw.CreateActivity(ctx, act.Payload()); err != nil {
		return err
	}

	r.mu.Lock()
	r.activities[act.ID] = act
	r.mu.Unlock()

	r.publish(Event{Op: OpUpsert, ID: act.ID})
	return nil
}

// Update replaces an existing entry wholesale after the service accepts
// the change. Edit mode is cleared on both success and failure; on
// failure the stale entry remains as last known-good state.
func (r *Registry) Update(ctx context.Context, act model.Activity) error {
	r.setLoading(true)
	defer func() {
		r.setLoading(false)
		r.SetEditMode(false)
	}()

	if err := r.gw.UpdateActivity(ctx, act.Payload()); err != nil {
		return err
	}

	r.mu.Lock()
	r.activities[act.ID] = act
	if r.selected != nil && r.selected.ID == act.ID {
		selected := act
		r.selected = &selected
	}
	r.mu.Unlock()

	r.publish(Event{Op: OpUpsert, ID: act.ID})
	return nil
}

// Delete removes the identifier from the cache once the service
// confirms the deletion. If the deleted activity was selected, the
// selection is cleared. On failure the entry remains cached.
func (r *Registry) Delete(ctx context.Context, id string) error {
	r.setLoading(true)
	defer r.setLoading(false)

	if err := r.gw.DeleteActivity(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.activities, id)
	if r.selected != nil && r.selected.ID == id {
		r.selected = nil
	}
	r.mu.Unlock()

	r.publish(Event{Op: OpRemove, ID: id})
	return nil
}

// Attend toggles the current user's attendance. The remote call returns
// no body, so the cached copy's flag is flipped locally after success.
func (r *Registry) Attend(ctx context.Context, id string) error {
	r.setLoading(true)
	defer r.setLoading(false)

	if err := r.gw.Attend(ctx, id); err != nil {
		return err
	}

	r.mu.Lock()
	act, cached := r.activities[id]
	if cached {
		act.IsGoing = !act.IsGoing
		r.activities[id] = act
		if r.selected != nil && r.selected.ID == id {
			selected := act
			r.selected = &selected
		}
	}
	r.mu.Unlock()

	// Nothing committed for an uncached id, so nothing to announce.
	if cached {
		r.publish(Event{Op: OpUpsert, ID: id})
	}
	return nil
}

// Hydrate seeds the cache from a persisted snapshot without touching
// the network. Used at startup before the first sync.
func (r *Registry) Hydrate(activities []model.Activity) {
	r.mu.Lock()
	for _, act := range activities {
		r.activities[act.ID] = act
	}
	r.mu.Unlock()

	r.publish(Event{Op: OpSync})
}

// Get returns a copy of the cached activity for id.
func (r *Registry) Get(id string) (model.Activity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	act, ok := r.activities[id]
	return act, ok
}

// All returns a copy of every cached activity in unspecified order.
// Callers needing order use ByDate or GroupedByDate.
func (r *Registry) All() []model.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Activity, 0, len(r.activities))
	for _, act := range r.activities {
		out = append(out, act)
	}
	return out
}

// Len returns the number of cached activities.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.activities)
}

// Selected returns a copy of the selected activity, if any.
func (r *Registry) Selected() (model.Activity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.selected == nil {
		return model.Activity{}, false
	}
	return *r.selected, true
}

// Select marks the cached activity with the given identifier as
// selected. It reports false when the identifier is not cached.
func (r *Registry) Select(id string) bool {
	r.mu.Lock()
	act, ok := r.activities[id]
	if ok {
		selected := act
		r.selected = &selected
	}
	r.mu.Unlock()

	if ok {
		r.publish(Event{Op: OpSelect, ID: id})
	}
	return ok
}

// Deselect clears the selection.
func (r *Registry) Deselect() {
	r.mu.Lock()
	r.selected = nil
	r.mu.Unlock()

	r.publish(Event{Op: OpSelect})
}

// EditMode reports whether the UI is editing the selected activity.
func (r *Registry) EditMode() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.editMode
}

// SetEditMode toggles the edit-mode flag.
func (r *Registry) SetEditMode(on bool) {
	r.mu.Lock()
	changed := r.editMode != on
	r.editMode = on
	r.mu.Unlock()

	if changed {
		r.publish(Event{Op: OpSelect})
	}
}

// Loading reports whether a mutating operation is in flight.
func (r *Registry) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// LoadingInitial reports whether a bulk or detail fetch is in flight.
func (r *Registry) LoadingInitial() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadingInitial
}

func (r *Registry) setLoading(on bool) {
	r.mu.Lock()
	r.loading = on
	r.mu.Unlock()
}

func (r *Registry) setLoadingInitial(on bool) {
	r.mu.Lock()
	r.loadingInitial = on
	r.mu.Unlock()
}

// Subscribe registers a listener for commit events. The channel is
// buffered; events are dropped rather than blocking a slow consumer.
func (r *Registry) Subscribe() <-chan Event {
	ch := make(chan Event, 16)

	r.mu.Lock()
	r.subs = append(r.subs, ch)
	r.mu.Unlock()

	return ch
}

// Unsubscribe removes a previously subscribed channel. The channel is
// left open for the garbage collector; closing it here could race a
// concurrent publish.
func (r *Registry) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subs {
		if sub == ch {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

// publish fans an event out to all subscribers without blocking. Sends
// happen under the lock so an unsubscribed channel never receives.
func (r *Registry) publish(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sub := range r.subs {
		select {
		case sub <- ev:
		default:
			// Drop if the subscriber is not keeping up.
		}
	}
}
