package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkumarofficial/reactivities/internal/model"
	"github.com/rohitkumarofficial/reactivities/internal/registry"
)

type stubGateway struct {
	payloads []model.ActivityPayload
	listErr  error
}

func (g *stubGateway) ListActivities(ctx context.Context) ([]model.ActivityPayload, error) {
	return g.payloads, g.listErr
}

func (g *stubGateway) ActivityDetails(ctx context.Context, id string) (*model.ActivityPayload, error) {
	return nil, errors.New("not implemented")
}

func (g *stubGateway) CreateActivity(ctx context.Context, payload model.ActivityPayload) error {
	return nil
}

func (g *stubGateway) UpdateActivity(ctx context.Context, payload model.ActivityPayload) error {
	return nil
}

func (g *stubGateway) DeleteActivity(ctx context.Context, id string) error { return nil }
func (g *stubGateway) Attend(ctx context.Context, id string) error         { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPollerInitialPassDeliversResult(t *testing.T) {
	gw := &stubGateway{payloads: []model.ActivityPayload{
		{ID: "a1", Title: "Lecture", Date: "2024-03-11T10:00:00"},
	}}
	reg := registry.New(gw)
	p := New(reg, nil, time.Hour, discardLogger())

	cmd := p.Start()
	require.NotNil(t, cmd)
	t.Cleanup(p.Stop)

	msg := cmd()
	result, ok := msg.(ResultMsg)
	require.True(t, ok, "expected ResultMsg, got %T", msg)
	assert.NoError(t, result.Err)
	assert.Equal(t, 1, result.Activities)
	assert.Equal(t, 1, reg.Len())
}

func TestPollerReportsFailure(t *testing.T) {
	gw := &stubGateway{listErr: errors.New("connection refused")}
	reg := registry.New(gw)
	p := New(reg, nil, time.Hour, discardLogger())

	cmd := p.Start()
	t.Cleanup(p.Stop)

	result, ok := cmd().(ResultMsg)
	require.True(t, ok)
	assert.Error(t, result.Err)

	status := p.Status()
	assert.Equal(t, Failed, status.State)
	assert.Error(t, status.Err)
}

func TestPollerRefreshTriggersAnotherPass(t *testing.T) {
	gw := &stubGateway{}
	reg := registry.New(gw)
	p := New(reg, nil, time.Hour, discardLogger())

	first := p.Start()
	t.Cleanup(p.Stop)
	_, ok := first().(ResultMsg)
	require.True(t, ok)

	p.Refresh()

	second := p.WaitForNextResult()
	resultCh := make(chan ResultMsg, 1)
	go func() {
		if msg, ok := second().(ResultMsg); ok {
			resultCh <- msg
		}
	}()

	select {
	case result := <-resultCh:
		assert.NoError(t, result.Err)
	case <-time.After(5 * time.Second):
		t.Fatal("no result after explicit refresh")
	}
}

func TestPollerStartIsIdempotent(t *testing.T) {
	gw := &stubGateway{}
	p := New(registry.New(gw), nil, time.Hour, discardLogger())

	first := p.Start()
	require.NotNil(t, first)
	t.Cleanup(p.Stop)

	assert.Nil(t, p.Start(), "second Start must not spawn another loop")
}
