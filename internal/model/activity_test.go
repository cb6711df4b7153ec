package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadActivityParsesNaiveDate(t *testing.T) {
	p := ActivityPayload{ID: "a1", Title: "Lecture", Date: "2024-03-11T10:00:00"}

	act, err := p.Activity()

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), act.Date)
}

func TestPayloadActivityTruncatesOffsetToWallClock(t *testing.T) {
	p := ActivityPayload{ID: "a1", Date: "2024-03-11T10:00:00+02:00"}

	act, err := p.Activity()

	require.NoError(t, err)
	// The offset is discarded, not converted.
	assert.Equal(t, time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC), act.Date)
}

func TestPayloadActivityAcceptsFractionalSeconds(t *testing.T) {
	p := ActivityPayload{ID: "a1", Date: "2024-03-11T10:00:00.1234567"}

	act, err := p.Activity()

	require.NoError(t, err)
	assert.Equal(t, 2024, act.Date.Year())
}

func TestPayloadActivityRejectsMalformedDate(t *testing.T) {
	p := ActivityPayload{ID: "a1", Date: "yesterday"}

	_, err := p.Activity()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "a1")
}

func TestActivityPayloadRendersNaiveDate(t *testing.T) {
	act := Activity{
		ID:   "a1",
		Date: time.Date(2024, 3, 11, 10, 30, 0, 0, time.UTC),
	}

	p := act.Payload()

	assert.Equal(t, "2024-03-11T10:30:00", p.Date)
}

func TestActivityRoundTrip(t *testing.T) {
	act := Activity{
		ID:          "a1",
		Title:       "Concert",
		Date:        time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC),
		Description: "doors at six",
		Category:    CategoryMusic,
		City:        "London",
		Venue:       "The Roundhouse",
		IsCancelled: true,
		IsGoing:     true,
	}

	got, err := act.Payload().Activity()

	require.NoError(t, err)
	assert.Equal(t, act, got)
}

func TestActivityPayloadJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(ActivityPayload{
		ID: "a1", Title: "x", Date: "2024-03-11T10:00:00", IsCancelled: true,
	})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Contains(t, fields, "id")
	assert.Contains(t, fields, "isCancelled")
	assert.NotContains(t, fields, "IsCancelled")
}
