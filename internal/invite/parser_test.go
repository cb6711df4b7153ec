package invite

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvitation(t *testing.T) {
	msg := Message{
		Subject: "Invitation: Wine Tasting",
		TextBody: `date: 2024-03-12T18:00
category: Drinks
venue: The Cellar
city: Porto
description: Bring a friend`,
	}

	act, ok := Parse(msg)

	require.True(t, ok)
	assert.Equal(t, "Wine Tasting", act.Title)
	assert.Equal(t, time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC), act.Date)
	assert.Equal(t, "drinks", act.Category)
	assert.Equal(t, "The Cellar", act.Venue)
	assert.Equal(t, "Porto", act.City)
	assert.Equal(t, "Bring a friend", act.Description)

	_, err := uuid.Parse(act.ID)
	assert.NoError(t, err, "draft gets a freshly minted identifier")
}

func TestParseDateValueKeepsItsColons(t *testing.T) {
	msg := Message{
		Subject:  "Invitation: Late Show",
		TextBody: "date: 2024-03-12 23:30",
	}

	act, ok := Parse(msg)

	require.True(t, ok)
	assert.Equal(t, 23, act.Date.Hour())
	assert.Equal(t, 30, act.Date.Minute())
}

func TestParseIgnoresUnknownLines(t *testing.T) {
	msg := Message{
		Subject: "Invitation: Walk",
		TextBody: `Hi there,

date: 2024-05-01T09:00
dress code: casual
see you soon`,
	}

	act, ok := Parse(msg)

	require.True(t, ok)
	assert.Equal(t, "Walk", act.Title)
	assert.Empty(t, act.Category)
}

func TestParseRejectsNonInvitationSubject(t *testing.T) {
	_, ok := Parse(Message{
		Subject:  "Weekly newsletter",
		TextBody: "date: 2024-05-01T09:00",
	})
	assert.False(t, ok)
}

func TestParseRejectsEmptyTitle(t *testing.T) {
	_, ok := Parse(Message{
		Subject:  "Invitation:   ",
		TextBody: "date: 2024-05-01T09:00",
	})
	assert.False(t, ok)
}

func TestParseRejectsMissingDate(t *testing.T) {
	_, ok := Parse(Message{
		Subject:  "Invitation: No Date",
		TextBody: "city: Lisbon",
	})
	assert.False(t, ok)
}

func TestParseRejectsMalformedDate(t *testing.T) {
	_, ok := Parse(Message{
		Subject:  "Invitation: Bad Date",
		TextBody: "date: next tuesday",
	})
	assert.False(t, ok)
}

func TestParseMintsUniqueIdentifiers(t *testing.T) {
	msg := Message{
		Subject:  "Invitation: Twice",
		TextBody: "date: 2024-05-01T09:00",
	}

	first, ok := Parse(msg)
	require.True(t, ok)
	second, ok := Parse(msg)
	require.True(t, ok)

	assert.NotEqual(t, first.ID, second.ID)
}
