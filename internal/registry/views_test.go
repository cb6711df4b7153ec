package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

func TestByDateSortsAscending(t *testing.T) {
	reg := New(&fakeGateway{})
	reg.Hydrate([]model.Activity{
		testActivity("a1", "Evening Concert", time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC)),
		testActivity("a2", "Morning Lecture", time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)),
		testActivity("a3", "Earlier Day", time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)),
	})

	sorted := reg.ByDate()

	require.Len(t, sorted, 3)
	assert.Equal(t, "a3", sorted[0].ID)
	assert.Equal(t, "a2", sorted[1].ID)
	assert.Equal(t, "a1", sorted[2].ID)
}

func TestByDateBreaksTiesByID(t *testing.T) {
	reg := New(&fakeGateway{})
	when := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	reg.Hydrate([]model.Activity{
		testActivity("b", "Second", when),
		testActivity("a", "First", when),
	})

	sorted := reg.ByDate()

	require.Len(t, sorted, 2)
	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", sorted[1].ID)
}

func TestGroupedByDateBucketsByCalendarDay(t *testing.T) {
	reg := New(&fakeGateway{})
	reg.Hydrate([]model.Activity{
		testActivity("a1", "Morning Lecture", time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)),
		testActivity("a2", "Evening Concert", time.Date(2024, 3, 12, 18, 0, 0, 0, time.UTC)),
		testActivity("a3", "Earlier Day", time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)),
	})

	groups := reg.GroupedByDate()

	require.Len(t, groups, 2)

	assert.Equal(t, "11 Mar 2024", groups[0].Label)
	require.Len(t, groups[0].Activities, 1)
	assert.Equal(t, "a3", groups[0].Activities[0].ID)

	assert.Equal(t, "12 Mar 2024", groups[1].Label)
	require.Len(t, groups[1].Activities, 2)
	assert.Equal(t, "a1", groups[1].Activities[0].ID)
	assert.Equal(t, "a2", groups[1].Activities[1].ID)
}

func TestGroupedByDateEmptyRegistry(t *testing.T) {
	reg := New(&fakeGateway{})

	assert.Empty(t, reg.GroupedByDate())
}
