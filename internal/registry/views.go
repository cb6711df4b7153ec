package registry

import (
	"sort"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

// dayLabelLayout formats the calendar-day bucket keys, e.g. "12 Mar 2024".
const dayLabelLayout = "02 Jan 2006"

// DayGroup is one calendar-day bucket of the grouped view.
type DayGroup struct {
	// Label is the formatted day, e.g. "12 Mar 2024".
	Label string

	// Activities are the day's entries in ascending time order.
	Activities []model.Activity
}

// ByDate returns all cached activities ordered ascending by date.
// Ties are broken by identifier so the view is stable across calls.
func (r *Registry) ByDate() []model.Activity {
	activities := r.All()

	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Date.Equal(activities[j].Date) {
			return activities[i].ID < activities[j].ID
		}
		return activities[i].Date.Before(activities[j].Date)
	})

	return activities
}

// GroupedByDate partitions the date-sorted view into calendar-day
// buckets, preserving ascending day order and, within a day, the
// ascending time order of ByDate.
func (r *Registry) GroupedByDate() []DayGroup {
	var groups []DayGroup

	for _, act := range r.ByDate() {
		label := act.Date.Format(dayLabelLayout)
		if len(groups) == 0 || groups[len(groups)-1].Label != label {
			groups = append(groups, DayGroup{Label: label})
		}
		last := len(groups) - 1
		groups[last].Activities = append(groups[last].Activities, act)
	}

	return groups
}
