package model

import (
	"fmt"
	"time"
)

// Activity categories used by the remote service. The server treats the
// category as an opaque string; these are the values the UI offers.
const (
	CategoryCulture = "culture"
	CategoryDrinks  = "drinks"
	CategoryFilm    = "film"
	CategoryFood    = "food"
	CategoryMusic   = "music"
	CategoryTravel  = "travel"
)

// wireDateLayout is the timezone-naive ISO-8601 layout the service uses
// for activity dates.
const wireDateLayout = "2006-01-02T15:04:05"

// Activity is the in-memory representation of a single event record.
// The identifier is server-visible, client-assigned on create, and
// immutable afterwards.
type Activity struct {
	ID          string
	Title       string
	Date        time.Time
	Description string
	Category    string
	City        string
	Venue       string
	IsCancelled bool

	// IsGoing reports whether the current user attends this activity.
	IsGoing bool
}

// Payload converts the activity to its wire shape, rendering the date
// as a timezone-naive ISO-8601 string.
func (a Activity) Payload() ActivityPayload {
	return ActivityPayload{
		ID:          a.ID,
		Title:       a.Title,
		Date:        a.Date.Format(wireDateLayout),
		Description: a.Description,
		Category:    a.Category,
		City:        a.City,
		Venue:       a.Venue,
		IsCancelled: a.IsCancelled,
		IsGoing:     a.IsGoing,
	}
}

// ActivityPayload is the JSON wire shape exchanged with the remote
// service. The date travels as a string; parsing into time.Time happens
// exactly once, when a payload is committed into the registry.
type ActivityPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	City        string `json:"city"`
	Venue       string `json:"venue"`
	IsCancelled bool   `json:"isCancelled,omitempty"`
	IsGoing     bool   `json:"isGoing,omitempty"`
}

// Activity normalizes the payload into the in-memory type. Dates are
// accepted either timezone-naive or with an offset (some proxies append
// one); the offset form is truncated to wall-clock time.
func (p ActivityPayload) Activity() (Activity, error) {
	date, err := parseWireDate(p.Date)
	if err != nil {
		return Activity{}, fmt.Errorf("activity %s: %w", p.ID, err)
	}

	return Activity{
		ID:          p.ID,
		Title:       p.Title,
		Date:        date,
		Description: p.Description,
		Category:    p.Category,
		City:        p.City,
		Venue:       p.Venue,
		IsCancelled: p.IsCancelled,
		IsGoing:     p.IsGoing,
	}, nil
}

// parseWireDate parses an ISO-8601 date string, trying the naive layout
// first and falling back to RFC 3339. Fractional seconds are tolerated.
func parseWireDate(s string) (time.Time, error) {
	layouts := []string{
		wireDateLayout,
		"2006-01-02T15:04:05.999999999",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			// Drop any offset; the domain is timezone-naive.
			return time.Date(
				t.Year(), t.Month(), t.Day(),
				t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
				time.UTC,
			), nil
		}
	}

	return time.Time{}, fmt.Errorf("parsing activity date %q", s)
}
