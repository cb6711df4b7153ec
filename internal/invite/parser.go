package invite

import (
	"bufio"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rohitkumarofficial/reactivities/internal/model"
)

// subjectPrefix marks a mail as an activity invitation.
const subjectPrefix = "Invitation:"

// dateLayouts are the formats accepted for the date line of an
// invitation body.
var dateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Parse extracts a draft activity from an invitation mail. The subject
// must read "Invitation: <title>"; the body supplies the remaining
// fields as "key: value" lines (date, category, venue, city,
// description). It reports false when the mail is not an invitation or
// the date line is missing or malformed. A fresh identifier is minted
// for the draft.
func Parse(msg Message) (model.Activity, bool) {
	subject := strings.TrimSpace(msg.Subject)
	if !strings.HasPrefix(subject, subjectPrefix) {
		return model.Activity{}, false
	}

	title := strings.TrimSpace(strings.TrimPrefix(subject, subjectPrefix))
	if title == "" {
		return model.Activity{}, false
	}

	act := model.Activity{
		ID:    uuid.New().String(),
		Title: title,
	}

	var haveDate bool
	scanner := bufio.NewScanner(strings.NewReader(msg.TextBody))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "date":
			date, ok := parseInviteDate(value)
			if !ok {
				return model.Activity{}, false
			}
			act.Date = date
			haveDate = true
		case "category":
			act.Category = strings.ToLower(value)
		case "venue":
			act.Venue = value
		case "city":
			act.City = value
		case "description":
			act.Description = value
		}
	}

	if !haveDate {
		return model.Activity{}, false
	}

	return act, true
}

// parseInviteDate tries each accepted layout in order.
func parseInviteDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
