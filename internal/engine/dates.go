package engine

import (
	"strings"
	"time"

	"marsa/pkg/errors"
	"marsa/pkg/model"
	"marsa/pkg/sanitizer"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// dayLayouts are tried in order for explicit dates. Layouts without a
// year resolve to the next occurrence from now.
var dayLayouts = []string{
	model.DateLayout,
	"02/01/2006",
	"January 2 2006",
	"2 January 2006",
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
}

// ParseDate turns free-form guest input into a canonical calendar day.
// Accepted forms: "today", "tomorrow", weekday names (next occurrence
// strictly after today), ISO dates and a few natural spellings, with
// Arabic digits and Arabic date terms normalized first. Days in the past
// are rejected.
func ParseDate(input string, now time.Time) (string, error) {
	s := sanitizer.TrimAndNormalize(input)
	s = sanitizer.NormalizeDigits(s)
	s = sanitizer.NormalizeDateTerm(s)
	s = strings.ToLower(s)
	if s == "" {
		return "", errors.InvalidInput("empty date")
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch s {
	case "today":
		return today.Format(model.DateLayout), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format(model.DateLayout), nil
	}

	// A bare weekday name means the NEXT such day, never today.
	if wd, ok := weekdays[s]; ok {
		days := (int(wd) - int(today.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return today.AddDate(0, 0, days).Format(model.DateLayout), nil
	}

	for _, layout := range dayLayouts {
		t, err := time.ParseInLocation(layout, titleWords(s), now.Location())
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = time.Date(today.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
			if t.Before(today) {
				t = t.AddDate(1, 0, 0)
			}
		}
		if t.Before(today) {
			return "", errors.InvalidInput("date is in the past")
		}
		return t.Format(model.DateLayout), nil
	}

	return "", errors.InvalidInput("unrecognized date")
}

// titleWords restores month-name capitalization after the lowercase
// normalization so time.Parse month layouts match.
func titleWords(s string) string {
	parts := strings.Fields(s)
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// timeslotLayout matches the fixed departure labels, e.g. "8:00 AM".
const timeslotLayout = "3:04 PM"

// SlotStart resolves a canonical date plus a departure label to a wall
// clock instant in the canonical timezone.
func SlotStart(date, timeslot string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(model.DateLayout, date, loc)
	if err != nil {
		return time.Time{}, errors.InvalidInput("bad date").WithDetails(map[string]any{"date": date})
	}
	tod, err := time.ParseInLocation(timeslotLayout, timeslot, loc)
	if err != nil {
		return time.Time{}, errors.InvalidInput("bad timeslot").WithDetails(map[string]any{"timeslot": timeslot})
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, loc), nil
}
