package deadline

import (
	"strings"
	"time"
)

// absoluteForms are the explicit date layouts, tried in order. Day-first,
// year optional, time optional.
var absoluteForms = []struct {
	layout  string
	grain   Grain
	hasYear bool
}{
	{"02-01-2006 15:04", GrainDateTime, true},
	{"02-01-2006", GrainDateOnly, true},
	{"02-01 15:04", GrainDateTime, false},
	{"02-01", GrainDateOnly, false},
}

// ParseFlexible turns free-form deadline text into a Deadline. Recognized
// forms, in precedence order: "today [HH:MM]", "tomorrow [HH:MM]",
// "DD-MM-YYYY HH:MM", "DD-MM-YYYY", "DD-MM HH:MM", "DD-MM".
//
// now is the reference instant; it is shifted into loc before any calendar
// arithmetic, so "today" means today in the caller's zone. Year-less forms
// default to the current year and roll forward to the next year when the
// resulting calendar date is already past.
//
// Returns ok=false when no form matches; callers treat that as "no
// deadline", not an error.
func ParseFlexible(text string, loc *time.Location, now time.Time) (Deadline, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return Deadline{}, false
	}
	local := now.In(loc)

	if rest, ok := strings.CutPrefix(text, "today"); ok {
		return relativeDay(local, 0, strings.TrimSpace(rest)), true
	}
	if rest, ok := strings.CutPrefix(text, "tomorrow"); ok {
		return relativeDay(local, 1, strings.TrimSpace(rest)), true
	}

	for _, form := range absoluteForms {
		t, err := time.Parse(form.layout, text)
		if err != nil {
			continue
		}
		if !form.hasYear {
			t = withYear(t, local)
		}
		if form.grain == GrainDateTime {
			return NewDateTime(t), true
		}
		return NewDateOnly(t), true
	}

	return Deadline{}, false
}

// relativeDay resolves "today"/"tomorrow" with an optional HH:MM suffix. A
// suffix that fails to parse as 24-hour HH:MM degrades to date-only rather
// than rejecting the whole input.
func relativeDay(local time.Time, days int, timePart string) Deadline {
	day := local.AddDate(0, 0, days)
	if timePart != "" {
		if t, err := time.Parse("15:04", timePart); err == nil {
			return NewDateTime(time.Date(day.Year(), day.Month(), day.Day(),
				t.Hour(), t.Minute(), 0, 0, time.UTC))
		}
	}
	return NewDateOnly(day)
}

// withYear assigns local's year to a year-less parse result, rolling to the
// next year when the date (ignoring time of day) already lies behind local.
// This keeps "31-12" typed in January pointing at the coming December.
func withYear(t time.Time, local time.Time) time.Time {
	year := local.Year()
	candidate := time.Date(year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	today := time.Date(year, local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	if candidate.Before(today) {
		candidate = candidate.AddDate(1, 0, 0)
	}
	return candidate
}
