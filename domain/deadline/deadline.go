// Package deadline implements the canonical deadline representation shared
// by the chat commands, the web form, and the reminder scheduler.
//
// A deadline is wall-clock time in the owning user's zone. It is stored as a
// fixed-format string with one of two grains: date-only ("2006-01-02") or
// date+time ("2006-01-02 15:04"). The grain is carried explicitly; the fixed
// string lengths (10 and 16) are an invariant of the formats, not the way the
// grain is decided.
package deadline

import (
	"fmt"
	"time"
)

// Grain is the precision of a deadline.
type Grain int

const (
	// GrainDateOnly is a calendar-day deadline.
	GrainDateOnly Grain = iota
	// GrainDateTime is a deadline with a specific time of day.
	GrainDateTime
)

// Canonical storage layouts.
const (
	LayoutDateOnly = "2006-01-02"
	LayoutDateTime = "2006-01-02 15:04"
)

// Display layouts, day-first to match the forms the parser accepts. A
// displayed deadline re-parses to the same calendar date and time of day.
const (
	displayDateOnly = "02-01-2006"
	displayDateTime = "02-01-2006 15:04"
)

// Deadline is a wall-clock deadline with an explicit grain. The zero value
// is not meaningful; construct via NewDateOnly, NewDateTime or Parse.
type Deadline struct {
	grain Grain
	wall  time.Time
}

// NewDateOnly returns a date-only deadline for t's calendar day.
func NewDateOnly(t time.Time) Deadline {
	return Deadline{
		grain: GrainDateOnly,
		wall:  time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// NewDateTime returns a date+time deadline for t's day and minute.
func NewDateTime(t time.Time) Deadline {
	return Deadline{
		grain: GrainDateTime,
		wall:  time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC),
	}
}

// Parse decodes a stored canonical string. The grain is recovered from which
// of the two fixed layouts matches.
func Parse(s string) (Deadline, error) {
	if t, err := time.Parse(LayoutDateTime, s); err == nil {
		return NewDateTime(t), nil
	}
	if t, err := time.Parse(LayoutDateOnly, s); err == nil {
		return NewDateOnly(t), nil
	}
	return Deadline{}, fmt.Errorf("malformed deadline string: %q", s)
}

// Grain returns the deadline's precision.
func (d Deadline) Grain() Grain {
	return d.grain
}

// String returns the canonical storage form.
func (d Deadline) String() string {
	if d.grain == GrainDateTime {
		return d.wall.Format(LayoutDateTime)
	}
	return d.wall.Format(LayoutDateOnly)
}

// Display returns the human form used in replies and on the web page.
func (d Deadline) Display() string {
	if d.grain == GrainDateTime {
		return d.wall.Format(displayDateTime)
	}
	return d.wall.Format(displayDateOnly)
}

// Instant anchors the wall-clock deadline in loc. Date-only deadlines
// resolve to midnight at the start of the day.
func (d Deadline) Instant(loc *time.Location) time.Time {
	return time.Date(d.wall.Year(), d.wall.Month(), d.wall.Day(),
		d.wall.Hour(), d.wall.Minute(), 0, 0, loc)
}
