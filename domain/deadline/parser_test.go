package deadline

import (
	"testing"
	"time"
)

func TestParseFlexible(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	// Thursday 2025-04-10, 10:00 local time.
	now := time.Date(2025, time.April, 10, 10, 0, 0, 0, loc)

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"today date only", "today", "2025-04-10", true},
		{"today with time", "today 18:00", "2025-04-10 18:00", true},
		{"today with bad time falls back to date", "today 25:99", "2025-04-10", true},
		{"tomorrow date only", "tomorrow", "2025-04-11", true},
		{"tomorrow with time", "tomorrow 07:30", "2025-04-11 07:30", true},
		{"full date with time", "22-04-2025 18:00", "2025-04-22 18:00", true},
		{"full date", "22-04-2025", "2025-04-22", true},
		{"day-month with time", "22-04 18:00", "2025-04-22 18:00", true},
		{"day-month", "22-04", "2025-04-22", true},
		{"past day-month rolls to next year", "01-01", "2026-01-01", true},
		{"same-day day-month stays this year", "10-04", "2025-04-10", true},
		{"end of year stays this year", "31-12", "2025-12-31", true},
		{"case and whitespace insensitive", "  TOMORROW 08:15 ", "2025-04-11 08:15", true},
		{"unrecognized text", "next week", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexible(tt.text, loc, now)
			if ok != tt.ok {
				t.Fatalf("ParseFlexible(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.String() != tt.want {
				t.Errorf("ParseFlexible(%q) = %q, want %q", tt.text, got.String(), tt.want)
			}
		})
	}
}

func TestParseFlexibleUsesZoneForToday(t *testing.T) {
	// 23:30 UTC on April 10 is already April 11 in UTC+2; "today" must
	// resolve in the caller's zone, not in the clock's.
	loc := time.FixedZone("UTC+2", 2*3600)
	now := time.Date(2025, time.April, 10, 23, 30, 0, 0, time.UTC)

	d, ok := ParseFlexible("today", loc, now)
	if !ok {
		t.Fatal("ParseFlexible(today) not ok")
	}
	if got := d.String(); got != "2025-04-11" {
		t.Errorf("today in UTC+2 = %q, want %q", got, "2025-04-11")
	}
}

func TestParseFlexibleDeterministic(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2025, time.June, 1, 9, 0, 0, 0, loc)

	first, ok1 := ParseFlexible("tomorrow 12:00", loc, now)
	second, ok2 := ParseFlexible("tomorrow 12:00", loc, now)
	if !ok1 || !ok2 {
		t.Fatal("expected both parses to succeed")
	}
	if first.String() != second.String() {
		t.Errorf("same input, same now produced %q and %q", first.String(), second.String())
	}
}

// The canonical string has exactly two shapes: 10 characters for date-only,
// 16 for date+time.
func TestCanonicalStringLengths(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, time.April, 10, 10, 0, 0, 0, loc)

	inputs := []string{
		"today", "today 18:00", "tomorrow", "tomorrow 00:01",
		"22-04-2025 18:00", "22-04-2025", "22-04 18:00", "22-04",
		"01-01", "31-12 23:59",
	}
	for _, text := range inputs {
		d, ok := ParseFlexible(text, loc, now)
		if !ok {
			t.Fatalf("ParseFlexible(%q) not ok", text)
		}
		s := d.String()
		switch d.Grain() {
		case GrainDateOnly:
			if len(s) != 10 {
				t.Errorf("%q: date-only canonical %q has length %d, want 10", text, s, len(s))
			}
		case GrainDateTime:
			if len(s) != 16 {
				t.Errorf("%q: date+time canonical %q has length %d, want 16", text, s, len(s))
			}
		}
	}
}

// Display output must re-parse to the same calendar date and time of day.
func TestDisplayRoundTrip(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, time.April, 10, 10, 0, 0, 0, loc)

	inputs := []string{"today 18:00", "tomorrow", "22-04-2025 18:00", "31-12"}
	for _, text := range inputs {
		d, ok := ParseFlexible(text, loc, now)
		if !ok {
			t.Fatalf("ParseFlexible(%q) not ok", text)
		}
		back, ok := ParseFlexible(d.Display(), loc, now)
		if !ok {
			t.Fatalf("display form %q did not re-parse", d.Display())
		}
		if back.String() != d.String() {
			t.Errorf("%q: round trip %q -> %q, want %q", text, d.Display(), back.String(), d.String())
		}
	}
}
