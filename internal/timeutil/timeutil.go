package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Provider date encodings.
const (
	CompactLayout = "20060102"
	USLayout      = "01/02/2006"
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseDateIn parses a YYYY-MM-DD date string as midday in loc.
func ParseDateIn(value string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	return Midday(t.Year(), t.Month(), t.Day(), loc), nil
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midday builds 12:00 on the given calendar day so day arithmetic never crosses a
// daylight-saving boundary into the wrong date.
func Midday(year int, month time.Month, day int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, day, 12, 0, 0, 0, loc)
}

// MiddayOf returns midday of t's calendar day in t's location.
func MiddayOf(t time.Time) time.Time {
	return Midday(t.Year(), t.Month(), t.Day(), t.Location())
}

// AddDays moves a date by whole calendar days, keeping it at midday.
func AddDays(t time.Time, days int) time.Time {
	m := MiddayOf(t)
	return Midday(m.Year(), m.Month(), m.Day()+days, m.Location())
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc != nil {
		a, b = a.In(loc), b.In(loc)
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
