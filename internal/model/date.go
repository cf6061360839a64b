package model

import "time"

// dateLayouts are the formats the backend has been seen to emit.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
}

// Date is a backend date field that may arrive in several formats or not at
// all. Parsing happens once, at the API boundary; downstream code checks
// Valid instead of re-parsing.
type Date struct {
	Time  time.Time
	Raw   string
	Valid bool
}

// ParseDate parses a raw backend date string. An empty or unparseable value
// yields an invalid Date carrying the raw string.
func ParseDate(raw string) Date {
	if raw == "" {
		return Date{Raw: raw}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Date{Time: t, Raw: raw, Valid: true}
		}
	}
	return Date{Raw: raw}
}

// DateOf wraps a known-good time.Time as a valid Date.
func DateOf(t time.Time) Date {
	return Date{Time: t, Raw: t.Format("2006-01-02"), Valid: true}
}

// Before reports whether d is strictly before the given time.
// Invalid dates are never before anything.
func (d Date) Before(t time.Time) bool {
	return d.Valid && d.Time.Before(t)
}

// After reports whether d is strictly after the given time.
func (d Date) After(t time.Time) bool {
	return d.Valid && d.Time.After(t)
}
