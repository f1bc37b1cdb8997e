package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Weekdays is the fixed scheduling vocabulary, Monday through Friday.
// Stored day names must come from this list.
var Weekdays = []string{"Måndag", "Tisdag", "Onsdag", "Torsdag", "Fredag"}

// IsWeekday reports whether name is part of the scheduling vocabulary.
func IsWeekday(name string) bool {
	for _, d := range Weekdays {
		if d == name {
			return true
		}
	}
	return false
}

// NewID returns a fresh globally unique record identifier.
func NewID() string {
	return uuid.NewString()
}

// WeekKey derives the canonical schedule key for the ISO week containing t,
// e.g. "2024-W09". Uses the ISO year, so year-boundary weeks key correctly.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// DateKey derives the canonical attendance key for the day containing t,
// e.g. "2024-03-04".
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClockTime formats t as the "HH:MM" strings stored on schedule and
// attendance records.
func ClockTime(t time.Time) string {
	return t.Format("15:04")
}

// DayName returns the vocabulary name for t's weekday, or "" on weekends.
func DayName(t time.Time) string {
	wd := t.Weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return ""
	}
	return Weekdays[int(wd)-1]
}
