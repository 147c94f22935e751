// Package birth normalizes raw birth details into a validated Profile.
//
// A Profile can only be obtained from Validator.Validate, so every engine that
// accepts one may assume the date is a real calendar date within the supported
// age range.
package birth

import "time"

// DateLayout is the canonical birth date format used downstream.
const DateLayout = "2006-01-02"

// TimeLayout is the canonical birth time format used downstream.
const TimeLayout = "03:04 PM"

// Payload is the raw, unvalidated input as received from a client.
type Payload struct {
	BirthDate     string
	BirthTime     string
	BirthLocation string
}

// ClockTime is a wall-clock time of day without a date or zone.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// String renders the time in the canonical 12-hour form, e.g. "10:30 AM".
func (c ClockTime) String() string {
	return time.Date(0, time.January, 1, c.Hour, c.Minute, c.Second, 0, time.UTC).Format(TimeLayout)
}

// Profile is a validated birth profile. The zero value is not valid.
type Profile struct {
	date     time.Time
	clock    ClockTime
	hasTime  bool
	location string
}

// IsZero reports whether p was constructed outside of Validate.
func (p Profile) IsZero() bool {
	return p.date.IsZero()
}

// Date returns the birth date at midnight UTC.
func (p Profile) Date() time.Time {
	return p.date
}

// DateString returns the birth date as YYYY-MM-DD.
func (p Profile) DateString() string {
	if p.IsZero() {
		return ""
	}
	return p.date.Format(DateLayout)
}

// Year returns the birth year.
func (p Profile) Year() int { return p.date.Year() }

// Month returns the birth month, 1 through 12.
func (p Profile) Month() int { return int(p.date.Month()) }

// Day returns the day of the birth month.
func (p Profile) Day() int { return p.date.Day() }

// Time returns the birth time and whether one was provided.
func (p Profile) Time() (ClockTime, bool) {
	return p.clock, p.hasTime
}

// TimeString returns the canonical birth time, or "" when unknown.
func (p Profile) TimeString() string {
	if !p.hasTime {
		return ""
	}
	return p.clock.String()
}

// Location returns the trimmed birth location, or "" when not provided.
func (p Profile) Location() string {
	return p.location
}
