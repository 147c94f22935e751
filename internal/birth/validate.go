package birth

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxAgeYears is the oldest implied age accepted for a birth date.
	MaxAgeYears = 120
	// MinLocationLength is the minimum rune count of a trimmed location.
	MinLocationLength = 3
)

// LocationPolicy declares whether an endpoint requires a birth location.
type LocationPolicy int

const (
	LocationOptional LocationPolicy = iota
	LocationRequired
)

// Accepted date layouts, tried in order: YYYY-MM-DD, MM/DD/YYYY, DD-MM-YYYY.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02-01-2006",
}

var (
	twelveHourLayouts = []string{"3:04 PM", "3:04PM"}
	dayHourLayouts    = []string{"15:04", "15:04:05"}
)

// Validator turns a Payload into a Profile.
type Validator struct {
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used for the age bound.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator creates a Validator that uses time.Now unless overridden.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks date, time and location in that order and returns the first
// failure as a *ValidationError. No partially populated Profile is returned.
func (v *Validator) Validate(p Payload, policy LocationPolicy) (Profile, error) {
	date, err := v.parseDate(p.BirthDate)
	if err != nil {
		return Profile{}, err
	}

	clock, hasTime, err := parseTime(p.BirthTime)
	if err != nil {
		return Profile{}, err
	}

	location, err := parseLocation(p.BirthLocation, policy)
	if err != nil {
		return Profile{}, err
	}

	return Profile{
		date:     date,
		clock:    clock,
		hasTime:  hasTime,
		location: location,
	}, nil
}

func (v *Validator) parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, newValidationError(FieldBirthDate, KindMissingField, raw, "birth date is required")
	}

	var (
		date   time.Time
		parsed bool
	)
	for _, layout := range dateLayouts {
		d, err := time.Parse(layout, value)
		if err == nil {
			date = d
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, newValidationError(FieldBirthDate, KindMalformedDate, raw,
			"birth date must be a real calendar date in YYYY-MM-DD, MM/DD/YYYY or DD-MM-YYYY format")
	}

	age := ageAt(date, v.now())
	if age < 0 {
		return time.Time{}, newValidationError(FieldBirthDate, KindMalformedDate, raw, "birth date is in the future")
	}
	if age > MaxAgeYears {
		return time.Time{}, newValidationError(FieldBirthDate, KindMalformedDate, raw,
			"birth date implies an age above 120 years")
	}
	return date, nil
}

// ageAt returns the number of completed years between birth and now.
func ageAt(birth, now time.Time) int {
	ny, nm, nd := now.Date()
	by, bm, bd := birth.Date()
	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return age
}

func parseTime(raw string) (ClockTime, bool, error) {
	value := strings.Join(strings.Fields(raw), " ")
	if value == "" {
		return ClockTime{}, false, nil
	}
	upper := strings.ToUpper(value)

	if strings.HasSuffix(upper, "AM") || strings.HasSuffix(upper, "PM") {
		// time.Parse accepts hour 0 with a meridiem; a 12-hour clock does not.
		if !strings.HasPrefix(upper, "0:") && !strings.HasPrefix(upper, "00:") {
			for _, layout := range twelveHourLayouts {
				if t, err := time.Parse(layout, upper); err == nil {
					return clockFrom(t), true, nil
				}
			}
		}
	} else {
		for _, layout := range dayHourLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return clockFrom(t), true, nil
			}
		}
	}

	return ClockTime{}, false, newValidationError(FieldBirthTime, KindMalformedTime, raw,
		"birth time must use HH:MM AM/PM, HH:MM or HH:MM:SS")
}

func clockFrom(t time.Time) ClockTime {
	return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func parseLocation(raw string, policy LocationPolicy) (string, error) {
	value := strings.TrimSpace(raw)
	if utf8.RuneCountInString(value) >= MinLocationLength {
		return value, nil
	}
	if policy != LocationRequired {
		return "", nil
	}
	if value == "" {
		return "", newValidationError(FieldBirthLocation, KindMissingField, raw, "birth location is required")
	}
	return "", newValidationError(FieldBirthLocation, KindMalformedLocation, raw,
		"birth location must be at least 3 characters")
}
