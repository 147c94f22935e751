// Package ascendant maps rising signs to the two-hour local time window in
// which each sign is approximately on the horizon.
package ascendant

import "strings"

// UnknownRange is returned by Lookup for signs that are not in the table.
const UnknownRange = "Unknown Time Range"

// Sign is one row of the ascendant table.
type Sign struct {
	Name      string
	TimeRange string
}

var signs = []Sign{
	{"Aries", "04:00 AM - 06:00 AM"},
	{"Taurus", "06:00 AM - 08:00 AM"},
	{"Gemini", "08:00 AM - 10:00 AM"},
	{"Cancer", "10:00 AM - 12:00 PM"},
	{"Leo", "12:00 PM - 02:00 PM"},
	{"Virgo", "02:00 PM - 04:00 PM"},
	{"Libra", "04:00 PM - 06:00 PM"},
	{"Scorpio", "06:00 PM - 08:00 PM"},
	{"Sagittarius", "08:00 PM - 10:00 PM"},
	{"Capricorn", "10:00 PM - 12:00 AM"},
	{"Aquarius", "12:00 AM - 02:00 AM"},
	{"Pisces", "02:00 AM - 04:00 AM"},
}

// Signs returns the full table in zodiac order.
func Signs() []Sign {
	return append([]Sign(nil), signs...)
}

// Find returns the table row for a sign name, ignoring case and surrounding
// whitespace.
func Find(name string) (Sign, bool) {
	name = strings.TrimSpace(name)
	for _, s := range signs {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Sign{}, false
}

// Lookup returns the time range for a sign name, or UnknownRange.
func Lookup(name string) (string, bool) {
	if s, ok := Find(name); ok {
		return s.TimeRange, true
	}
	return UnknownRange, false
}

// ForHour returns the sign whose window contains the given hour (0-23).
func ForHour(hour int) Sign {
	hour = ((hour % 24) + 24) % 24
	// Aries starts at 04:00; each window spans two hours.
	return signs[((hour-4+24)%24)/2]
}
