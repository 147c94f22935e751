// Package numerology derives numerology numbers from a validated birth date.
package numerology

import (
	"fmt"

	"github.com/pathlet/pathlet-api/internal/birth"
)

// Profile holds the numbers derived from a birth date together with the
// descriptive text for the life path number.
type Profile struct {
	LifePath     int
	PersonalYear int
	Expression   int
	SoulUrge     int
	KarmicDebt   int
	Description
}

// IsMaster reports whether n is a master number (11, 22 or 33).
func IsMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// Compute derives the numerology profile for p. It fails only for a Profile
// that did not come from birth.Validator.
func Compute(p birth.Profile) (Profile, error) {
	if p.IsZero() {
		return Profile{}, fmt.Errorf("numerology: %w", birth.ErrInternalComputation)
	}

	digits := dateDigits(p.Day(), p.Month(), p.Year())
	total := sum(digits)
	lifePath := Reduce(total)

	return Profile{
		LifePath:     lifePath,
		PersonalYear: mod9(p.Day() + p.Month() + p.Year()),
		Expression:   mod9(total),
		SoulUrge:     mod9(sum(digits[:2])),
		KarmicDebt:   mod9(sum(digits[len(digits)-2:])),
		Description:  Describe(lifePath),
	}, nil
}

// Reduce repeatedly sums the decimal digits of n until it is at most 9,
// stopping early when a master number is reached.
func Reduce(n int) int {
	for n > 9 && !IsMaster(n) {
		n = digitSum(n)
	}
	return n
}

// dateDigits returns the digits of DD, MM and YYYY in that order.
func dateDigits(day, month, year int) []int {
	s := fmt.Sprintf("%02d%02d%04d", day, month, year)
	digits := make([]int, len(s))
	for i := range len(s) {
		digits[i] = int(s[i] - '0')
	}
	return digits
}

func digitSum(n int) int {
	total := 0
	for n > 0 {
		total += n % 10
		n /= 10
	}
	return total
}

func sum(digits []int) int {
	total := 0
	for _, d := range digits {
		total += d
	}
	return total
}

// mod9 maps n onto 1..9; multiples of nine map to 9.
func mod9(n int) int {
	if r := n % 9; r != 0 {
		return r
	}
	return 9
}
