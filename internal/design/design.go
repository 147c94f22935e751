// Package design assigns one of five energy types to a birth date using a
// fixed, deterministic heuristic over the date components.
//
// The assignment is not an astronomical calculation. Identical dates always
// produce identical types, and every valid date produces exactly one.
package design

import "github.com/pathlet/pathlet-api/internal/birth"

// Type is a design type.
type Type string

const (
	Manifestor           Type = "Manifestor"
	Generator            Type = "Generator"
	ManifestingGenerator Type = "Manifesting Generator"
	Projector            Type = "Projector"
	Reflector            Type = "Reflector"
)

// DefaultType is assigned when no predicate matches.
const DefaultType = Projector

var types = []Type{Manifestor, Generator, ManifestingGenerator, Projector, Reflector}

// Types returns every design type in declaration order.
func Types() []Type {
	return append([]Type(nil), types...)
}

// Index returns the position of t in Types, or -1 when t is unknown.
func (t Type) Index() int {
	for i, v := range types {
		if v == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	return t.Index() >= 0
}

// Profile is the attribute row of a design type.
type Profile struct {
	Type         Type
	Strategy     string
	Authority    string
	Signature    string
	NotSelfTheme string
	Description  string
}

// rule pairs a predicate over (year, month, day) with the type it selects.
type rule struct {
	match func(year, month, day int) bool
	typ   Type
}

// rules are evaluated in order; the first match wins.
var rules = []rule{
	{func(_, m, _ int) bool { return m%4 == 0 }, Manifestor},
	{func(_, _, d int) bool { return d%2 == 0 }, Generator},
	{func(y, _, _ int) bool { return y%2 == 0 }, ManifestingGenerator},
	{func(_, m, _ int) bool { return m%3 == 0 }, Projector},
	{func(_, _, d int) bool { return d%7 == 0 }, Reflector},
}

// TypeFor applies the assignment rules to raw date components.
func TypeFor(year, month, day int) Type {
	for _, r := range rules {
		if r.match(year, month, day) {
			return r.typ
		}
	}
	return DefaultType
}

// Assign returns the design profile for a validated birth profile. Only the
// date is consulted.
func Assign(p birth.Profile) Profile {
	return Lookup(TypeFor(p.Year(), p.Month(), p.Day()))
}
