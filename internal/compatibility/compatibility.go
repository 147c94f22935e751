// Package compatibility compares two design and numerology profiles.
package compatibility

import (
	"github.com/pathlet/pathlet-api/internal/design"
	"github.com/pathlet/pathlet-api/internal/numerology"
)

const (
	// NeutralType is reported for type pairs with no matrix entry.
	NeutralType = "Neutral"
	// UniqueLifePath is reported for life path pairs with no matrix entry.
	UniqueLifePath = "Unique and complex relationship dynamic"

	InteractionAdvice = "Practice open communication and respect individual strategies."
	GrowthPotential   = "Opportunities for mutual understanding and personal development"
)

// Person is the raw input of one side of a comparison.
type Person struct {
	Type     design.Type
	LifePath int
}

// Insights echoes both inputs back to the caller.
type Insights struct {
	Person1 Person
	Person2 Person
}

// Result is the outcome of Compare.
type Result struct {
	TypeCompatibility     string
	LifePathCompatibility string
	InteractionAdvice     string
	GrowthPotential       string
	Insights              Insights
}

type typePair struct{ a, b design.Type }

type lifePathPair struct{ a, b int }

// typeMatrix keys are in design.Types order; typeLabel normalises pairs
// before the lookup.
var typeMatrix = map[typePair]string{
	{design.Manifestor, design.Generator}:           "High potential for dynamic collaboration",
	{design.Manifestor, design.Projector}:           "Balanced energy exchange",
	{design.Manifestor, design.Reflector}:           "Requires careful communication",
	{design.Generator, design.Projector}:            "Potential for mutual growth",
	{design.Generator, design.Reflector}:            "Needs patient understanding",
	{design.Generator, design.ManifestingGenerator}: "Shared sacral momentum",
	{design.Projector, design.Reflector}:            "Quiet mutual recognition",
}

// lifePathMatrix keys have the smaller number first.
var lifePathMatrix = map[lifePathPair]string{
	{1, 3}:  "Creative and inspiring partnership",
	{2, 6}:  "Nurturing and supportive relationship",
	{4, 8}:  "Stable and goal-oriented connection",
	{5, 7}:  "Adventurous and intellectual bond",
	{3, 9}:  "Expressive and compassionate union",
	{2, 11}: "Deeply intuitive connection",
	{4, 22}: "Shared drive to build something lasting",
	{6, 33}: "Devoted and caring partnership",
}

// Compare scores two people. The result does not depend on argument order.
func Compare(a, b design.Profile, na, nb numerology.Profile) Result {
	return Result{
		TypeCompatibility:     typeLabel(a.Type, b.Type),
		LifePathCompatibility: lifePathLabel(na.LifePath, nb.LifePath),
		InteractionAdvice:     InteractionAdvice,
		GrowthPotential:       GrowthPotential,
		Insights: Insights{
			Person1: Person{Type: a.Type, LifePath: na.LifePath},
			Person2: Person{Type: b.Type, LifePath: nb.LifePath},
		},
	}
}

func typeLabel(x, y design.Type) string {
	if !x.Valid() || !y.Valid() {
		return NeutralType
	}
	if x.Index() > y.Index() {
		x, y = y, x
	}
	if label, ok := typeMatrix[typePair{x, y}]; ok {
		return label
	}
	return NeutralType
}

func lifePathLabel(x, y int) string {
	if x > y {
		x, y = y, x
	}
	if label, ok := lifePathMatrix[lifePathPair{x, y}]; ok {
		return label
	}
	return UniqueLifePath
}
