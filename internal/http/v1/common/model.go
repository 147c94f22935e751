package common

import (
	"github.com/pathlet/pathlet-api/internal/design"
	"github.com/pathlet/pathlet-api/internal/numerology"
)

// Numerology is the wire form of a numerology profile.
type Numerology struct {
	LifePathNumber   int      `json:"life_path_number"   doc:"Life path number, 1-9 or master 11, 22, 33" example:"3"`
	PersonalYear     int      `json:"personal_year"      doc:"Personal year number, 1-9"                  example:"3"`
	ExpressionNumber int      `json:"expression_number"  doc:"Expression number, 1-9"                     example:"3"`
	SoulUrgeNumber   int      `json:"soul_urge_number"   doc:"Soul urge number, 1-9"                      example:"6"`
	KarmicDebtNumber int      `json:"karmic_debt_number" doc:"Karmic debt number, 1-9"                    example:"9"`
	Description      string   `json:"description"        doc:"Summary of the life path"`
	Challenges       []string `json:"challenges"         doc:"Typical challenges of the life path"`
	PotentialCareers []string `json:"potential_careers"  doc:"Careers that suit the life path"`
}

// NewNumerology converts an engine result.
func NewNumerology(p numerology.Profile) Numerology {
	return Numerology{
		LifePathNumber:   p.LifePath,
		PersonalYear:     p.PersonalYear,
		ExpressionNumber: p.Expression,
		SoulUrgeNumber:   p.SoulUrge,
		KarmicDebtNumber: p.KarmicDebt,
		Description:      p.Summary,
		Challenges:       nonNil(p.Challenges),
		PotentialCareers: nonNil(p.PotentialCareers),
	}
}

// Design is the wire form of a design profile.
type Design struct {
	Type         string `json:"type"           doc:"Design type" example:"Manifesting Generator" enum:"Manifestor,Generator,Manifesting Generator,Projector,Reflector"`
	Strategy     string `json:"strategy"       doc:"Decision strategy"`
	Authority    string `json:"authority"      doc:"Inner authority"`
	Signature    string `json:"signature"      doc:"Feeling when aligned"`
	NotSelfTheme string `json:"not_self_theme" doc:"Feeling when misaligned"`
	Description  string `json:"description"    doc:"Short description of the type"`
}

// NewDesign converts an engine result.
func NewDesign(p design.Profile) Design {
	return Design{
		Type:         string(p.Type),
		Strategy:     p.Strategy,
		Authority:    p.Authority,
		Signature:    p.Signature,
		NotSelfTheme: p.NotSelfTheme,
		Description:  p.Description,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
