package compatibility

import compat "github.com/pathlet/pathlet-api/internal/compatibility"

// PersonInsight is the raw input of one side of the comparison.
type PersonInsight struct {
	Type     string `json:"type"      doc:"Design type" example:"Generator"`
	LifePath int    `json:"life_path" doc:"Life path number" example:"3"`
}

// Insights carries both people's raw inputs.
type Insights struct {
	Person1 PersonInsight `json:"person1"`
	Person2 PersonInsight `json:"person2"`
}

// Result is the wire form of a compatibility result.
type Result struct {
	TypeCompatibility     string   `json:"type_compatibility"      doc:"Label for the design type pair"   example:"High energy compatibility"`
	LifePathCompatibility string   `json:"life_path_compatibility" doc:"Label for the life path pair"     example:"Creative and leadership synergy"`
	InteractionAdvice     string   `json:"interaction_advice"      doc:"General advice for the pair"`
	GrowthPotential       string   `json:"growth_potential"        doc:"Growth outlook for the pair"`
	Insights              Insights `json:"insights"                doc:"Inputs used for the comparison"`
}

// NewResult converts an engine result.
func NewResult(r compat.Result) Result {
	return Result{
		TypeCompatibility:     r.TypeCompatibility,
		LifePathCompatibility: r.LifePathCompatibility,
		InteractionAdvice:     r.InteractionAdvice,
		GrowthPotential:       r.GrowthPotential,
		Insights: Insights{
			Person1: PersonInsight{Type: string(r.Insights.Person1.Type), LifePath: r.Insights.Person1.LifePath},
			Person2: PersonInsight{Type: string(r.Insights.Person2.Type), LifePath: r.Insights.Person2.LifePath},
		},
	}
}
