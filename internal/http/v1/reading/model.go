package reading

import (
	"github.com/pathlet/pathlet-api/internal/http/v1/common"
	"github.com/pathlet/pathlet-api/internal/platform/timeutil"
)

// Reading is the wire form of a full reading.
type Reading struct {
	BirthDate          string            `json:"birth_date"                     doc:"Normalized birth date"              example:"1990-05-15"`
	BirthTime          string            `json:"birth_time,omitempty"           doc:"Normalized birth time"              example:"10:30 AM"`
	BirthLocation      string            `json:"birth_location"                 doc:"Trimmed birth location"             example:"New York"`
	Numerology         common.Numerology `json:"numerology"                     doc:"Numerology profile"`
	HumanDesign        common.Design     `json:"human_design"                   doc:"Design type profile"`
	SelectedAscendant  string            `json:"selected_ascendant,omitempty"   doc:"Canonical name of the selected sign" example:"Leo"`
	EstimatedBirthTime string            `json:"estimated_birth_time,omitempty" doc:"Time range implied by the selected ascendant" example:"12:00 PM - 02:00 PM"`
	EstimatedAscendant string            `json:"estimated_ascendant,omitempty"  doc:"Sign whose window contains the birth time" example:"Cancer"`
	NarrativeStatus    string            `json:"narrative_status"               doc:"Whether narrative texts were generated" enum:"available,unavailable,disabled"`
	CareerGuidance     string            `json:"career_guidance,omitempty"      doc:"Generated career guidance"`
	PersonalGrowth     string            `json:"personal_growth,omitempty"      doc:"Generated personal growth advice"`
	GeneratedAt        timeutil.Time     `json:"generated_at"                   doc:"Time the reading was produced"`
}
