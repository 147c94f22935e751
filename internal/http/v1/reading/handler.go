package reading

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pathlet/pathlet-api/internal/http/v1/common"
	"github.com/pathlet/pathlet-api/internal/platform/timeutil"
	readingsvc "github.com/pathlet/pathlet-api/internal/service/reading"
)

// Register wires full reading routes into the provided API router. now
// stamps generated_at; nil means time.Now.
func Register(api huma.API, svc *readingsvc.Service, now func() time.Time) {
	if now == nil {
		now = time.Now
	}

	handler := func(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
		r, err := svc.Reading(ctx, readingsvc.ReadingRequest{
			Payload:           input.Body.Payload(),
			SelectedAscendant: input.Body.SelectedAscendant,
		})
		if err != nil {
			return nil, common.MapServiceError(err)
		}
		return &CreateOutput{Body: toHTTPReading(r, now())}, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "create-reading",
		Method:      http.MethodPost,
		Path:        "/v1/readings",
		Summary:     "Create a full reading",
		Description: "Combines numerology, design type, ascendant estimates and optional narrative guidance. A birth location is required.",
		Tags:        []string{"Readings"},
	}, handler)

	huma.Register(api, huma.Operation{
		OperationID: "create-reading-legacy",
		Method:      http.MethodPost,
		Path:        "/calculate_all",
		Summary:     "Create a full reading (legacy path)",
		Tags:        []string{"Readings"},
		Deprecated:  true,
	}, handler)
}

func toHTTPReading(r *readingsvc.Reading, generatedAt time.Time) Reading {
	return Reading{
		BirthDate:          r.Profile.DateString(),
		BirthTime:          r.Profile.TimeString(),
		BirthLocation:      r.Profile.Location(),
		Numerology:         common.NewNumerology(r.Numerology),
		HumanDesign:        common.NewDesign(r.Design),
		SelectedAscendant:  r.SelectedAscendant,
		EstimatedBirthTime: r.EstimatedBirthTime,
		EstimatedAscendant: r.EstimatedAscendant,
		NarrativeStatus:    string(r.Narrative.Status),
		CareerGuidance:     r.Narrative.CareerGuidance,
		PersonalGrowth:     r.Narrative.PersonalGrowth,
		GeneratedAt:        timeutil.NewTime(generatedAt),
	}
}
