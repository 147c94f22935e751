package ascendant

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pathlet/pathlet-api/internal/http/v1/common"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

// Register wires ascendant routes into the provided API router.
func Register(api huma.API, svc *reading.Service) {
	handler := func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		res, err := svc.Ascendants(ctx, input.Body.Payload())
		if err != nil {
			return nil, common.MapServiceError(err)
		}
		return &ListOutput{Body: toHTTPListing(res)}, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-ascendants",
		Method:      http.MethodPost,
		Path:        "/v1/ascendants",
		Summary:     "List ascendant signs",
		Description: "Returns the twelve ascendant signs with their approximate local time windows. A birth location is required.",
		Tags:        []string{"Ascendants"},
	}, handler)

	huma.Register(api, huma.Operation{
		OperationID: "list-ascendants-legacy",
		Method:      http.MethodPost,
		Path:        "/get_ascendants",
		Summary:     "List ascendant signs (legacy path)",
		Tags:        []string{"Ascendants"},
		Deprecated:  true,
	}, handler)
}

func toHTTPListing(a *reading.Ascendants) Listing {
	signs := make([]Sign, 0, len(a.Signs))
	for _, s := range a.Signs {
		signs = append(signs, Sign{Sign: s.Name, TimeRange: s.TimeRange})
	}
	return Listing{
		BirthDate:       a.Profile.DateString(),
		BirthLocation:   a.Profile.Location(),
		Ascendants:      signs,
		Instructions:    a.Instructions,
		NarrativeStatus: string(a.NarrativeStatus),
		Narrative:       a.Narrative,
	}
}
