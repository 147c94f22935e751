package compatibility

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/pathlet/pathlet-api/internal/http/v1/common"
	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

// Register wires compatibility routes into the provided API router.
func Register(api huma.API, svc *reading.Service) {
	handler := func(ctx context.Context, input *CompareInput) (*CompareOutput, error) {
		res, err := svc.Compatibility(ctx, input.Body.Person1.Payload(), input.Body.Person2.Payload())
		if err != nil {
			return nil, common.MapServiceError(err)
		}
		applog.LogInfo(ctx, "compatibility compared",
			zap.String("typeCompatibility", res.TypeCompatibility),
			zap.String("lifePathCompatibility", res.LifePathCompatibility),
		)
		return &CompareOutput{Body: NewResult(res)}, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "compare-compatibility",
		Method:      http.MethodPost,
		Path:        "/v1/compatibility",
		Summary:     "Compare two people",
		Description: "Compares the design types and life path numbers of two people. The result does not depend on their order.",
		Tags:        []string{"Compatibility"},
	}, handler)

	huma.Register(api, huma.Operation{
		OperationID: "compare-compatibility-legacy",
		Method:      http.MethodPost,
		Path:        "/calculate_compatibility",
		Summary:     "Compare two people (legacy path)",
		Tags:        []string{"Compatibility"},
		Deprecated:  true,
	}, handler)
}
