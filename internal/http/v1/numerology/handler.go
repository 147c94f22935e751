package numerology

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/pathlet/pathlet-api/internal/http/v1/common"
	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

// Register wires numerology routes into the provided API router.
func Register(api huma.API, svc *reading.Service) {
	handler := func(ctx context.Context, input *CalculateInput) (*CalculateOutput, error) {
		profile, err := svc.Numerology(ctx, input.Body.Payload())
		if err != nil {
			return nil, common.MapServiceError(err)
		}
		applog.LogInfo(ctx, "numerology calculated", zap.Int("lifePath", profile.LifePath))
		return &CalculateOutput{Body: common.NewNumerology(profile)}, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "calculate-numerology",
		Method:      http.MethodPost,
		Path:        "/v1/numerology",
		Summary:     "Calculate a numerology profile",
		Description: "Returns life path, personal year, expression, soul urge and karmic debt numbers for a birth date.",
		Tags:        []string{"Numerology"},
	}, handler)

	huma.Register(api, huma.Operation{
		OperationID: "calculate-numerology-legacy",
		Method:      http.MethodPost,
		Path:        "/calculate_numerology",
		Summary:     "Calculate a numerology profile (legacy path)",
		Tags:        []string{"Numerology"},
		Deprecated:  true,
	}, handler)
}
