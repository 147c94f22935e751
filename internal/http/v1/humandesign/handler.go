package humandesign

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/pathlet/pathlet-api/internal/http/v1/common"
	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

// Register wires design type routes into the provided API router.
func Register(api huma.API, svc *reading.Service) {
	handler := func(ctx context.Context, input *CalculateInput) (*CalculateOutput, error) {
		profile, err := svc.Design(ctx, input.Body.Payload())
		if err != nil {
			return nil, common.MapServiceError(err)
		}
		applog.LogInfo(ctx, "design type assigned", zap.String("type", string(profile.Type)))
		return &CalculateOutput{Body: common.NewDesign(profile)}, nil
	}

	huma.Register(api, huma.Operation{
		OperationID: "calculate-human-design",
		Method:      http.MethodPost,
		Path:        "/v1/human-design",
		Summary:     "Assign a design type",
		Description: "Assigns one of five design types from the birth date and returns its strategy and authority.",
		Tags:        []string{"Human Design"},
	}, handler)

	huma.Register(api, huma.Operation{
		OperationID: "calculate-human-design-legacy",
		Method:      http.MethodPost,
		Path:        "/calculate_human_design",
		Summary:     "Assign a design type (legacy path)",
		Tags:        []string{"Human Design"},
		Deprecated:  true,
	}, handler)
}
