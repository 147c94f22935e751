package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// StatusHealthy is reported while the process is serving.
const StatusHealthy = "healthy"

// Response is the payload for the health endpoint.
type Response struct {
	Status string `json:"status" doc:"Service health" example:"healthy"`
}

// GetOutput is the documented health response.
type GetOutput struct {
	Body Response
}

// Handler is a plain HTTP handler for the health check endpoint. It bypasses
// huma so load balancers get a response even if content negotiation breaks.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{Status: StatusHealthy})
}

// Register adds the documented health operation to api.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Report service health",
		Tags:        []string{"Health"},
	}, func(context.Context, *struct{}) (*GetOutput, error) {
		return &GetOutput{Body: Response{Status: StatusHealthy}}, nil
	})
}
