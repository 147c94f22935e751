package info

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ServiceName is reported by the info endpoint.
const ServiceName = "Pathlet API"

// Register wires the service info route. The endpoint list is collected from
// the operations registered on api at request time, skipping deprecated
// aliases.
func Register(api huma.API, version, narrativeProvider string) {
	huma.Register(api, huma.Operation{
		OperationID: "get-service-info",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Describe the service",
		Tags:        []string{"Info"},
	}, func(_ context.Context, _ *struct{}) (*GetOutput, error) {
		return &GetOutput{Body: Data{
			Service:   ServiceName,
			Status:    "running",
			Version:   version,
			Narrative: narrativeProvider,
			Endpoints: endpoints(api.OpenAPI()),
		}}, nil
	})
}

func endpoints(oapi *huma.OpenAPI) []string {
	var out []string
	for path, item := range oapi.Paths {
		for method, op := range map[string]*huma.Operation{
			http.MethodGet:  item.Get,
			http.MethodPost: item.Post,
		} {
			if op == nil || op.Deprecated || op.Hidden {
				continue
			}
			out = append(out, method+" "+path)
		}
	}
	slices.SortFunc(out, func(a, b string) int {
		if c := strings.Compare(pathOf(a), pathOf(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}

func pathOf(endpoint string) string {
	_, path, _ := strings.Cut(endpoint, " ")
	return path
}
