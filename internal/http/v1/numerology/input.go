package numerology

import "github.com/pathlet/pathlet-api/internal/http/v1/common"

// CalculateInput is the request body for a numerology calculation.
type CalculateInput struct {
	Body struct {
		_ struct{} `json:"-" additionalProperties:"true"`
		common.BirthFields
	}
}
