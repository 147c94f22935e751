package ascendant

import "github.com/pathlet/pathlet-api/internal/http/v1/common"

// ListInput is the request body for the ascendant listing.
type ListInput struct {
	Body struct {
		_ struct{} `json:"-" additionalProperties:"true"`
		common.BirthFields
	}
}
