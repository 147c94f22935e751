package reading

import "github.com/pathlet/pathlet-api/internal/http/v1/common"

// CreateInput is the request body for a full reading.
type CreateInput struct {
	Body struct {
		_ struct{} `json:"-" additionalProperties:"true"`
		common.BirthFields
		SelectedAscendant string `json:"selected_ascendant,omitempty" required:"false" maxLength:"32" doc:"Ascendant sign chosen from the ascendant listing" example:"Leo"`
	}
}
