package compatibility

import "github.com/pathlet/pathlet-api/internal/http/v1/common"

// CompareInput is the request body for a compatibility comparison.
type CompareInput struct {
	Body struct {
		_       struct{}           `json:"-" additionalProperties:"true"`
		Person1 common.BirthFields `json:"person1" required:"false" doc:"Birth details of the first person"`
		Person2 common.BirthFields `json:"person2" required:"false" doc:"Birth details of the second person"`
	}
}
