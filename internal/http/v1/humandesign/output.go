package humandesign

import "github.com/pathlet/pathlet-api/internal/http/v1/common"

// CalculateOutput is the response for a design type calculation.
type CalculateOutput struct {
	Body common.Design
}
