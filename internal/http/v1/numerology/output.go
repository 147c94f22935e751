package numerology

import "github.com/pathlet/pathlet-api/internal/http/v1/common"

// CalculateOutput is the response for a numerology calculation.
type CalculateOutput struct {
	Body common.Numerology
}
