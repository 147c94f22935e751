package common

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pathlet/pathlet-api/internal/birth"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

// MapServiceError converts orchestrator errors into huma status errors.
// Validation failures become 400 with the offending body field as location.
func MapServiceError(err error) error {
	location := "body"
	var personErr *reading.PersonError
	if errors.As(err, &personErr) {
		location += "." + string(personErr.Person)
	}

	var verr *birth.ValidationError
	if errors.As(err, &verr) && !errors.Is(err, birth.ErrInternalComputation) {
		return huma.Error400BadRequest("invalid birth details", &huma.ErrorDetail{
			Message:  verr.Reason,
			Location: location + "." + verr.Field,
			Value:    verr.Value,
		})
	}
	return huma.Error500InternalServerError("internal server error")
}
