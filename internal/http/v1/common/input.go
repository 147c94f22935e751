package common

import "github.com/pathlet/pathlet-api/internal/birth"

// BirthFields are the birth details shared by every request body. All fields
// are optional to huma so the birth validator reports the first problem
// with its own error kinds.
type BirthFields struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	BirthDate     string `json:"birth_date,omitempty"     required:"false" maxLength:"64"  doc:"Birth date as YYYY-MM-DD, MM/DD/YYYY or DD-MM-YYYY" example:"1990-05-15"`
	BirthTime     string `json:"birth_time,omitempty"     required:"false" maxLength:"32"  doc:"Birth time as HH:MM AM/PM, HH:MM or HH:MM:SS"   example:"10:30 AM"`
	BirthLocation string `json:"birth_location,omitempty" required:"false" maxLength:"200" doc:"Birth place, free text of at least three characters" example:"New York"`
}

// Payload converts the fields into validator input.
func (f BirthFields) Payload() birth.Payload {
	return birth.Payload{
		BirthDate:     f.BirthDate,
		BirthTime:     f.BirthTime,
		BirthLocation: f.BirthLocation,
	}
}
