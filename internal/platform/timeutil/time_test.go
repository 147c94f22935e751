package timeutil

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
)

func TestTimeMarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    Time
		expected string
	}{
		{
			name:     "zero milliseconds",
			input:    NewTime(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)),
			expected: `"2024-01-15T10:30:00.000Z"`,
		},
		{
			name:     "nanoseconds truncated to millis",
			input:    NewTime(time.Date(2024, 1, 15, 10, 30, 0, 123456789, time.UTC)),
			expected: `"2024-01-15T10:30:00.123Z"`,
		},
		{
			name:     "non-UTC timezone converted",
			input:    NewTime(time.Date(2024, 1, 15, 12, 30, 0, 0, time.FixedZone("CET", 2*60*60))),
			expected: `"2024-01-15T10:30:00.000Z"`,
		},
		{
			name:     "zero value",
			input:    Time{},
			expected: `"0001-01-01T00:00:00.000Z"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(data) != tt.expected {
				t.Fatalf("expected %s, got %s", tt.expected, string(data))
			}
		})
	}
}

func TestTimeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Time
	}{
		{`"2024-01-15T10:30:00Z"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{`"2024-01-15T10:30:00.123Z"`, time.Date(2024, 1, 15, 10, 30, 0, 123000000, time.UTC)},
		{`"2024-01-15T12:30:00+02:00"`, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		var result Time
		if err := json.Unmarshal([]byte(tt.input), &result); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.input, err)
		}
		if !result.UTC().Equal(tt.expected) {
			t.Fatalf("%s: expected %v, got %v", tt.input, tt.expected, result.UTC())
		}
	}
}

func TestTimeUnmarshalJSONNullPreservesValue(t *testing.T) {
	result := NewTime(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	original := result.Time
	if err := json.Unmarshal([]byte("null"), &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Equal(original) {
		t.Fatalf("expected %v to be preserved, got %v", original, result.Time)
	}
}

func TestTimeUnmarshalJSONInvalid(t *testing.T) {
	var result Time
	if err := json.Unmarshal([]byte(`"15/01/2024"`), &result); err == nil {
		t.Fatal("expected error for non-RFC3339 input")
	}
}

func TestTimeCBORUsesTextString(t *testing.T) {
	in := struct {
		GeneratedAt Time `json:"generated_at"`
	}{GeneratedAt: NewTime(time.Date(2024, 1, 15, 10, 30, 0, 5000000, time.UTC))}

	data, err := cbor.Marshal(in)
	if err != nil {
		t.Fatalf("cbor.Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := cbor.Unmarshal(data, &raw); err != nil {
		t.Fatalf("cbor.Unmarshal() error = %v", err)
	}
	if got := raw["generated_at"]; got != "2024-01-15T10:30:00.005Z" {
		t.Fatalf("expected text timestamp, got %#v", got)
	}

	var out struct {
		GeneratedAt Time `json:"generated_at"`
	}
	if err := cbor.Unmarshal(data, &out); err != nil {
		t.Fatalf("cbor.Unmarshal() into Time error = %v", err)
	}
	if !out.GeneratedAt.Equal(in.GeneratedAt.Time) {
		t.Fatalf("expected %v, got %v", in.GeneratedAt, out.GeneratedAt)
	}
}

func TestFormatConstants(t *testing.T) {
	ts := time.Date(2024, 1, 15, 10, 30, 0, 123456000, time.UTC)
	if got := ts.Format(RFC3339Millis); got != "2024-01-15T10:30:00.123Z" {
		t.Fatalf("RFC3339Millis formatted %q", got)
	}
	if got := ts.Format(RFC3339Micros); got != "2024-01-15T10:30:00.123456Z" {
		t.Fatalf("RFC3339Micros formatted %q", got)
	}
}

func TestTimeSchema(t *testing.T) {
	s := Time{}.Schema(nil)
	if s.Type != "string" || s.Format != "date-time" {
		t.Fatalf("unexpected schema %s/%s", s.Type, s.Format)
	}
}
