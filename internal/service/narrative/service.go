// Package narrative produces free-text astrology narratives from a prompt by
// calling a hosted text-generation model.
//
// Narratives are decorative. Callers treat every error from a Generator as a
// reason to omit the text, never as a reason to fail a request.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Service errors
var (
	ErrDisabled      = errors.New("narrative generation disabled")
	ErrUnauthorized  = errors.New("narrative provider rejected credentials")
	ErrRateLimited   = errors.New("narrative provider rate limit exceeded")
	ErrUnavailable   = errors.New("narrative model unavailable")
	ErrUpstream      = errors.New("narrative provider error")
	ErrEmptyResponse = errors.New("narrative provider returned no text")
)

// UpstreamErrorKind classifies provider failures.
type UpstreamErrorKind string

const (
	UpstreamErrorKindUnauthorized UpstreamErrorKind = "unauthorized"
	UpstreamErrorKindRateLimited  UpstreamErrorKind = "rate_limited"
	UpstreamErrorKindUnavailable  UpstreamErrorKind = "unavailable"
	UpstreamErrorKindUpstream     UpstreamErrorKind = "upstream"
)

// UpstreamError carries provider response metadata.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	Status     int
	RetryAfter string
	Message    string
	cause      error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "narrative upstream error"
	}
	msg := fmt.Sprintf("narrative upstream error (kind=%s status=%d)", e.Kind, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap enables errors.Is against the sentinel service errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// classifyStatus maps a provider HTTP status to an error kind and sentinel.
func classifyStatus(status int) (UpstreamErrorKind, error) {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return UpstreamErrorKindUnauthorized, ErrUnauthorized
	case http.StatusTooManyRequests:
		return UpstreamErrorKindRateLimited, ErrRateLimited
	case http.StatusServiceUnavailable:
		return UpstreamErrorKindUnavailable, ErrUnavailable
	default:
		return UpstreamErrorKindUpstream, ErrUpstream
	}
}

// Generator turns a prompt into narrative text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// Provider names the backing service, e.g. "huggingface".
	Provider() string
	// Model names the model used for generation.
	Model() string
}

// Disabled is a Generator that always returns ErrDisabled.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) { return "", ErrDisabled }
func (Disabled) Provider() string                                 { return "disabled" }
func (Disabled) Model() string                                    { return "" }

var _ Generator = Disabled{}
