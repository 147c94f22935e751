// Package reading orchestrates validation, the numerology and design engines,
// compatibility scoring and the optional narrative generator.
package reading

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pathlet/pathlet-api/internal/ascendant"
	"github.com/pathlet/pathlet-api/internal/birth"
	"github.com/pathlet/pathlet-api/internal/compatibility"
	"github.com/pathlet/pathlet-api/internal/design"
	"github.com/pathlet/pathlet-api/internal/numerology"
	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
	"github.com/pathlet/pathlet-api/internal/service/narrative"
)

// DefaultNarrativeTimeout bounds all narrative calls of a single request.
const DefaultNarrativeTimeout = 10 * time.Second

// AscendantInstructions accompanies every ascendant listing.
const AscendantInstructions = "Review the listed Ascendants and choose the one that resonates most with you."

// NarrativeStatus reports whether narrative text was produced.
type NarrativeStatus string

const (
	NarrativeAvailable   NarrativeStatus = "available"
	NarrativeUnavailable NarrativeStatus = "unavailable"
	NarrativeDisabled    NarrativeStatus = "disabled"
)

// Person identifies one side of a compatibility request.
type Person string

const (
	Person1 Person = "person1"
	Person2 Person = "person2"
)

// PersonError attributes a validation failure to one side of a
// compatibility request.
type PersonError struct {
	Person Person
	Err    error
}

func (e *PersonError) Error() string {
	return fmt.Sprintf("%s: %v", e.Person, e.Err)
}

func (e *PersonError) Unwrap() error {
	return e.Err
}

// Service runs readings. It is safe for concurrent use.
type Service struct {
	validator *birth.Validator
	generator narrative.Generator
	timeout   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithGenerator sets the narrative generator. A nil generator disables
// narratives.
func WithGenerator(g narrative.Generator) Option {
	return func(s *Service) {
		if g != nil {
			s.generator = g
		}
	}
}

// WithNarrativeTimeout bounds the narrative fan-out of one request.
func WithNarrativeTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithValidator replaces the input validator.
func WithValidator(v *birth.Validator) Option {
	return func(s *Service) {
		if v != nil {
			s.validator = v
		}
	}
}

// New creates a Service. Without options narratives are disabled.
func New(opts ...Option) *Service {
	s := &Service{
		validator: birth.NewValidator(),
		generator: narrative.Disabled{},
		timeout:   DefaultNarrativeTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Numerology validates p and computes its numerology profile.
func (s *Service) Numerology(_ context.Context, p birth.Payload) (numerology.Profile, error) {
	profile, err := s.validator.Validate(p, birth.LocationOptional)
	if err != nil {
		return numerology.Profile{}, err
	}
	return numerology.Compute(profile)
}

// Design validates p and assigns its design type.
func (s *Service) Design(_ context.Context, p birth.Payload) (design.Profile, error) {
	profile, err := s.validator.Validate(p, birth.LocationOptional)
	if err != nil {
		return design.Profile{}, err
	}
	return design.Assign(profile), nil
}

// Narrative holds the generated texts of a full reading.
type Narrative struct {
	Status         NarrativeStatus
	CareerGuidance string
	PersonalGrowth string
}

// ReadingRequest is the input of a full reading.
type ReadingRequest struct {
	Payload           birth.Payload
	SelectedAscendant string
}

// Reading is a full reading of one person.
type Reading struct {
	Profile    birth.Profile
	Numerology numerology.Profile
	Design     design.Profile
	// SelectedAscendant is the canonical sign name, or "" when none or an
	// unknown sign was selected.
	SelectedAscendant string
	// EstimatedBirthTime is the time range of the selected ascendant, or
	// ascendant.UnknownRange for an unrecognised sign. It is only set when no
	// birth time was supplied and a sign was selected.
	EstimatedBirthTime string
	// EstimatedAscendant is the sign whose window contains the birth time.
	EstimatedAscendant string
	Narrative          Narrative
}

// Reading validates the request, runs both engines and then asks the
// narrative generator for career and growth texts. Narrative failures never
// fail the reading.
func (s *Service) Reading(ctx context.Context, req ReadingRequest) (*Reading, error) {
	profile, err := s.validator.Validate(req.Payload, birth.LocationRequired)
	if err != nil {
		return nil, err
	}
	num, err := numerology.Compute(profile)
	if err != nil {
		return nil, err
	}

	r := &Reading{
		Profile:    profile,
		Numerology: num,
		Design:     design.Assign(profile),
	}

	if sign, ok := ascendant.Find(req.SelectedAscendant); ok {
		r.SelectedAscendant = sign.Name
	}
	clock, hasTime := profile.Time()
	switch {
	case hasTime:
		r.EstimatedAscendant = ascendant.ForHour(clock.Hour).Name
	case strings.TrimSpace(req.SelectedAscendant) != "":
		r.EstimatedBirthTime, _ = ascendant.Lookup(req.SelectedAscendant)
	}

	promptTime := profile.TimeString()
	if !hasTime {
		promptTime = r.EstimatedBirthTime
	}
	date, place := profile.DateString(), profile.Location()
	texts, status := s.generate(ctx, "reading",
		narrative.CareerPrompt(date, promptTime, place),
		narrative.GrowthPrompt(date, promptTime, place),
	)
	r.Narrative = Narrative{Status: status, CareerGuidance: texts[0], PersonalGrowth: texts[1]}

	applog.LogInfo(ctx, "reading computed",
		zap.Int("lifePath", num.LifePath),
		zap.String("designType", string(r.Design.Type)),
		zap.String("narrativeStatus", string(status)),
	)
	return r, nil
}

// Compatibility validates both people and compares them. A validation
// failure is returned as a *PersonError.
func (s *Service) Compatibility(_ context.Context, a, b birth.Payload) (compatibility.Result, error) {
	pa, err := s.validator.Validate(a, birth.LocationOptional)
	if err != nil {
		return compatibility.Result{}, &PersonError{Person: Person1, Err: err}
	}
	pb, err := s.validator.Validate(b, birth.LocationOptional)
	if err != nil {
		return compatibility.Result{}, &PersonError{Person: Person2, Err: err}
	}

	na, err := numerology.Compute(pa)
	if err != nil {
		return compatibility.Result{}, err
	}
	nb, err := numerology.Compute(pb)
	if err != nil {
		return compatibility.Result{}, err
	}
	return compatibility.Compare(design.Assign(pa), design.Assign(pb), na, nb), nil
}

// Ascendants is the ascendant listing for one date and place.
type Ascendants struct {
	Profile         birth.Profile
	Signs           []ascendant.Sign
	Instructions    string
	NarrativeStatus NarrativeStatus
	Narrative       string
}

// Ascendants validates p and returns the fixed ascendant table plus an
// optional narrative description.
func (s *Service) Ascendants(ctx context.Context, p birth.Payload) (*Ascendants, error) {
	profile, err := s.validator.Validate(p, birth.LocationRequired)
	if err != nil {
		return nil, err
	}

	texts, status := s.generate(ctx, "ascendants",
		narrative.AscendantsPrompt(profile.DateString(), profile.Location()),
	)
	return &Ascendants{
		Profile:         profile,
		Signs:           ascendant.Signs(),
		Instructions:    AscendantInstructions,
		NarrativeStatus: status,
		Narrative:       texts[0],
	}, nil
}

// generate runs all prompts concurrently under the narrative timeout. Each
// prompt's text lands in the matching slot; failed slots stay empty.
func (s *Service) generate(ctx context.Context, operation string, prompts ...string) ([]string, NarrativeStatus) {
	texts := make([]string, len(prompts))
	errs := make([]error, len(prompts))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var g errgroup.Group
	for i, prompt := range prompts {
		g.Go(func() error {
			texts[i], errs[i] = s.generator.Generate(ctx, prompt)
			return nil
		})
	}
	_ = g.Wait()

	status := NarrativeAvailable
	for i, err := range errs {
		if err == nil {
			continue
		}
		texts[i] = ""
		if errors.Is(err, narrative.ErrDisabled) {
			status = NarrativeDisabled
			continue
		}
		if status == NarrativeAvailable {
			status = NarrativeUnavailable
		}
		applog.LogWarn(ctx, "narrative generation failed",
			zap.String("operation", operation),
			zap.String("provider", s.generator.Provider()),
			zap.Int("prompt", i),
			zap.Error(err),
		)
	}
	return texts, status
}
