package routes

import (
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pathlet/pathlet-api/internal/http/health"
	"github.com/pathlet/pathlet-api/internal/http/v1/ascendant"
	"github.com/pathlet/pathlet-api/internal/http/v1/compatibility"
	"github.com/pathlet/pathlet-api/internal/http/v1/humandesign"
	"github.com/pathlet/pathlet-api/internal/http/v1/info"
	"github.com/pathlet/pathlet-api/internal/http/v1/numerology"
	"github.com/pathlet/pathlet-api/internal/http/v1/reading"
	readingsvc "github.com/pathlet/pathlet-api/internal/service/reading"
)

// Options carries values the route handlers report or stamp.
type Options struct {
	Version           string
	NarrativeProvider string
	// Now stamps generated timestamps. Nil means time.Now.
	Now func() time.Time
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, svc *readingsvc.Service, opts Options) {
	info.Register(api, opts.Version, opts.NarrativeProvider)
	health.Register(api)

	numerology.Register(api, svc)
	humandesign.Register(api, svc)
	ascendant.Register(api, svc)
	reading.Register(api, svc, opts.Now)
	compatibility.Register(api, svc)
}
