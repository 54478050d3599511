package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

// ProbeOptions controls how a probe is performed.
type ProbeOptions struct {
	// Wait keeps retrying until the service answers or Wait elapses.
	// Zero means a single attempt.
	Wait time.Duration

	// Interval is the pause between attempts in wait mode (default 1s).
	Interval time.Duration
}

// ProbeService checks connectivity to a search engine.
type ProbeService interface {
	// Probe fetches server info from the endpoint.
	// It never returns nil; failures are reported through ProbeResult.Err.
	Probe(ctx context.Context, endpoint domain.Endpoint, opts ProbeOptions) *domain.ProbeResult
}
