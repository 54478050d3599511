package driven

import (
	"context"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

// SearchClient talks to a single search engine endpoint.
type SearchClient interface {
	// Info fetches the server info payload.
	// Errors wrap one of the domain connectivity errors
	// (ErrUnreachable, ErrTimeout, ErrAuthInvalid, ErrUnexpectedStatus, ErrMalformedResponse).
	Info(ctx context.Context) (*domain.ServerInfo, error)
}

// SearchClientFactory creates SearchClients for an endpoint.
type SearchClientFactory interface {
	// Create builds a client for the endpoint's engine type.
	// Returns domain.ErrUnsupportedType for unknown engines.
	Create(endpoint domain.Endpoint) (SearchClient, error)
}

type probeIDKey struct{}

// WithProbeID returns a context carrying the probe ID.
// Adapters forward it to the engine as X-Opaque-Id.
func WithProbeID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, probeIDKey{}, id)
}

// ProbeIDFromContext returns the probe ID carried by ctx, if any.
func ProbeIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(probeIDKey{}).(string)
	return id
}
