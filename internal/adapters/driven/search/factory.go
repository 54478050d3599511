package search

import (
	"fmt"

	"github.com/custodia-labs/searchprobe/internal/adapters/driven/search/elasticsearch"
	"github.com/custodia-labs/searchprobe/internal/adapters/driven/search/opensearch"
	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.SearchClientFactory = (*Factory)(nil)

// Factory creates search clients by engine type.
type Factory struct{}

// NewFactory creates a new search client factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create builds a client for the endpoint's engine.
func (f *Factory) Create(endpoint domain.Endpoint) (driven.SearchClient, error) {
	switch endpoint.Engine {
	case domain.EngineElasticsearch:
		client, err := elasticsearch.New(endpoint)
		if err != nil {
			return nil, err
		}
		return client, nil
	case domain.EngineOpenSearch:
		client, err := opensearch.New(endpoint)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("%w: engine %q", domain.ErrUnsupportedType, endpoint.Engine)
	}
}
