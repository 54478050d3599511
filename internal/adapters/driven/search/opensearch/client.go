// Package opensearch provides a SearchClient backed by opensearch-go.
package opensearch

import (
	"context"
	"fmt"

	osgo "github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/custodia-labs/searchprobe/internal/adapters/driven/search/transport"
	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchClient = (*Client)(nil)

// Client fetches server info from an OpenSearch cluster.
type Client struct {
	client   *osgo.Client
	endpoint domain.Endpoint
}

// New creates an OpenSearch client for the endpoint.
func New(endpoint domain.Endpoint) (*Client, error) {
	httpTransport, err := transport.NewHTTPTransport(endpoint)
	if err != nil {
		return nil, err
	}

	cfg := osgo.Config{
		Addresses:    []string{endpoint.URL},
		Transport:    httpTransport,
		DisableRetry: true,
	}
	if endpoint.HasBasicAuth() {
		cfg.Username = endpoint.Username
		cfg.Password = endpoint.Password
	}

	client, err := osgo.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: opensearch config: %v", domain.ErrInvalidInput, err)
	}

	return &Client{client: client, endpoint: endpoint}, nil
}

// Info calls GET / and decodes the response.
func (c *Client) Info(ctx context.Context) (*domain.ServerInfo, error) {
	opts := []func(*opensearchapi.InfoRequest){c.client.Info.WithContext(ctx)}
	if id := driven.ProbeIDFromContext(ctx); id != "" {
		opts = append(opts, c.client.Info.WithOpaqueID(id))
	}

	logger.Debug("GET %s/ (opensearch)", c.endpoint.RedactedURL())
	res, err := c.client.Info(opts...)
	if err != nil {
		return nil, transport.ClassifyError(ctx, err)
	}
	defer res.Body.Close()

	logger.Debug("Response status: %s", res.Status())
	return transport.DecodeInfo(res.StatusCode, res.Body)
}
