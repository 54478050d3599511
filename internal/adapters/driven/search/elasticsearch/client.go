// Package elasticsearch provides a SearchClient backed by go-elasticsearch.
package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/custodia-labs/searchprobe/internal/adapters/driven/search/transport"
	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchClient = (*Client)(nil)

// Client fetches server info from an Elasticsearch cluster.
type Client struct {
	es       *es.Client
	endpoint domain.Endpoint
}

// New creates an Elasticsearch client for the endpoint.
// Retries are disabled: one call to Info is one HTTP request.
func New(endpoint domain.Endpoint) (*Client, error) {
	httpTransport, err := transport.NewHTTPTransport(endpoint)
	if err != nil {
		return nil, err
	}

	cfg := es.Config{
		Addresses:    []string{endpoint.URL},
		Transport:    httpTransport,
		DisableRetry: true,
	}
	if endpoint.HasBasicAuth() {
		cfg.Username = endpoint.Username
		cfg.Password = endpoint.Password
	}

	client, err := es.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: elasticsearch config: %v", domain.ErrInvalidInput, err)
	}

	return &Client{es: client, endpoint: endpoint}, nil
}

// Info calls GET / and decodes the response.
func (c *Client) Info(ctx context.Context) (*domain.ServerInfo, error) {
	opts := []func(*esapi.InfoRequest){c.es.Info.WithContext(ctx)}
	if id := driven.ProbeIDFromContext(ctx); id != "" {
		opts = append(opts, c.es.Info.WithOpaqueID(id))
	}

	logger.Debug("GET %s/ (elasticsearch)", c.endpoint.RedactedURL())
	res, err := c.es.Info(opts...)
	if err != nil {
		if isProductCheckError(err) {
			return nil, fmt.Errorf("%w: server did not identify as Elasticsearch (use --engine opensearch for OpenSearch): %v",
				domain.ErrUnsupportedType, err)
		}
		return nil, transport.ClassifyError(ctx, err)
	}
	defer res.Body.Close()

	logger.Debug("Response status: %s", res.Status())
	return transport.DecodeInfo(res.StatusCode, res.Body)
}

// productCheckPrefix starts every error go-elasticsearch returns when a
// response lacks the X-Elastic-Product header or reports another product.
const productCheckPrefix = "the client noticed that the server is not"

// isProductCheckError reports whether the server answered but is not a
// supported Elasticsearch.
func isProductCheckError(err error) bool {
	return strings.Contains(err.Error(), productCheckPrefix)
}
