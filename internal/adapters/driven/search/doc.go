// Package search provides the SearchClientFactory that selects an engine adapter.
//
// Adapters:
//   - elasticsearch: go-elasticsearch/v8 client
//   - opensearch: opensearch-go/v2 client
//
// Both adapters share the HTTP transport and response handling in the
// transport subpackage, so an Elasticsearch and an OpenSearch endpoint fail in
// the same way for the same cause.
package search
