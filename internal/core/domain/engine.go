package domain

import (
	"fmt"
	"strings"
)

const unknownDescription = "Unknown"

// EngineType identifies the search engine flavour behind an endpoint.
type EngineType string

// Supported engine types.
const (
	// EngineElasticsearch is an Elasticsearch cluster.
	EngineElasticsearch EngineType = "elasticsearch"

	// EngineOpenSearch is an OpenSearch cluster.
	EngineOpenSearch EngineType = "opensearch"
)

// IsValid returns true if the engine type is recognised.
func (e EngineType) IsValid() bool {
	switch e {
	case EngineElasticsearch, EngineOpenSearch:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e EngineType) String() string {
	return string(e)
}

// Description returns the product name used in user-facing messages.
func (e EngineType) Description() string {
	switch e {
	case EngineElasticsearch:
		return "Elasticsearch"
	case EngineOpenSearch:
		return "OpenSearch"
	default:
		return unknownDescription
	}
}

// ParseEngineType parses an engine name case-insensitively.
// An empty string selects Elasticsearch.
func ParseEngineType(s string) (EngineType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return EngineElasticsearch, nil
	}
	e := EngineType(s)
	if !e.IsValid() {
		return "", fmt.Errorf("%w: engine %q", ErrUnsupportedType, s)
	}
	return e, nil
}

// EngineTypes returns all supported engine types.
func EngineTypes() []EngineType {
	return []EngineType{EngineElasticsearch, EngineOpenSearch}
}
