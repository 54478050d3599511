package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// distributionOpenSearch is the version.distribution value reported by OpenSearch.
const distributionOpenSearch = "opensearch"

// ServerInfo is the payload returned by a search engine's info endpoint.
// The raw JSON is kept verbatim; the parsed fields are best effort.
type ServerInfo struct {
	Name        string      `json:"name"`
	ClusterName string      `json:"cluster_name"`
	ClusterUUID string      `json:"cluster_uuid"`
	Version     VersionInfo `json:"version"`
	Tagline     string      `json:"tagline"`

	raw json.RawMessage
}

// VersionInfo is the version block of the info payload.
type VersionInfo struct {
	Number        string `json:"number"`
	Distribution  string `json:"distribution,omitempty"`
	BuildFlavor   string `json:"build_flavor,omitempty"`
	LuceneVersion string `json:"lucene_version,omitempty"`
}

// ParseServerInfo decodes an info payload.
// The payload must be a JSON object. Known fields are filled when they have
// the expected type and left empty otherwise; the raw object is always kept.
func ParseServerInfo(raw []byte) (*ServerInfo, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: info payload is not a JSON object", ErrMalformedResponse)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	info := ServerInfo{raw: compact.Bytes()}
	decodeField(fields, "name", &info.Name)
	decodeField(fields, "cluster_name", &info.ClusterName)
	decodeField(fields, "cluster_uuid", &info.ClusterUUID)
	decodeField(fields, "tagline", &info.Tagline)

	var version map[string]json.RawMessage
	if decodeField(fields, "version", &version) {
		decodeField(version, "number", &info.Version.Number)
		decodeField(version, "distribution", &info.Version.Distribution)
		decodeField(version, "build_flavor", &info.Version.BuildFlavor)
		decodeField(version, "lucene_version", &info.Version.LuceneVersion)
	}
	return &info, nil
}

// decodeField unmarshals fields[key] into dst and reports whether it did.
// A missing key or a value of another type leaves dst untouched.
func decodeField(fields map[string]json.RawMessage, key string, dst any) bool {
	value, ok := fields[key]
	if !ok {
		return false
	}
	return json.Unmarshal(value, dst) == nil
}

// Raw returns the compact JSON payload as received.
func (i *ServerInfo) Raw() json.RawMessage {
	if i == nil {
		return nil
	}
	return i.raw
}

// Indented returns the payload as indented JSON.
func (i *ServerInfo) Indented() (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, i.Raw(), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Product returns the product name the server identifies as.
func (i *ServerInfo) Product() string {
	if i != nil && i.Version.Distribution == distributionOpenSearch {
		return EngineOpenSearch.Description()
	}
	return EngineElasticsearch.Description()
}

// String returns the compact raw payload.
func (i *ServerInfo) String() string {
	if i == nil || len(i.raw) == 0 {
		return "{}"
	}
	return string(i.raw)
}
