// Package domain defines the core types for searchprobe.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Endpoint: Where and how to reach a search engine
//   - ServerInfo: The opaque info payload returned by the engine
//   - ProbeResult: The outcome of a single connectivity probe
//   - ProbeRecord: A persisted, password-free summary of a probe
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
