package driving

import (
	"context"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

// HistoryService records and lists past probes.
type HistoryService interface {
	// Record stores a summary of the probe result.
	Record(ctx context.Context, result *domain.ProbeResult) error

	// List returns recent records, newest first.
	List(ctx context.Context, limit int) ([]domain.ProbeRecord, error)

	// Get returns a single record by ID.
	Get(ctx context.Context, id string) (domain.ProbeRecord, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
