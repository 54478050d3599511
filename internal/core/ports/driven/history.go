package driven

import (
	"context"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
)

// HistoryStore persists probe records.
type HistoryStore interface {
	// Append stores a probe record.
	Append(ctx context.Context, record domain.ProbeRecord) error

	// List returns the most recent records, newest first.
	// A limit <= 0 returns all records.
	List(ctx context.Context, limit int) ([]domain.ProbeRecord, error)

	// Get returns the record with the given ID.
	// Returns domain.ErrNotFound if no such record exists.
	Get(ctx context.Context, id string) (domain.ProbeRecord, error)

	// Clear removes all records.
	Clear(ctx context.Context) error
}
