package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.ProbeRecord
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Append stores a probe record.
func (s *HistoryStore) Append(_ context.Context, record domain.ProbeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// List returns the most recent records, newest first.
func (s *HistoryStore) List(_ context.Context, limit int) ([]domain.ProbeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.records)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]domain.ProbeRecord, 0, n)
	for i := len(s.records) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, s.records[i])
	}
	return result, nil
}

// Get returns the record with the given ID.
func (s *HistoryStore) Get(_ context.Context, id string) (domain.ProbeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].ID == id {
			return s.records[i], nil
		}
	}
	return domain.ProbeRecord{}, domain.ErrNotFound
}

// Clear removes all records.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
