package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driving"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// errNoHistoryStore is returned when history is requested but no store is configured.
var errNoHistoryStore = errors.New("history store not configured")

// HistoryService records probe results.
// The store is optional; without one, Record is a no-op.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Record stores a password-free summary of the probe result.
func (s *HistoryService) Record(ctx context.Context, result *domain.ProbeResult) error {
	if s.store == nil || result == nil {
		return nil
	}
	record := domain.NewProbeRecord(result)
	logger.Debug("Recording probe %s (ok=%t)", record.ID, record.OK)
	return s.store.Append(ctx, record)
}

// List returns recent records, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.ProbeRecord, error) {
	if s.store == nil {
		return nil, errNoHistoryStore
	}
	return s.store.List(ctx, limit)
}

// Get returns a single record by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (domain.ProbeRecord, error) {
	if s.store == nil {
		return domain.ProbeRecord{}, errNoHistoryStore
	}
	if id == "" {
		return domain.ProbeRecord{}, fmt.Errorf("%w: record ID is required", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Clear removes all records.
func (s *HistoryService) Clear(ctx context.Context) error {
	if s.store == nil {
		return errNoHistoryStore
	}
	return s.store.Clear(ctx)
}
