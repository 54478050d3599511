package sqlite

import (
	"context"
	"sync"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
)

// Ensure LazyStore implements the interface.
var _ driven.HistoryStore = (*LazyStore)(nil)

// LazyStore opens the history database on first use.
// A probe that never records history never creates the database file.
type LazyStore struct {
	dataDir string

	once  sync.Once
	store *Store
	err   error
}

// NewLazyStore returns a store that opens dataDir on first use.
func NewLazyStore(dataDir string) *LazyStore {
	return &LazyStore{dataDir: dataDir}
}

func (l *LazyStore) open() (*Store, error) {
	l.once.Do(func() {
		l.store, l.err = NewStore(l.dataDir)
	})
	return l.store, l.err
}

// Opened reports whether the database has been opened.
func (l *LazyStore) Opened() bool {
	return l.store != nil
}

// Append opens the store if needed and appends the record.
func (l *LazyStore) Append(ctx context.Context, record domain.ProbeRecord) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Append(ctx, record)
}

// List opens the store if needed and lists records.
func (l *LazyStore) List(ctx context.Context, limit int) ([]domain.ProbeRecord, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.List(ctx, limit)
}

// Get opens the store if needed and returns a single record.
func (l *LazyStore) Get(ctx context.Context, id string) (domain.ProbeRecord, error) {
	s, err := l.open()
	if err != nil {
		return domain.ProbeRecord{}, err
	}
	return s.Get(ctx, id)
}

// Clear opens the store if needed and removes all records.
func (l *LazyStore) Clear(ctx context.Context) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Clear(ctx)
}

// Close closes the database if it was opened.
func (l *LazyStore) Close() error {
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}
