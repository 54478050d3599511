package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/searchprobe/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
)

// DatabaseFileName is the name of the history database inside the data directory.
const DatabaseFileName = "history.db"

// timeLayout is fixed width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite-backed probe history store.
type Store struct {
	db   *sql.DB
	path string
}

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.searchprobe/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".searchprobe", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFileName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_probe_history.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Append stores a probe record.
func (s *Store) Append(ctx context.Context, record domain.ProbeRecord) error {
	if record.ID == "" {
		return fmt.Errorf("%w: record id is required", domain.ErrInvalidInput)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO probe_history
			(id, engine, url, username, ok, error, cluster_name, version, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.Engine.String(),
		record.URL,
		record.Username,
		boolToInt(record.OK),
		record.Error,
		record.ClusterName,
		record.Version,
		record.Duration.Milliseconds(),
		record.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting probe record: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.ProbeRecord, error) {
	query := `
		SELECT id, engine, url, username, ok, error, cluster_name, version, duration_ms, created_at
		FROM probe_history
		ORDER BY created_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying probe history: %w", err)
	}
	defer rows.Close()

	var records []domain.ProbeRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating probe history: %w", err)
	}
	return records, nil
}

// Get returns a single record by ID.
func (s *Store) Get(ctx context.Context, id string) (domain.ProbeRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, engine, url, username, ok, error, cluster_name, version, duration_ms, created_at
		FROM probe_history
		WHERE id = ?
	`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProbeRecord{}, domain.ErrNotFound
	}
	return record, err
}

// Clear removes all records.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM probe_history"); err != nil {
		return fmt.Errorf("clearing probe history: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (domain.ProbeRecord, error) {
	var (
		record     domain.ProbeRecord
		engine     string
		ok         int
		durationMS int64
		createdAt  string
	)

	err := row.Scan(
		&record.ID,
		&engine,
		&record.URL,
		&record.Username,
		&ok,
		&record.Error,
		&record.ClusterName,
		&record.Version,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return domain.ProbeRecord{}, err
	}

	record.Engine = domain.EngineType(engine)
	record.OK = ok != 0
	record.Duration = time.Duration(durationMS) * time.Millisecond
	if t, err := time.Parse(timeLayout, createdAt); err == nil {
		record.CreatedAt = t
	}
	return record, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
