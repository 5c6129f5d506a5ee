// Package sqlite provides the SQLite-backed subject catalogue. The
// catalogue tracks which subjects have been researched so batch runs
// can pull pending work and mark it done.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veldlabs/florascribe-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/veldlabs/florascribe-cli/internal/core/domain"
	"github.com/veldlabs/florascribe-cli/internal/core/ports/driven"
)

// Ensure CatalogueStore implements the interface.
var _ driven.CatalogueStore = (*CatalogueStore)(nil)

// CatalogueStore is a SQLite-backed subject catalogue.
type CatalogueStore struct {
	db   *sql.DB
	path string
}

// NewCatalogueStore opens (or creates) the catalogue database in
// dataDir. If dataDir is empty, defaults to ~/.florascribe/data.
func NewCatalogueStore(dataDir string) (*CatalogueStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".florascribe", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "catalogue.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &CatalogueStore{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *CatalogueStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *CatalogueStore) Close() error {
	return s.db.Close()
}

// Add inserts a new subject.
func (s *CatalogueStore) Add(ctx context.Context, entry driven.CatalogueEntry) error {
	if strings.TrimSpace(entry.ScientificName) == "" {
		return domain.ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Title == "" {
		entry.Title = entry.ScientificName
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO catalogue (id, title, scientific_name, family, genus, complete)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Title, entry.ScientificName, entry.Family, entry.Genus, boolToInt(entry.Complete))
	if err != nil {
		return fmt.Errorf("inserting catalogue entry: %w", err)
	}
	return nil
}

// Get looks an entry up by scientific name.
func (s *CatalogueStore) Get(ctx context.Context, scientificName string) (*driven.CatalogueEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, scientific_name, family, genus, complete
		FROM catalogue WHERE scientific_name = ?
	`, scientificName)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("catalogue entry %q: %w", scientificName, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("querying catalogue entry: %w", err)
	}
	return entry, nil
}

// Pending returns up to limit subjects not yet completed, oldest first.
func (s *CatalogueStore) Pending(ctx context.Context, limit int) ([]driven.CatalogueEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, scientific_name, family, genus, complete
		FROM catalogue WHERE complete = 0
		ORDER BY created_at ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying pending entries: %w", err)
	}
	defer rows.Close()

	var entries []driven.CatalogueEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning catalogue entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pending entries: %w", err)
	}
	return entries, nil
}

// MarkComplete flips an entry's completion flag.
func (s *CatalogueStore) MarkComplete(ctx context.Context, scientificName string, complete bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE catalogue
		SET complete = ?, updated_at = CURRENT_TIMESTAMP
		WHERE scientific_name = ?
	`, boolToInt(complete), scientificName)
	if err != nil {
		return fmt.Errorf("updating catalogue entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("catalogue entry %q: %w", scientificName, domain.ErrNotFound)
	}
	return nil
}

// Stats returns total and completed entry counts.
func (s *CatalogueStore) Stats(ctx context.Context) (total, complete int, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(complete), 0) FROM catalogue
	`)
	if err := row.Scan(&total, &complete); err != nil {
		return 0, 0, fmt.Errorf("querying catalogue stats: %w", err)
	}
	return total, complete, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*driven.CatalogueEntry, error) {
	var entry driven.CatalogueEntry
	var complete int
	if err := row.Scan(&entry.ID, &entry.Title, &entry.ScientificName,
		&entry.Family, &entry.Genus, &complete); err != nil {
		return nil, err
	}
	entry.Complete = complete != 0
	return &entry, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// migrate runs all pending migrations.
func (s *CatalogueStore) migrate(fsys embed.FS) error {
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
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
