// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store caches extracted report text and the regulations last
// detected in each report in a SQLite database. Cached text is keyed by
// path, size, modification time, and extraction backend so unchanged PDFs
// are not parsed again.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/regscan/pkg/types"
)

// Store manages the regscan SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			path TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			company TEXT NOT NULL,
			year TEXT NOT NULL,
			size INTEGER NOT NULL,
			mod_time TEXT NOT NULL,
			backend TEXT NOT NULL DEFAULT '',
			text TEXT NOT NULL,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS hits (
			path TEXT NOT NULL REFERENCES reports(path) ON DELETE CASCADE,
			law TEXT NOT NULL,
			PRIMARY KEY (path, law)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_law ON hits(law)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return s.addBackendColumn()
}

// addBackendColumn upgrades databases created before the backend column
// existed. Rows without a backend never match a cache lookup.
func (s *Store) addBackendColumn() error {
	var n int
	err := s.db.QueryRow(
		`SELECT count(*) FROM pragma_table_info('reports') WHERE name = 'backend'`,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("reading reports columns: %w", err)
	}
	if n > 0 {
		return nil
	}
	if _, err := s.db.Exec(`ALTER TABLE reports ADD COLUMN backend TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("adding backend column: %w", err)
	}
	return nil
}

// FileState identifies the on-disk version of a report and the extraction
// backend that reads it.
type FileState struct {
	Size    int64
	ModTime time.Time
	Backend types.ExtractionBackend
}

// StatFile returns the FileState of the file at path as read by backend.
func StatFile(path string, backend types.ExtractionBackend) (FileState, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileState{}, err
	}
	return FileState{Size: info.Size(), ModTime: info.ModTime(), Backend: backend}, nil
}

func (f FileState) modTime() string {
	return f.ModTime.UTC().Format(time.RFC3339Nano)
}

// CachedText returns the text stored for the report at path. ok is false
// when nothing is cached, the file has changed since it was stored, or the
// text came from a different extraction backend.
func (s *Store) CachedText(ctx context.Context, path string, state FileState) (text string, ok bool, err error) {
	var size int64
	var modTime, backend string
	err = s.db.QueryRowContext(ctx,
		`SELECT size, mod_time, backend, text FROM reports WHERE path = ?`, path,
	).Scan(&size, &modTime, &backend, &text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up cached text for %s: %w", path, err)
	}

	if size != state.Size || modTime != state.modTime() || backend != string(state.Backend) {
		return "", false, nil
	}
	return text, true, nil
}

// SaveText stores the extracted text of r, replacing any earlier version.
// Hits recorded for an earlier version are discarded.
func (s *Store) SaveText(ctx context.Context, r types.Report, state FileState, text string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hits WHERE path = ?`, r.Path); err != nil {
		return fmt.Errorf("clearing hits for %s: %w", r.Path, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (path, name, company, year, size, mod_time, backend, text, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			name = excluded.name,
			company = excluded.company,
			year = excluded.year,
			size = excluded.size,
			mod_time = excluded.mod_time,
			backend = excluded.backend,
			text = excluded.text,
			extracted_at = excluded.extracted_at`,
		r.Path, r.Name, r.Company, r.Year, state.Size, state.modTime(), string(state.Backend), text,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving text for %s: %w", r.Path, err)
	}

	return tx.Commit()
}

// RecordHits replaces the regulations recorded for the report at path. The
// report's text must have been saved first.
func (s *Store) RecordHits(ctx context.Context, path string, laws []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hits WHERE path = ?`, path); err != nil {
		return fmt.Errorf("clearing hits for %s: %w", path, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO hits (path, law) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing hit insert: %w", err)
	}
	defer stmt.Close()

	for _, law := range laws {
		if _, err := stmt.ExecContext(ctx, path, law); err != nil {
			return fmt.Errorf("recording hit %s for %s: %w", law, path, err)
		}
	}

	return tx.Commit()
}

// ReportsFor returns the reports whose last recorded hits include law,
// ordered by company, year, and name.
func (s *Store) ReportsFor(ctx context.Context, law string) ([]types.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.name, r.path, r.company, r.year
		FROM hits h JOIN reports r ON r.path = h.path
		WHERE h.law = ?
		ORDER BY r.company, r.year, r.name`, law)
	if err != nil {
		return nil, fmt.Errorf("querying reports for %s: %w", law, err)
	}
	defer rows.Close()

	var reports []types.Report
	for rows.Next() {
		var r types.Report
		if err := rows.Scan(&r.Name, &r.Path, &r.Company, &r.Year); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// LawCount is the number of recorded reports referencing a regulation.
type LawCount struct {
	Law     string `json:"law" yaml:"law"`
	Reports int    `json:"reports" yaml:"reports"`
}

// Laws returns every regulation with recorded hits and its report count,
// ordered by regulation name.
func (s *Store) Laws(ctx context.Context) ([]LawCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT law, count(*) FROM hits GROUP BY law ORDER BY law`)
	if err != nil {
		return nil, fmt.Errorf("querying laws: %w", err)
	}
	defer rows.Close()

	var counts []LawCount
	for rows.Next() {
		var c LawCount
		if err := rows.Scan(&c.Law, &c.Reports); err != nil {
			return nil, fmt.Errorf("scanning law row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
