// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/regscan/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "index", "regscan.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func report(company, year string) types.Report {
	name := company + " " + year + ".pdf"
	return types.Report{
		Name:    name,
		Path:    filepath.Join("reports", name),
		Company: company,
		Year:    year,
	}
}

var stamp = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCachedText(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	r := report("Acme", "2023")
	state := FileState{Size: 1024, ModTime: stamp, Backend: types.BackendNative}

	_, ok, err := s.CachedText(ctx, r.Path, state)
	require.NoError(t, err)
	assert.False(t, ok, "empty store should miss")

	require.NoError(t, s.SaveText(ctx, r, state, "report text"))

	text, ok, err := s.CachedText(ctx, r.Path, state)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "report text", text)

	tests := []struct {
		name  string
		state FileState
	}{
		{name: "size changed", state: FileState{Size: 2048, ModTime: stamp, Backend: types.BackendNative}},
		{name: "mod time changed", state: FileState{Size: 1024, ModTime: stamp.Add(time.Second), Backend: types.BackendNative}},
		{name: "backend changed", state: FileState{Size: 1024, ModTime: stamp, Backend: types.BackendPdftotext}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := s.CachedText(ctx, r.Path, tt.state)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSaveText_ReplacesAndClearsHits(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	r := report("Acme", "2023")

	require.NoError(t, s.SaveText(ctx, r, FileState{Size: 1, ModTime: stamp}, "old"))
	require.NoError(t, s.RecordHits(ctx, r.Path, []string{"CSRD"}))

	newState := FileState{Size: 2, ModTime: stamp.Add(time.Hour)}
	require.NoError(t, s.SaveText(ctx, r, newState, "new"))

	text, ok, err := s.CachedText(ctx, r.Path, newState)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", text)

	reports, err := s.ReportsFor(ctx, "CSRD")
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestRecordHits(t *testing.T) {
	ctx := context.Background()
	s := testStore(t)
	acme := report("Acme", "2023")
	beta := report("Beta", "2022")
	state := FileState{Size: 1, ModTime: stamp}

	require.NoError(t, s.SaveText(ctx, acme, state, "a"))
	require.NoError(t, s.SaveText(ctx, beta, state, "b"))
	require.NoError(t, s.RecordHits(ctx, beta.Path, []string{"CSRD", "ESRS"}))
	require.NoError(t, s.RecordHits(ctx, acme.Path, []string{"CSRD", "NFRD"}))
	require.NoError(t, s.RecordHits(ctx, acme.Path, []string{"CSRD"}))

	reports, err := s.ReportsFor(ctx, "CSRD")
	require.NoError(t, err)
	assert.Equal(t, []types.Report{acme, beta}, reports)

	reports, err = s.ReportsFor(ctx, "NFRD")
	require.NoError(t, err)
	assert.Empty(t, reports, "second RecordHits should replace the first")

	counts, err := s.Laws(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LawCount{
		{Law: "CSRD", Reports: 2},
		{Law: "ESRS", Reports: 1},
	}, counts)
}

func TestRecordHits_UnknownReport(t *testing.T) {
	s := testStore(t)
	err := s.RecordHits(context.Background(), "reports/missing.pdf", []string{"CSRD"})
	assert.Error(t, err, "foreign key should reject hits for unsaved reports")
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "regscan.db")
	r := report("Acme", "2023")
	state := FileState{Size: 1, ModTime: stamp}

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SaveText(ctx, r, state, "persisted"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	text, ok, err := s.CachedText(ctx, r.Path, state)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", text)
}

func TestOpen_AddsBackendColumn(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "regscan.db")

	old, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = old.Exec(`CREATE TABLE reports (
		path TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		company TEXT NOT NULL,
		year TEXT NOT NULL,
		size INTEGER NOT NULL,
		mod_time TEXT NOT NULL,
		text TEXT NOT NULL,
		extracted_at TEXT NOT NULL
	)`)
	require.NoError(t, err)
	r := report("Acme", "2023")
	state := FileState{Size: 1, ModTime: stamp, Backend: types.BackendNative}
	_, err = old.Exec(`INSERT INTO reports VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Path, r.Name, r.Company, r.Year, state.Size, state.modTime(), "legacy", "2024-01-01T00:00:00Z")
	require.NoError(t, err)
	require.NoError(t, old.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.CachedText(ctx, r.Path, state)
	require.NoError(t, err)
	assert.False(t, ok, "rows without a backend should be re-extracted")

	require.NoError(t, s.SaveText(ctx, r, state, "fresh"))
	text, ok, err := s.CachedText(ctx, r.Path, state)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fresh", text)
}

func TestStatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.pdf")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o644))
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	state, err := StatFile(path, types.BackendPdftotext)
	require.NoError(t, err)
	assert.Equal(t, int64(5), state.Size)
	assert.True(t, state.ModTime.Equal(stamp))
	assert.Equal(t, types.BackendPdftotext, state.Backend)

	_, err = StatFile(filepath.Join(t.TempDir(), "missing.pdf"), types.BackendNative)
	assert.Error(t, err)
}
