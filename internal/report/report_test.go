// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/regscan/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path        string
		wantCompany string
		wantYear    string
	}{
		{path: "reports/AcmeCorp 2023_Report.pdf", wantCompany: "AcmeCorp", wantYear: "2023"},
		{path: "BASF 2022.pdf", wantCompany: "BASF", wantYear: "2022"},
		{path: "Siemens Nachhaltigkeitsbericht 2021 final.pdf", wantCompany: "Siemens", wantYear: "2021"},
		{path: "Allianz Report.pdf", wantCompany: "Allianz", wantYear: types.UnknownYear},
		{path: "Henkel.pdf", wantCompany: "Henkel", wantYear: types.UnknownYear},
		{path: "Bosch 20231231.pdf", wantCompany: "Bosch", wantYear: "2023"},
		{path: "Merck .pdf", wantCompany: "Merck", wantYear: types.UnknownYear},
		{path: "SAP 2019 2020.pdf", wantCompany: "SAP", wantYear: "2019"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r := Parse(tt.path)
			assert.Equal(t, tt.wantCompany, r.Company)
			assert.Equal(t, tt.wantYear, r.Year)
			assert.Equal(t, filepath.Base(tt.path), r.Name)
			assert.Equal(t, tt.path, r.Path)
		})
	}
}

func TestParse_Key(t *testing.T) {
	assert.Equal(t, "AcmeCorp 2023", Parse("AcmeCorp 2023_Report.pdf").Key())
	assert.Equal(t, "Henkel Unknown", Parse("Henkel.pdf").Key())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Zeta 2021.pdf", "Alpha 2022.pdf", "notes.txt", "Upper 2020.PDF"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.pdf"), 0o755))

	paths, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "Alpha 2022.pdf"),
		filepath.Join(dir, "Zeta 2021.pdf"),
	}, paths)
}

func TestDiscover_Symlinks(t *testing.T) {
	src := t.TempDir()
	target := filepath.Join(src, "acme-final.pdf")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "archive"), 0o755))

	dir := t.TempDir()
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "Acme 2023.pdf")))
	require.NoError(t, os.Symlink(filepath.Join(src, "archive"), filepath.Join(dir, "Archive.pdf")))
	require.NoError(t, os.Symlink(filepath.Join(src, "missing.pdf"), filepath.Join(dir, "Dangling 2020.pdf")))

	paths, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "Acme 2023.pdf")}, paths)
}

func TestDiscover_NoReports(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0o644))

	_, err := Discover(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoReports))
	assert.Contains(t, err.Error(), dir)
}

func TestDiscover_MissingDir(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoReports))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
