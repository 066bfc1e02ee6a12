// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report discovers sustainability report PDFs and derives company
// and year from their filenames ("<Company> <Year...>.pdf").
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/regscan/pkg/types"
)

const pdfExt = ".pdf"

// ErrNoReports is returned by Discover when the folder holds no PDF files.
var ErrNoReports = errors.New("no PDF files found")

var yearPattern = regexp.MustCompile(`[0-9]{4}`)

// Parse derives a Report from a PDF path. The filename stem is split at the
// first space: the part before it is the company, and the first four-digit
// run after it is the year. A stem without a space is the company name in
// full; the year falls back to types.UnknownYear.
func Parse(path string) types.Report {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	r := types.Report{
		Name:    name,
		Path:    path,
		Company: stem,
		Year:    types.UnknownYear,
	}

	company, rest, found := strings.Cut(stem, " ")
	if !found {
		return r
	}
	r.Company = strings.TrimSpace(company)
	if y := yearPattern.FindString(rest); y != "" {
		r.Year = y
	}
	return r
}

// Discover returns the paths of all *.pdf files directly inside dir, sorted
// by name. Symlinks to regular files are included; subdirectories are not
// searched. It returns ErrNoReports when
// there are none.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading reports directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), pdfExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		paths = append(paths, path)
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoReports, dir)
	}
	sort.Strings(paths)
	return paths, nil
}

// isRegularFile reports whether entry is a regular file or a symlink that
// resolves to one. Dangling links are skipped.
func isRegularFile(entry os.DirEntry, path string) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
