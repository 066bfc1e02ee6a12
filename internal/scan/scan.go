// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan runs the report scan: discover PDFs, extract and normalize
// their text, match it against the regulation catalog, aggregate the hits,
// and write the three matrix CSVs.
package scan

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/regscan/internal/catalog"
	"github.com/pdiddy/regscan/internal/extract"
	"github.com/pdiddy/regscan/internal/match"
	"github.com/pdiddy/regscan/internal/matrix"
	"github.com/pdiddy/regscan/internal/normalize"
	"github.com/pdiddy/regscan/internal/report"
	"github.com/pdiddy/regscan/internal/store"
	"github.com/pdiddy/regscan/pkg/types"
)

// Cache stores extracted text between runs. *store.Store implements it.
type Cache interface {
	CachedText(ctx context.Context, path string, state store.FileState) (string, bool, error)
	SaveText(ctx context.Context, r types.Report, state store.FileState, text string) error
	RecordHits(ctx context.Context, path string, laws []string) error
}

// Scanner wires the pipeline stages together. Cache is optional. Backend
// names the extractor in cache entries so switching backends re-extracts.
type Scanner struct {
	Extractor extract.Extractor
	Backend   types.ExtractionBackend
	Catalog   *catalog.Catalog
	Cache     Cache
	Out       io.Writer
}

// Result holds the outcome of a scan run.
type Result struct {
	Reports int
	Matched int
	Cached  int
	Failed  int

	// Files lists the written output files.
	Files []string

	// Hits lists the regulations found per report, in report order.
	Hits []types.ReportHits

	Matrices *matrix.Aggregator
}

// HasFailures reports whether any report could not be read.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Run scans every PDF in cfg.ReportsDir sequentially and writes the company,
// year, and company+year matrices to cfg.OutputDir. An empty reports folder
// fails with report.ErrNoReports. A report that cannot be read aborts the
// run unless cfg.KeepGoing is set, in which case it is counted as failed and
// Run returns an error after writing the matrices.
func (s *Scanner) Run(ctx context.Context, cfg types.ScanConfig) (Result, error) {
	w := s.Out
	if w == nil {
		w = io.Discard
	}
	cat := s.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	files := cfg.Files.WithDefaults()

	paths, err := report.Discover(cfg.ReportsDir)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintln(w, "Found reports:")
	for _, p := range paths {
		fmt.Fprintf(w, "  - %s\n", filepath.Base(p))
	}
	fmt.Fprintf(w, "\nScanning %d report(s) for %d regulation(s)...\n\n", len(paths), cat.Len())

	matcher := match.New(cat)
	result := Result{Matrices: matrix.NewAggregator()}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		r := report.Parse(path)
		fmt.Fprintf(w, "report: %s -> company=%q, year=%q\n", r.Name, r.Company, r.Year)

		text, cached, err := s.text(ctx, r)
		if err != nil {
			if !cfg.KeepGoing {
				return result, err
			}
			fmt.Fprintf(w, "failed:  %s (%v)\n", r.Name, err)
			result.Failed++
			continue
		}
		if cached {
			fmt.Fprintf(w, "cached:  %s\n", r.Name)
			result.Cached++
		}

		laws := matcher.Match(normalize.Text(text))
		result.Matrices.Add(r, laws)
		result.Reports++
		if len(laws) > 0 {
			result.Matched++
		}
		result.Hits = append(result.Hits, types.ReportHits{
			File:    r.Name,
			Company: r.Company,
			Year:    r.Year,
			Laws:    append([]string{}, laws...),
		})

		if s.Cache != nil {
			if err := s.Cache.RecordHits(ctx, r.Path, laws); err != nil {
				return result, err
			}
		}
	}

	fmt.Fprintf(w, "\nScan complete: %d scanned, %d with hits, %d cached, %d failed\n\n",
		result.Reports, result.Matched, result.Cached, result.Failed)

	if err := s.writeOutputs(w, cfg.OutputDir, files, cfg.Export, cat.Laws(), &result); err != nil {
		return result, err
	}

	if result.HasFailures() {
		return result, fmt.Errorf("%d report(s) could not be read", result.Failed)
	}
	return result, nil
}

// text returns the raw text of r, from the cache when the file is unchanged
// and was last read by the same backend.
func (s *Scanner) text(ctx context.Context, r types.Report) (string, bool, error) {
	if s.Cache == nil {
		text, err := s.Extractor.Extract(ctx, r.Path)
		if err != nil {
			return "", false, fmt.Errorf("extracting %s: %w", r.Path, err)
		}
		return text, false, nil
	}

	state, err := store.StatFile(r.Path, s.Backend)
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", r.Path, err)
	}

	text, ok, err := s.Cache.CachedText(ctx, r.Path, state)
	if err != nil {
		return "", false, err
	}
	if ok {
		return text, true, nil
	}

	text, err = s.Extractor.Extract(ctx, r.Path)
	if err != nil {
		return "", false, fmt.Errorf("extracting %s: %w", r.Path, err)
	}
	if err := s.Cache.SaveText(ctx, r, state, text); err != nil {
		return "", false, err
	}
	return text, false, nil
}

func (s *Scanner) writeOutputs(w io.Writer, outDir string, files types.OutputFiles, export types.ExportFormat, laws []string, result *Result) error {
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	outputs := []struct {
		label string
		file  string
		m     *matrix.HitMatrix
	}{
		{"company x regulation", files.Company, result.Matrices.ByCompany},
		{"year x regulation", files.Year, result.Matrices.ByYear},
		{"company+year x regulation", files.CompanyYear, result.Matrices.ByCompanyYear},
	}

	for _, o := range outputs {
		path := filepath.Join(outDir, o.file)
		if err := matrix.WriteFile(path, o.m, laws); err != nil {
			return err
		}
		fmt.Fprintf(w, "Matrix %s saved to:\n  %s\n", o.label, path)
		result.Files = append(result.Files, path)
	}

	if export != types.ExportNone {
		path, err := ExportHits(outDir, export, result.Hits)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Hits exported to:\n  %s\n", path)
		result.Files = append(result.Files, path)
	}

	return nil
}
