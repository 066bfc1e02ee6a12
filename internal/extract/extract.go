// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls raw text out of PDF reports with pluggable backends.
// Page texts are joined with newlines; pages without text are skipped.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/regscan/pkg/types"
)

// pageSeparator joins the text of consecutive pages.
const pageSeparator = "\n"

// Extractor returns the raw text of a PDF. Different backends (native Go
// parser, pdftotext) implement this interface.
type Extractor interface {
	// Extract reads the PDF at path and returns its text, pages joined by
	// newlines.
	Extract(ctx context.Context, path string) (string, error)
}

// New returns the extractor for backend. An empty backend selects the
// native extractor.
func New(backend types.ExtractionBackend) (Extractor, error) {
	switch backend {
	case types.BackendNative, "":
		return NewNativeExtractor(), nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor()
	default:
		return nil, fmt.Errorf("unsupported extraction backend %q: use %s or %s",
			backend, types.BackendNative, types.BackendPdftotext)
	}
}

// joinPages concatenates non-empty page texts.
func joinPages(pages []string) string {
	kept := pages[:0:0]
	for _, p := range pages {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, pageSeparator)
}
