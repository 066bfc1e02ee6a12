// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// NativeExtractor reads page text with the pure-Go ledongthuc/pdf parser.
type NativeExtractor struct{}

// NewNativeExtractor creates the default extractor.
func NewNativeExtractor() *NativeExtractor {
	return &NativeExtractor{}
}

// Extract opens the PDF at path, collects the plain text of every page, and
// closes the file before returning. Malformed documents that make the parser
// panic are reported as errors.
func (n *NativeExtractor) Extract(ctx context.Context, path string) (text string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	// pdf.NewReader and the page decoder both panic on malformed input.
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("parsing PDF %s: %v", path, p)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", path, err)
	}
	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("opening PDF %s: %w", path, err)
	}

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, path, err)
		}
		pages = append(pages, content)
	}

	return joinPages(pages), nil
}
