// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// PdftotextExtractor runs poppler's pdftotext binary and splits its output
// at form feeds, which pdftotext emits between pages.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor verifies that pdftotext is on PATH.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	return newPdftotextExtractor(&osExecutor{})
}

func newPdftotextExtractor(exec executor) (*PdftotextExtractor, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not available: %w", binPdftotext, err)
	}
	return &PdftotextExtractor{exec: exec}, nil
}

// Extract converts the PDF at path to UTF-8 text on stdout.
func (p *PdftotextExtractor) Extract(ctx context.Context, path string) (string, error) {
	var out bytes.Buffer
	args := []string{"-enc", "UTF-8", path, "-"}
	if err := p.exec.Run(ctx, binPdftotext, args, &out); err != nil {
		return "", fmt.Errorf("running %s on %s: %w", binPdftotext, path, err)
	}

	pages := strings.Split(out.String(), "\f")
	for i, page := range pages {
		pages[i] = strings.TrimRight(page, "\n")
	}
	return joinPages(pages), nil
}
