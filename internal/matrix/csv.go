// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package matrix

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

const (
	// rowLabel heads the regulation column.
	rowLabel  = "Gesetz"
	separator = ';'
)

// WriteCSV writes m with one row per law and one column per matrix column.
// laws fixes the row order; cells missing from m are written as 0.
func WriteCSV(w io.Writer, m *HitMatrix, laws []string) error {
	cols := m.Columns()

	cw := csv.NewWriter(w)
	cw.Comma = separator

	header := make([]string, 0, len(cols)+1)
	header = append(header, rowLabel)
	header = append(header, cols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(cols)+1)
	for _, law := range laws {
		row[0] = law
		for i, col := range cols {
			row[i+1] = strconv.Itoa(m.Get(col, law))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %s: %w", law, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes m as CSV to path, replacing any existing file.
func WriteFile(path string, m *HitMatrix, laws []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := WriteCSV(f, m, laws); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
