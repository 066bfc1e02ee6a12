// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package matrix aggregates regulation hits into sparse company, year, and
// company+year tables and writes them as semicolon-delimited CSV.
package matrix

import (
	"sort"

	"github.com/pdiddy/regscan/pkg/types"
)

// HitMatrix is a sparse table of regulation-presence flags keyed by column
// (company, year, or "company year") and regulation. Absent cells are 0.
type HitMatrix struct {
	cells map[string]map[string]struct{}
}

// NewHitMatrix returns an empty matrix.
func NewHitMatrix() *HitMatrix {
	return &HitMatrix{cells: make(map[string]map[string]struct{})}
}

// Set marks law as present for col. Setting a cell twice has no further effect.
func (m *HitMatrix) Set(col, law string) {
	row, ok := m.cells[col]
	if !ok {
		row = make(map[string]struct{})
		m.cells[col] = row
	}
	row[law] = struct{}{}
}

// Get returns 1 when law is present for col, otherwise 0.
func (m *HitMatrix) Get(col, law string) int {
	if _, ok := m.cells[col][law]; ok {
		return 1
	}
	return 0
}

// Columns returns the distinct column keys in ascending order.
func (m *HitMatrix) Columns() []string {
	cols := make([]string, 0, len(m.cells))
	for col := range m.cells {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Aggregator owns the three hit matrices built during a scan.
type Aggregator struct {
	ByCompany     *HitMatrix
	ByYear        *HitMatrix
	ByCompanyYear *HitMatrix
}

// NewAggregator returns an aggregator with three empty matrices.
func NewAggregator() *Aggregator {
	return &Aggregator{
		ByCompany:     NewHitMatrix(),
		ByYear:        NewHitMatrix(),
		ByCompanyYear: NewHitMatrix(),
	}
}

// Add records the regulations matched in r in all three matrices. A report
// without hits leaves the matrices unchanged.
func (a *Aggregator) Add(r types.Report, laws []string) {
	key := r.Key()
	for _, law := range laws {
		a.ByCompany.Set(r.Company, law)
		a.ByYear.Set(r.Year, law)
		a.ByCompanyYear.Set(key, law)
	}
}
