// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// UnknownYear is the year placeholder for reports whose filename carries no
// four-digit year.
const UnknownYear = "Unknown"

// Report identifies a sustainability report on disk. Company and Year are
// derived from the filename ("<Company> <Year...>.pdf") and never persisted
// on their own.
type Report struct {
	// Name is the base filename including the .pdf extension.
	Name string `json:"name" yaml:"name"`

	// Path is the filesystem path to the PDF.
	Path string `json:"path" yaml:"path"`

	// Company is the first space-separated token of the filename stem.
	Company string `json:"company" yaml:"company"`

	// Year is the first four-digit run after the company, or UnknownYear.
	Year string `json:"year" yaml:"year"`
}

// Key returns the composite "company year" row key.
func (r Report) Key() string {
	return r.Company + " " + r.Year
}

// ReportHits lists the regulations detected in one report.
type ReportHits struct {
	File    string   `json:"file" yaml:"file"`
	Company string   `json:"company" yaml:"company"`
	Year    string   `json:"year" yaml:"year"`
	Laws    []string `json:"laws" yaml:"laws"`
}
