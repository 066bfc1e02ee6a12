// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ExtractionBackend identifies the PDF text extraction tool.
type ExtractionBackend string

const (
	BackendNative    ExtractionBackend = "native"
	BackendPdftotext ExtractionBackend = "pdftotext"
)

// ExportFormat selects the serialization of the per-report hit export.
type ExportFormat string

const (
	ExportNone ExportFormat = ""
	ExportYAML ExportFormat = "yaml"
	ExportJSON ExportFormat = "json"
)

// OutputFiles names the three matrix CSV files written into OutputDir.
type OutputFiles struct {
	// Company is the company x regulation matrix.
	Company string `json:"company" yaml:"company" mapstructure:"company"`

	// Year is the report year x regulation matrix.
	Year string `json:"year" yaml:"year" mapstructure:"year"`

	// CompanyYear is the "company year" x regulation matrix.
	CompanyYear string `json:"company_year" yaml:"company_year" mapstructure:"company_year"`
}

// DefaultOutputFiles returns the file names used when none are configured.
func DefaultOutputFiles() OutputFiles {
	return OutputFiles{
		Company:     "Unternehmen_Gesetze.csv",
		Year:        "Berichtsjahr_Gesetze.csv",
		CompanyYear: "Unternehmen_Berichtsjahr_Gesetze.csv",
	}
}

// WithDefaults fills empty file names from DefaultOutputFiles.
func (f OutputFiles) WithDefaults() OutputFiles {
	d := DefaultOutputFiles()
	if f.Company == "" {
		f.Company = d.Company
	}
	if f.Year == "" {
		f.Year = d.Year
	}
	if f.CompanyYear == "" {
		f.CompanyYear = d.CompanyYear
	}
	return f
}

// ScanConfig holds settings for a scan run.
type ScanConfig struct {
	// ReportsDir is the folder searched (non-recursively) for *.pdf reports.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir" mapstructure:"reports_dir"`

	// OutputDir receives the matrix CSVs and the optional hit export.
	// It is created when missing.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Backend selects the extraction tool: native or pdftotext.
	Backend ExtractionBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// CatalogFile is an optional YAML catalog replacing the built-in one.
	CatalogFile string `json:"catalog,omitempty" yaml:"catalog,omitempty" mapstructure:"catalog"`

	// DBPath is an optional SQLite database caching extracted text and hits.
	DBPath string `json:"db,omitempty" yaml:"db,omitempty" mapstructure:"db"`

	// KeepGoing records unreadable reports as failures instead of aborting.
	KeepGoing bool `json:"keep_going" yaml:"keep_going" mapstructure:"keep_going"`

	// Export additionally writes per-report hits as YAML or JSON.
	Export ExportFormat `json:"export,omitempty" yaml:"export,omitempty" mapstructure:"export"`

	// Files names the three matrix CSVs.
	Files OutputFiles `json:"files" yaml:"files" mapstructure:"files"`
}
