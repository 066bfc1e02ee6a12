// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/regscan/internal/catalog"
	"github.com/pdiddy/regscan/internal/extract"
	"github.com/pdiddy/regscan/internal/scan"
	"github.com/pdiddy/regscan/internal/store"
	"github.com/pdiddy/regscan/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan report PDFs and write regulation hit matrices",
	Long: `Scan reads every *.pdf in the reports directory, extracts and normalizes
its text, and checks it against the regulation catalog. A regulation counts as
referenced when any of its keywords occurs in the report.

Three CSV matrices (regulations as rows) are written to the output directory:
by company, by report year, and by company and year. With --db, extracted
text is cached in SQLite so unchanged PDFs are not parsed again.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"reports_dir": "reports-dir",
			"output_dir":  "output-dir",
			"backend":     "backend",
			"catalog":     "catalog",
			"db":          "db",
			"keep_going":  "keep-going",
			"export":      "export",
		})
	},
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	var cfg types.ScanConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}

	cat, err := loadCatalog(cfg.CatalogFile)
	if err != nil {
		return err
	}

	if cfg.Backend == "" {
		cfg.Backend = types.BackendNative
	}
	ext, err := extract.New(cfg.Backend)
	if err != nil {
		return err
	}

	scanner := &scan.Scanner{
		Extractor: ext,
		Backend:   cfg.Backend,
		Catalog:   cat,
		Out:       cmd.OutOrStdout(),
	}

	if cfg.DBPath != "" {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		scanner.Cache = db
	}

	_, err = scanner.Run(cmd.Context(), cfg)
	return err
}

// loadCatalog returns the catalog at path, or the built-in one when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func init() {
	defaults := types.DefaultOutputFiles()
	viper.SetDefault("files.company", defaults.Company)
	viper.SetDefault("files.year", defaults.Year)
	viper.SetDefault("files.company_year", defaults.CompanyYear)

	scanCmd.Flags().String("reports-dir", "reports", "directory containing the report PDFs")
	scanCmd.Flags().String("output-dir", "output", "directory for the matrix CSV files")
	scanCmd.Flags().String("backend", string(types.BackendNative), "text extraction backend: native or pdftotext")
	scanCmd.Flags().String("catalog", "", "regulation catalog YAML file (default: built-in catalog)")
	scanCmd.Flags().String("db", "", "SQLite database caching extracted text and hits")
	scanCmd.Flags().Bool("keep-going", false, "skip unreadable reports instead of aborting")
	scanCmd.Flags().String("export", "", "also export per-report hits: yaml or json")

	rootCmd.AddCommand(scanCmd)
}
