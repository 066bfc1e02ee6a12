// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/regscan/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Show the regulation catalog",
	Long: `Catalog prints the regulations regscan detects and the keywords used for
each one. Use --format yaml to obtain a starting point for a custom catalog
file passed to scan --catalog.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{"catalog": "catalog"})
	},
	RunE: runCatalog,
}

func runCatalog(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cat, err := loadCatalog(viper.GetString("catalog"))
	if err != nil {
		return err
	}
	return formatCatalog(cmd.OutOrStdout(), cat, format)
}

func formatCatalog(w io.Writer, cat *catalog.Catalog, format string) error {
	switch format {
	case "table", "":
		for _, law := range cat.Laws() {
			fmt.Fprintln(w, law)
			for _, kw := range cat.Keywords(law) {
				fmt.Fprintf(w, "  - %s\n", kw)
			}
		}
		fmt.Fprintf(w, "\n%d regulations\n", cat.Len())
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cat.File()); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cat.File())
	default:
		return fmt.Errorf("unsupported format %q: use %s", format, strings.Join([]string{"table", "yaml", "json"}, ", "))
	}
}

func init() {
	catalogCmd.Flags().String("catalog", "", "regulation catalog YAML file (default: built-in catalog)")
	catalogCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(catalogCmd)
}
