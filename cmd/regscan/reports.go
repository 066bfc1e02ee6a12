// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/regscan/internal/store"
	"github.com/pdiddy/regscan/pkg/types"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Query reports recorded by previous scans",
	Long: `Reports reads the SQLite database written by scan --db. With --law it
lists the reports whose last scan referenced that regulation; without it, it
lists every referenced regulation and its report count.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{"db": "db"})
	},
	RunE: runReports,
}

func runReports(cmd *cobra.Command, args []string) error {
	dbPath := viper.GetString("db")
	if dbPath == "" {
		return fmt.Errorf("database required: pass --db or set db in the config file")
	}
	law, _ := cmd.Flags().GetString("law")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	w := cmd.OutOrStdout()
	if law == "" {
		counts, err := db.Laws(cmd.Context())
		if err != nil {
			return err
		}
		return formatLawCounts(w, counts, jsonOutput)
	}

	reports, err := db.ReportsFor(cmd.Context(), law)
	if err != nil {
		return err
	}
	return formatReports(w, law, reports, jsonOutput)
}

func formatLawCounts(w io.Writer, counts []store.LawCount, jsonOutput bool) error {
	if jsonOutput {
		return encodeJSON(w, counts)
	}
	if len(counts) == 0 {
		fmt.Fprintln(w, "No hits recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-55s  %s\n", "Regulation", "Reports")
	fmt.Fprintln(w, strings.Repeat("-", 64))
	for _, c := range counts {
		fmt.Fprintf(w, "%-55s  %d\n", c.Law, c.Reports)
	}
	return nil
}

func formatReports(w io.Writer, law string, reports []types.Report, jsonOutput bool) error {
	if jsonOutput {
		if reports == nil {
			reports = []types.Report{}
		}
		return encodeJSON(w, reports)
	}
	if len(reports) == 0 {
		fmt.Fprintf(w, "No reports reference %s.\n", law)
		return nil
	}

	fmt.Fprintf(w, "%-25s  %-8s  %s\n", "Company", "Year", "File")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, r := range reports {
		company := r.Company
		if len(company) > 25 {
			company = company[:22] + "..."
		}
		fmt.Fprintf(w, "%-25s  %-8s  %s\n", company, r.Year, r.Name)
	}
	fmt.Fprintf(w, "\n%d reports\n", len(reports))
	return nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	reportsCmd.Flags().String("db", "", "SQLite database written by scan --db")
	reportsCmd.Flags().String("law", "", "regulation name to look up")
	reportsCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(reportsCmd)
}
