// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the regscan CLI. regscan scans a folder
// of PDF sustainability reports for references to regulations and reporting
// standards and writes company, year, and company+year hit matrices as CSV.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the regscan CLI.
var rootCmd = &cobra.Command{
	Use:   "regscan",
	Short: "Detect regulations referenced in sustainability reports",
	Long: `regscan scans a folder of PDF sustainability reports named
"<Company> <Year...>.pdf" and detects which regulations and reporting
standards (CSRD, ESRS, GHG Protocol, GRI, EU Taxonomy, ...) each report
references, using keyword matching on the normalized report text.

The scan subcommand writes three semicolon-delimited CSV matrices: company x
regulation, year x regulation, and company+year x regulation.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./regscan.yaml or ~/.config/regscan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("regscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "regscan"))
		}
	}

	viper.SetEnvPrefix("REGSCAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds each named flag of cmd to its viper key so that flags
// override config file and environment values. Binding happens per command
// at run time because several commands share keys such as "db".
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q for key %q", flag, key)
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
