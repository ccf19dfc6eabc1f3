// Package cli implements the redbook command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"acs-redbook/internal/config"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cfg := config.Default()

	rootCmd := &cobra.Command{
		Use:   "redbook",
		Short: "Census ACS Redbook scraper",
		Long: "Fetches ACS survey tables from the Census API, resolves variable codes by\n" +
			"label search, derives and ranks the Redbook columns, and writes a formatted\n" +
			"spreadsheet with one sheet per table.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Precedence: flag > env > default.
			if !cmd.Flags().Changed("api-key") {
				if v := os.Getenv("ACS_API_KEY"); v != "" {
					cfg.APIKey = v
				}
			}
			if !cmd.Flags().Changed("base-url") {
				if v := os.Getenv("ACS_BASE_URL"); v != "" {
					cfg.BaseURL = v
				}
			}
			if !cmd.Flags().Changed("log-level") {
				if v := os.Getenv("ACS_LOG_LEVEL"); v != "" {
					cfg.LogLevel = v
				}
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&cfg.Year, "year", cfg.Year, "ACS data year")
	pf.StringVar(&cfg.Survey, "survey", cfg.Survey, "Survey variant (acs1 or acs5)")
	pf.StringVar(&cfg.APIKey, "api-key", "", "Census API key (env: ACS_API_KEY)")
	pf.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Census API host")
	pf.StringVar(&cfg.RecipesFile, "recipes", "", "YAML file overriding the built-in table recipes")
	pf.IntVar(&cfg.MaxRetries, "max-retries", cfg.MaxRetries, "Transport retries per table fetch")
	pf.DurationVar(&cfg.RetryDelay, "retry-delay", cfg.RetryDelay, "Delay between fetch attempts")
	pf.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "Per-request HTTP timeout")
	pf.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error; env: ACS_LOG_LEVEL)")

	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newTablesCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
