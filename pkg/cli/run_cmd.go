package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"acs-redbook/internal/app"
	"acs-redbook/internal/config"
	"acs-redbook/internal/pipeline"
)

func newRunCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch every configured table and write the workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			})).With("run_id", uuid.NewString())
			for _, w := range cfg.Warnings {
				logger.Warn(w)
			}
			logger.Info("starting run",
				"year", cfg.Year, "survey", cfg.Survey, "output", cfg.OutputFile)

			a, err := app.New(app.Deps{Cfg: cfg, Logger: logger})
			if err != nil {
				return err
			}

			result := a.Driver.Run(cmd.Context())
			printSummary(cmd.OutOrStdout(), result, len(a.Recipes))

			// Only a total wipeout, or a failed write, fails the run.
			if result.Succeeded() == 0 {
				return fmt.Errorf("all %d tables failed; nothing to write", len(a.Recipes))
			}
			if err := a.Writer.Write(result.OrderedTables(), cfg.OutputFile); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Output saved to %s\n", cfg.OutputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfg.OutputFile, "output", "o", cfg.OutputFile, "Output xlsx path")
	return cmd
}

func printSummary(w io.Writer, result *pipeline.Result, total int) {
	fmt.Fprintf(w, "Success: %d/%d\n", result.Succeeded(), total)
	fmt.Fprintf(w, "Failed:  %d/%d\n", len(result.Failures), total)
	for _, f := range result.Failures {
		fmt.Fprintf(w, "  %s - %s (%s failure)\n", f.TableID, f.Name, f.Class)
	}
}
