package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"acs-redbook/internal/config"
	"acs-redbook/internal/transform"
)

func newTablesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the configured output tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipes := transform.Defaults()
			if cfg.RecipesFile != "" {
				loaded, err := transform.LoadRecipes(cfg.RecipesFile)
				if err != nil {
					return err
				}
				recipes = loaded
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tACS TABLE\tGEOGRAPHY\tNAME")
			for _, r := range recipes {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.TableID, r.Geography, r.Name)
			}
			return tw.Flush()
		},
	}
}
