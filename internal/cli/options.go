package cli

import (
	"github.com/spf13/cobra"
)

func newOptionsCmd(a *app) *cobra.Command {
	var sankeyYear int
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the values every selector accepts",
		Long: `Lists categories, chart kinds, tiers, metrics, years, countries and sports.
With --sankey-year it lists the teams offered for that Sankey year instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("sankey-year") {
				teams, err := a.dash.SankeyCountries(cmd.Context(), sankeyYear)
				if err != nil {
					return err
				}
				return a.encode(cmd.OutOrStdout(), teams)
			}
			menu, err := a.dash.Options(cmd.Context())
			if err != nil {
				return err
			}
			return a.encode(cmd.OutOrStdout(), menu)
		},
	}
	cmd.Flags().IntVar(&sankeyYear, "sankey-year", 0, "list Sankey countries for this year (0 means the latest)")
	return cmd
}
