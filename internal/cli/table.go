package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/okian/medalboard/internal/adapters/render"
	service "github.com/okian/medalboard/internal/app"
	"github.com/okian/medalboard/internal/domain/model"
)

func newTableCmd(a *app) *cobra.Command {
	var (
		year int
		sort string
		xlsx string
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the medal table of a games year",
		Example: `  medalctl table --year 2008 --sort Total
  medalctl table --year 2008 --xlsx medals-2008.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var tier model.Tier
			if sort != "" {
				t, err := model.ParseTier(sort)
				if err != nil {
					return fmt.Errorf("--sort: %v: %w", err, ErrUsage)
				}
				tier = t
			}
			mt, err := a.dash.MedalTable(cmd.Context(), year, tier)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, mt.Title(a.dash.Season()))
			grid := mt.Table()
			tw := tablewriter.NewWriter(out)
			tw.SetHeader(grid.Columns)
			tw.SetAlignment(tablewriter.ALIGN_RIGHT)
			tw.AppendBulk(grid.Rows)
			tw.Render()

			if xlsx == "" {
				return nil
			}
			return writeWorkbook(xlsx, mt, a.dash.Season())
		},
	}
	cmd.Flags().IntVar(&year, "year", 0, "games year (default the first one)")
	cmd.Flags().StringVar(&sort, "sort", "", "sort tier: Gold, Silver, Bronze or Total")
	cmd.Flags().StringVar(&xlsx, "xlsx", "", "also export the table to this workbook")
	return cmd
}

func writeWorkbook(path string, mt service.MedalTable, season string) error {
	sheet := render.Sheet{
		Name:    fmt.Sprintf("Medals %d", mt.Year),
		Title:   mt.Title(season),
		Columns: []string{"Country_Name", "Gold", "Silver", "Bronze", "Total"},
		Bars: []render.DataBar{
			{Column: 1, Color: service.TierColors[0]},
			{Column: 2, Color: service.TierColors[1]},
			{Column: 3, Color: service.TierColors[2]},
		},
	}
	for _, r := range mt.Rows {
		sheet.Rows = append(sheet.Rows, []any{r.Country, r.Gold, r.Silver, r.Bronze, r.Total()})
	}

	var buf bytes.Buffer
	if err := render.XLSX(&buf, sheet); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), outputFileMode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
