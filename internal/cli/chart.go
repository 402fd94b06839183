package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/medalboard/internal/adapters/render"
	"github.com/okian/medalboard/internal/domain/chart"
	"github.com/okian/medalboard/internal/domain/selection"
)

const outputFileMode = 0o644

func newChartCmd(a *app) *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "chart <category> <kind>",
		Short: "Print a chart descriptor",
		Example: `  medalctl chart overview data -p year=2008 -p sort=Gold -p country=China
  medalctl chart economy heatmap -p start=1984 -p end=2016 -p metrics=GDP,Gold -f yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.render(cmd, args, params)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", w)
			}
			return a.encode(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "selection parameter as key=value, repeatable")
	return cmd
}

func newImageCmd(a *app) *cobra.Command {
	var (
		params []string
		output string
		kind   string
	)
	cmd := &cobra.Command{
		Use:     "image <category> <kind>",
		Aliases: []string{"png"},
		Short:   "Draw a chart to a PNG, or a Sankey diagram to SVG",
		Example: `  medalctl png host regression -p country=Greece -o greece.png
  medalctl image events sankey -p year=2008 -p country=China -o china.svg`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.render(cmd, args, params)
			if err != nil {
				return err
			}
			if kind == "" {
				kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
			}

			var buf bytes.Buffer
			switch kind {
			case "", "png":
				err = render.NewPNG().Render(&buf, res)
			case "svg":
				err = render.SankeySVG(cmd.Context(), &buf, res)
			default:
				return fmt.Errorf("--type %q must be png or svg: %w", kind, ErrUsage)
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), outputFileMode); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", output, buf.Len())
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "selection parameter as key=value, repeatable")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write")
	cmd.Flags().StringVar(&kind, "type", "", "image type: png or svg (default from the output extension)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) render(cmd *cobra.Command, args, pairs []string) (chart.Result, error) {
	params, err := parseParams(pairs)
	if err != nil {
		return chart.Result{}, err
	}
	sel, err := selection.Parse(args[0], args[1], params)
	if err != nil {
		return chart.Result{}, err
	}
	return a.dash.Render(cmd.Context(), sel)
}
