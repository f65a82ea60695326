package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/absorb/pkg/sink"
)

// defaultScanRows is the number of curve rows printed by scan.
const defaultScanRows = 25

// scanCommand creates the scan command: the sampled muR curve as a table.
func (c *CLI) scanCommand() *cobra.Command {
	var flags requestFlags
	var rows int
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "scan [formula]",
		Short: "Print muR across the valid wavelength range",
		Long: `Scan samples muR evenly in wavelength across the range over which every
element of the formula is reliably tabulated, and prints the total and
per-element contributions. --spectrum selects the point reported in the
header and does not affect the sampled range.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(c, cmd, args)
			if err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), req, !asCSV)
			if err != nil {
				return err
			}
			if asCSV {
				return sink.WriteCSV(stdout, res)
			}

			a := res.Absorption
			printInfo("%s over %s, %d points", StyleTitle.Render(a.Formula.String()), a.Curve.Range, len(a.Curve.Points))
			mus := make([]float64, len(a.Curve.Points))
			for i, p := range a.Curve.Points {
				mus[i] = p.MuR
			}
			printDetail("μR %s", sparkline(mus, 60))
			printTable(curveTable(a.Curve, rows))
			printThresholds(a.Thresholds)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&rows, "points", defaultScanRows, "maximum number of rows to print")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print every sampled point as CSV")
	return cmd
}
