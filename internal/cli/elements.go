package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/absorb/pkg/spectrum"
)

// elementsCommand creates the elements command: list the element table.
func (c *CLI) elementsCommand() *cobra.Command {
	var heavyOnly bool

	cmd := &cobra.Command{
		Use:   "elements",
		Short: "List the supported elements and their reliable wavelength ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := c.newEngine()
			if err != nil {
				return err
			}
			t := newTable("Z", "Symbol", "Name", "Weight", "K edge (keV)", "Orbitals", "Reliable range")
			count := 0
			for _, el := range engine.Table().Elements() {
				if heavyOnly && el.Z < spectrum.HeavyMinZ {
					continue
				}
				kEdge := "-"
				if el.KEdge > 0 {
					kEdge = fmt.Sprintf("%.3f", el.KEdge)
				}
				rng := spectrum.ElementRange(el.Z).String()
				if el.ZeroAbsorption() {
					rng = "no absorption"
				}
				t.Row(
					fmt.Sprintf("%d", el.Z),
					el.Symbol,
					el.Name,
					fmt.Sprintf("%.4f", el.Weight),
					kEdge,
					fmt.Sprintf("%d", len(el.Orbitals)),
					rng,
				)
				count++
			}
			printTable(t.Render())
			printDetail("%d elements", count)
			return nil
		},
	}

	cmd.Flags().BoolVar(&heavyOnly, "heavy", false, fmt.Sprintf("only elements with Z >= %d (narrowed ranges)", spectrum.HeavyMinZ))
	return cmd
}
