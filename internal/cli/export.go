package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/absorb/pkg/sink"
)

// exportCommand creates the export command: write a result to one or more files.
func (c *CLI) exportCommand() *cobra.Command {
	var flags requestFlags
	var outputs []string

	cmd := &cobra.Command{
		Use:   "export [formula]",
		Short: "Export a result as JSON, CSV, XLSX or PDF",
		Long: `Export computes a result and writes it to each --output file. The format is
chosen by the file extension: .json (full result), .csv (sampled curve),
.xlsx (summary, elements and curve sheets) or .pdf (printable report).`,
		Example: `  absorb export -f YBa2Cu3O6.5 -o ybco.xlsx -o ybco.pdf`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(outputs) == 0 {
				return fmt.Errorf("at least one --output file is required")
			}
			for _, path := range outputs {
				if _, err := sink.FormatFromPath(path); err != nil {
					return err
				}
			}
			req, err := flags.request(c, cmd, args)
			if err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), req, true)
			if err != nil {
				return err
			}

			for _, path := range outputs {
				if err := sink.Export(res, path); err != nil {
					return err
				}
			}
			printSuccess("Exported %s", res.Absorption.Formula.String())
			for _, path := range outputs {
				printFile(path)
			}
			printWarnings(res.Absorption.Warnings())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVarP(&outputs, "output", "o", nil, "output file (.json, .csv, .xlsx, .pdf); repeatable")
	return cmd
}
