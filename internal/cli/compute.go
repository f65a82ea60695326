package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/absorb/pkg/pipeline"
	"github.com/matzehuels/absorb/pkg/sink"
)

// computeCommand creates the compute command: muR at one spectral point.
func (c *CLI) computeCommand() *cobra.Command {
	var flags requestFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compute [formula]",
		Short: "Compute muR of a sample at one wavelength or energy",
		Example: `  absorb compute -f YBa2Cu3O6.5 -r 0.4 -s 0.41 -d 0.5
  absorb compute Fe2O3 --spectrum 17.48 --spectrum-type Energy --density 5.24 --density-type RHO`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(c, cmd, args)
			if err != nil {
				return err
			}
			res, err := c.execute(cmd.Context(), req, !asJSON)
			if err != nil {
				return err
			}
			if asJSON {
				return sink.WriteJSON(stdout, res)
			}

			printSummary(res)
			printNewline()
			printTable(elementTable(res.Absorption.Requested))
			printThresholds(res.Absorption.Thresholds)
			printWarnings(res.Absorption.Warnings())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

// execute runs req through a fresh runner, showing a spinner when interactive.
func (c *CLI) execute(ctx context.Context, req pipeline.Request, interactive bool) (*pipeline.Result, error) {
	runner, err := c.newRunner()
	if err != nil {
		return nil, err
	}
	defer runner.Close()

	var spin *Spinner
	if interactive && isTerminal() {
		spin = newSpinnerWithContext(ctx, "Computing "+req.Formula+"...")
		spin.Start()
	}
	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Execute(ctx, req)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, err
	}
	if res.CacheHit {
		prog.done("Loaded cached result")
	} else {
		prog.done(fmt.Sprintf("Sampled %d points", res.Stats.Points))
	}
	return res, nil
}
