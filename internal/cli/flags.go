package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/absorb/pkg/density"
	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/pipeline"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// requestFlags holds the sample flags shared by compute, scan, export and explore.
type requestFlags struct {
	formula      string
	radius       float64
	spectrum     float64
	spectrumType string
	density      float64
	densityType  string
	resolution   int
	refresh      bool
}

// register adds the sample flags to cmd. Defaults shown in help are the
// built-in ones; configured defaults apply when a flag is not given.
func (f *requestFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formula, "formula", "f", "", "chemical formula, e.g. YBa2Cu3O6.5 (case-sensitive)")
	fs.Float64VarP(&f.radius, "radius", "r", pipeline.DefaultRadius, "capillary radius in mm")
	fs.Float64VarP(&f.spectrum, "spectrum", "s", pipeline.DefaultSpectrum, "wavelength (Å) or energy (keV); required when --spectrum-type changes the unit")
	fs.StringVar(&f.spectrumType, "spectrum-type", string(pipeline.DefaultSpectrumType), "interpretation of --spectrum: Wavelength or Energy")
	fs.Float64VarP(&f.density, "density", "d", pipeline.DefaultDensity, "density (g/cc) or packing fraction (0-1)")
	fs.StringVar(&f.densityType, "density-type", string(pipeline.DefaultDensityType), "interpretation of --density: RHO or PackedFraction")
	fs.IntVar(&f.resolution, "resolution", pipeline.DefaultResolution, "number of sampled curve points")
	fs.BoolVar(&f.refresh, "refresh", false, "recompute even if a cached result exists")
}

// request builds a pipeline request from the configured defaults overlaid
// with every flag the user set explicitly. A formula given as the first
// positional argument is used when --formula is absent.
func (f *requestFlags) request(c *CLI, cmd *cobra.Command, args []string) (pipeline.Request, error) {
	formula := f.formula
	if formula == "" && len(args) > 0 {
		formula = args[0]
	}
	req := c.Config.Request(formula)

	fs := cmd.Flags()
	changed := func(name string) bool { return flagChanged(fs, name) }
	if changed("radius") {
		req.Radius = f.radius
	}
	if changed("spectrum") {
		req.Spectrum = f.spectrum
	}
	if changed("spectrum-type") {
		kind, err := spectrum.ParseKind(f.spectrumType)
		if err != nil {
			return pipeline.Request{}, err
		}
		// The default value is in the unit of the default type.
		if kind != req.SpectrumType && !changed("spectrum") {
			return pipeline.Request{}, errors.Field(errors.ErrCodeInvalidInput, "spectrumType", string(kind),
				"--spectrum-type %s requires --spectrum in %s", kind, kind.Unit())
		}
		req.SpectrumType = kind
	}
	if changed("density") {
		req.Density = f.density
	}
	if changed("density-type") {
		req.DensityType = density.ParseMode(f.densityType)
	}
	if changed("resolution") {
		req.Resolution = f.resolution
	}
	req.Refresh = f.refresh

	if err := req.ValidateAndSetDefaults(); err != nil {
		return pipeline.Request{}, err
	}
	return req, nil
}

// flagChanged reports whether the named flag was set on the command line.
func flagChanged(fs *pflag.FlagSet, name string) bool {
	fl := fs.Lookup(name)
	return fl != nil && fl.Changed
}
