// Package absorb computes X-ray absorption of powder samples in capillaries.
//
// For each absorbing element the mass attenuation coefficient follows from
// its imaginary anomalous scattering factor:
//
//	(μ/ρ)ᵢ = 2·r_e·λ·f''ᵢ·N_A / Aᵢ
//
// The sample coefficient is the weight-fraction average over the formula, and
// muR = (μ/ρ)·ρ·R with R the capillary radius. H and He are counted in the
// formula weight but absorb nothing.
//
// [Engine.ComputeAt] evaluates a single spectral point. [Engine.Sample] adds a
// muR curve across the wavelength range in which every element of the formula
// is reliably tabulated, along with the reference thresholds muR = 1 (ideal)
// and muR = 5 (impractical).
//
//	eng := absorb.NewEngine(nil)
//	f := formula.MustParse("YBa2Cu3O6.5")
//	res, err := eng.Sample(ctx, f, 4.37, 0.40, spectrum.FromWavelength(0.41), absorb.DefaultResolution)
//
// Results inside a documented breakdown region of the tables are returned with
// Reliable set to false and warnings naming the element and threshold.
package absorb
