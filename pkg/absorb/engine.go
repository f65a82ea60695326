package absorb

import (
	"math"

	"github.com/matzehuels/absorb/pkg/atomdata"
	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/formula"
	"github.com/matzehuels/absorb/pkg/fprime"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// Physical constants for the mass attenuation coefficient
// μ/ρ = 2·r_e·λ·f''·N_A / A.
const (
	ClassicalElectronRadius = 2.8179403262e-13 // cm
	Avogadro                = 6.02214076e23    // mol⁻¹
	cmPerAngstrom           = 1e-8
	mmPerCm                 = 10
)

// ElementResult is one element's share of the attenuation at a spectral point.
type ElementResult struct {
	Symbol    string  `json:"symbol"`
	Z         int     `json:"z"`
	Occupancy float64 `json:"occupancy"`

	// FPrime and FDoublePrime are the anomalous scattering factors.
	FPrime       float64 `json:"f_prime"`
	FDoublePrime float64 `json:"f_double_prime"`

	// MassAttenuation is the element's own mass attenuation coefficient in cm²/g.
	MassAttenuation float64 `json:"mass_attenuation"`

	// WeightFraction is the element's share of the formula weight.
	WeightFraction float64 `json:"weight_fraction"`

	// LinearAttenuation (cm⁻¹) and MuR are the element's contributions to the
	// sample totals. They sum to the totals over all elements.
	LinearAttenuation float64 `json:"linear_attenuation"`
	MuR               float64 `json:"mu_r"`

	// ZeroAbsorption marks H and He, which contribute nothing.
	ZeroAbsorption bool `json:"zero_absorption"`
	Reliable       bool `json:"reliable"`
}

// PointResult is the attenuation of a sample at one spectral point.
type PointResult struct {
	Point spectrum.Point `json:"point"`

	Elements []ElementResult `json:"elements"`

	// MassAttenuation is the sample mass attenuation coefficient in cm²/g.
	MassAttenuation float64 `json:"mass_attenuation"`

	// LinearAttenuation is μ in cm⁻¹.
	LinearAttenuation float64 `json:"linear_attenuation"`

	// MuR is μ times the capillary radius, dimensionless.
	MuR float64 `json:"mu_r"`

	// Transmission is exp(-2·muR), the fraction transmitted along a diameter.
	Transmission float64 `json:"transmission"`

	Class    Class            `json:"class"`
	Reliable bool             `json:"reliable"`
	Warnings []fprime.Warning `json:"warnings,omitempty"`
}

// Engine computes attenuation for formulas against an element table.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	table *atomdata.Table
}

// NewEngine returns an engine over t, or over [atomdata.Default] if t is nil.
func NewEngine(t *atomdata.Table) *Engine {
	if t == nil {
		t = atomdata.Default()
	}
	return &Engine{table: t}
}

// Table returns the element table the engine evaluates against.
func (e *Engine) Table() *atomdata.Table { return e.table }

// component is a formula entry resolved against the table.
type component struct {
	el  *atomdata.Element
	occ float64
}

// resolve looks up every formula element and returns the formula weight.
func (e *Engine) resolve(f formula.Formula) ([]component, float64, error) {
	if len(f) == 0 {
		return nil, 0, errors.Field(errors.ErrCodeInvalidFormula, "formula", "", "formula is empty")
	}
	comps := make([]component, len(f))
	var mw float64
	for i, c := range f {
		el, err := e.table.Lookup(c.Symbol)
		if err != nil {
			return nil, 0, err
		}
		comps[i] = component{el: el, occ: c.Occupancy}
		mw += c.Occupancy * el.Weight
	}
	if mw <= 0 {
		return nil, 0, errors.Field(errors.ErrCodeInvalidFormula, "formula", f.String(), "formula weight must be positive")
	}
	return comps, mw, nil
}

// validateSample checks density (g/cc) and radius (mm).
func validateSample(density, radius float64) error {
	if math.IsNaN(density) || math.IsInf(density, 0) || density < 0 {
		return errors.Field(errors.ErrCodeInvalidDensity, "density", density, "density must be a non-negative finite number (got %g)", density)
	}
	return errors.ValidatePositive(errors.ErrCodeInvalidRadius, "radius", radius)
}


// ComputeAt returns the per-element and total attenuation of formula f at
// density (g/cc) in a capillary of radius (mm) at point p.
//
// All inputs are validated before any evaluation. A point inside a breakdown
// region of a heavy element is computed and flagged unreliable, never
// rejected.
func (e *Engine) ComputeAt(f formula.Formula, density, radius float64, p spectrum.Point) (*PointResult, error) {
	comps, mw, err := e.resolve(f)
	if err != nil {
		return nil, err
	}
	if err := validateSample(density, radius); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return e.computeAt(comps, mw, density, radius, p), nil
}

func (e *Engine) computeAt(comps []component, mw, density, radius float64, p spectrum.Point) *PointResult {
	res := &PointResult{
		Point:    p,
		Elements: make([]ElementResult, len(comps)),
		Reliable: true,
	}
	energy := p.Energy()
	lengthCm := radius / mmPerCm

	for i, c := range comps {
		er := ElementResult{
			Symbol:         c.el.Symbol,
			Z:              c.el.Z,
			Occupancy:      c.occ,
			WeightFraction: c.occ * c.el.Weight / mw,
			ZeroAbsorption: c.el.ZeroAbsorption(),
			Reliable:       true,
		}
		if !er.ZeroAbsorption {
			sf := fprime.Evaluate(c.el, energy)
			er.FPrime = sf.FPrime
			er.FDoublePrime = sf.FDoublePrime
			er.Reliable = sf.Reliable
			er.MassAttenuation = massAttenuation(sf.FDoublePrime, p.Wavelength, c.el.Weight)
			er.LinearAttenuation = er.WeightFraction * er.MassAttenuation * density
			er.MuR = er.LinearAttenuation * lengthCm

			res.MassAttenuation += er.WeightFraction * er.MassAttenuation
			res.Warnings = append(res.Warnings, sf.Warnings...)
			res.Reliable = res.Reliable && sf.Reliable
		}
		res.Elements[i] = er
	}

	res.LinearAttenuation = res.MassAttenuation * density
	res.MuR = res.LinearAttenuation * lengthCm
	res.Transmission = Transmission(res.MuR)
	res.Class = Classify(res.MuR)
	return res
}

// massAttenuation converts f'' at lambda Å to cm²/g for atomic weight a.
func massAttenuation(fpp, lambda, a float64) float64 {
	return 2 * ClassicalElectronRadius * lambda * cmPerAngstrom * fpp * Avogadro / a
}

// Transmission returns the fraction of the beam transmitted through a
// cylindrical sample along its diameter, exp(-2·muR).
func Transmission(muR float64) float64 {
	return math.Exp(-2 * muR)
}
