// Package pipeline provides the request-level entry point to the absorption
// engine.
//
// It turns raw request parameters into validated engine inputs, runs the
// spectrum sampler, and caches results so that the CLI and any other
// presentation layer share the same defaults, validation and error texts.
//
// # Flow
//
//  1. Validate: formula syntax, radius, spectrum range, density mode and
//     resolution, all before any numeric work
//  2. Resolve: look up every element and resolve the sample density
//  3. Compute: sample muR across the valid range plus the requested point
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, c, nil, logger)
//	req := pipeline.Request{
//	    Formula:      "YBa2Cu3O6.5",
//	    Radius:       0.40,
//	    Spectrum:     0.41,
//	    SpectrumType: spectrum.Wavelength,
//	    Density:      0.5,
//	    DensityType:  density.PackedFraction,
//	}
//	result, err := runner.Execute(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Absorption.Requested.MuR)
package pipeline

import (
	"time"

	"github.com/matzehuels/absorb/pkg/absorb"
	"github.com/matzehuels/absorb/pkg/cache"
	"github.com/matzehuels/absorb/pkg/density"
	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/formula"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and other front ends
// =============================================================================

const (
	// DefaultRadius is the capillary radius in mm.
	DefaultRadius = 0.40

	// DefaultSpectrum is the spectral value, in Å for the default spectrum type.
	DefaultSpectrum = 0.41

	// DefaultSpectrumType is the interpretation of Spectrum.
	DefaultSpectrumType = spectrum.Wavelength

	// DefaultDensity is the density value, a packing fraction for the
	// default density type.
	DefaultDensity = 0.5

	// DefaultDensityType is the interpretation of Density.
	DefaultDensityType = density.PackedFraction

	// DefaultResolution is the number of sampled curve points.
	DefaultResolution = absorb.DefaultResolution
)

// =============================================================================
// Request
// =============================================================================

// Request holds the raw parameters of one computation.
// This struct supports JSON serialization.
type Request struct {
	Formula      string        `json:"formula"`
	Radius       float64       `json:"radius"`        // mm
	Spectrum     float64       `json:"spectrum"`      // Å or keV per SpectrumType
	SpectrumType spectrum.Kind `json:"spectrum_type"` // Wavelength or Energy
	Density      float64       `json:"density"`       // g/cc or packing fraction per DensityType
	DensityType  density.Mode  `json:"density_type"`  // RHO or PackedFraction
	Resolution   int           `json:"resolution,omitempty"`

	// Refresh bypasses the cache read; the fresh result is still stored.
	Refresh bool `json:"-"`

	// Filled by ValidateAndSetDefaults.
	formula   formula.Formula
	point     spectrum.Point
	validated bool
}

// ValidateAndSetDefaults checks every field and applies defaults for the
// optional ones (types and resolution). Numeric fields have no implicit
// default: a zero radius is an error, not a request for 0.40 mm.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (r *Request) ValidateAndSetDefaults() error {
	if r.validated {
		return nil
	}
	if r.SpectrumType == "" {
		r.SpectrumType = DefaultSpectrumType
	}
	if r.DensityType == "" {
		r.DensityType = DefaultDensityType
	}
	if r.Resolution == 0 {
		r.Resolution = DefaultResolution
	}

	f, err := formula.Parse(r.Formula)
	if err != nil {
		return err
	}
	if err := errors.ValidatePositive(errors.ErrCodeInvalidRadius, "radius", r.Radius); err != nil {
		return err
	}
	p, err := spectrum.New(r.Spectrum, r.SpectrumType)
	if err != nil {
		return err
	}
	if err := r.DensitySpec().Validate(); err != nil {
		return err
	}
	if err := errors.ValidateResolution(r.Resolution); err != nil {
		return err
	}

	r.formula = f
	r.point = p
	r.validated = true
	return nil
}

// ParsedFormula returns the formula parsed by ValidateAndSetDefaults.
func (r *Request) ParsedFormula() formula.Formula { return r.formula }

// Point returns the requested spectral point parsed by ValidateAndSetDefaults.
func (r *Request) Point() spectrum.Point { return r.point }

// DensitySpec returns the density input of the request.
func (r *Request) DensitySpec() density.Spec {
	return density.Spec{Mode: r.DensityType, Value: r.Density}
}

// CacheKeyOpts returns the normalized fields that determine the result.
// The formula is canonicalized so that "Al2 O3" and "Al2O3" share an entry.
func (r *Request) CacheKeyOpts() cache.ResultKeyOpts {
	name := r.Formula
	if r.formula != nil {
		name = r.formula.String()
	}
	return cache.ResultKeyOpts{
		Formula:      name,
		Radius:       r.Radius,
		Spectrum:     r.Spectrum,
		SpectrumType: string(r.SpectrumType),
		Density:      r.Density,
		DensityType:  string(r.DensityType),
		Resolution:   r.Resolution,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of one request.
type Result struct {
	// ID identifies this result for presentation layers that persist
	// rendered output. It is unique per request, including cache hits.
	ID string `json:"id"`

	Request Request `json:"request"`

	// DensityEstimated is true when Density was derived from a packing fraction.
	DensityEstimated bool `json:"density_estimated"`

	Absorption *absorb.Result `json:"absorption"`

	Stats     Stats     `json:"stats"`
	CacheHit  bool      `json:"cache_hit"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats contains execution statistics.
type Stats struct {
	Points   int           `json:"points"`
	Duration time.Duration `json:"duration"`
}
