package absorb

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/formula"
	"github.com/matzehuels/absorb/pkg/fprime"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// DefaultResolution is the number of curve points sampled per request.
const DefaultResolution = 300

// CurvePoint is one sample of the muR curve.
type CurvePoint struct {
	Wavelength float64 `json:"wavelength"`
	Energy     float64 `json:"energy"`
	MuR        float64 `json:"mu_r"`

	// Elements holds each element's muR contribution, in formula order.
	Elements []float64 `json:"elements"`

	Reliable bool `json:"reliable"`
}

// Curve is muR sampled across a wavelength range in ascending order.
type Curve struct {
	Range   spectrum.Range `json:"range"`
	Symbols []string       `json:"symbols"`
	Points  []CurvePoint   `json:"points"`
}

// Result is the full computation for one sample: the requested point in
// detail and the sampled curve over the valid range.
type Result struct {
	Formula formula.Formula `json:"formula"`

	// Density (g/cc) and Radius (mm) as used in the computation.
	Density float64 `json:"density"`
	Radius  float64 `json:"radius"`

	Requested *PointResult `json:"requested"`
	Curve     Curve        `json:"curve"`

	Thresholds []Threshold `json:"thresholds"`
}

// Reliable reports whether the requested point lies outside every breakdown
// region.
func (r *Result) Reliable() bool { return r.Requested.Reliable }

// Warnings returns the reliability warnings of the requested point.
func (r *Result) Warnings() []fprime.Warning { return r.Requested.Warnings }

// ValidRange returns the wavelength range over which every element of f is
// reliably tabulated.
func (e *Engine) ValidRange(f formula.Formula) (spectrum.Range, error) {
	comps, _, err := e.resolve(f)
	if err != nil {
		return spectrum.Range{}, err
	}
	return validRange(comps), nil
}

func validRange(comps []component) spectrum.Range {
	zs := make([]int, len(comps))
	for i, c := range comps {
		zs[i] = c.el.Z
	}
	return spectrum.ValidRange(zs...)
}

// Sample computes the requested point and resolution points evenly spaced in
// wavelength across the valid range of f.
//
// Points are evaluated in parallel, bounded by GOMAXPROCS. ctx is checked
// between points; a cancelled context aborts the curve with ctx.Err().
func (e *Engine) Sample(ctx context.Context, f formula.Formula, density, radius float64, requested spectrum.Point, resolution int) (*Result, error) {
	comps, mw, err := e.resolve(f)
	if err != nil {
		return nil, err
	}
	if err := validateSample(density, radius); err != nil {
		return nil, err
	}
	if err := requested.Validate(); err != nil {
		return nil, err
	}
	if err := errors.ValidateResolution(resolution); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rng := validRange(comps)
	pts := rng.Sample(resolution)
	curve := Curve{
		Range:   rng,
		Symbols: f.Symbols(),
		Points:  make([]CurvePoint, len(pts)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range pts {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pr := e.computeAt(comps, mw, density, radius, p)
			cp := CurvePoint{
				Wavelength: p.Wavelength,
				Energy:     p.Energy(),
				MuR:        pr.MuR,
				Elements:   make([]float64, len(pr.Elements)),
				Reliable:   pr.Reliable,
			}
			for j, er := range pr.Elements {
				cp.Elements[j] = er.MuR
			}
			curve.Points[i] = cp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{
		Formula:    f,
		Density:    density,
		Radius:     radius,
		Requested:  e.computeAt(comps, mw, density, radius, requested),
		Curve:      curve,
		Thresholds: Thresholds(),
	}, nil
}
