// Package fprime evaluates the anomalous X-ray scattering factors f' and f''
// of an element with the Cromer-Liberman method.
//
// f'' and the atomic photoabsorption cross section follow directly from the
// orbital cross sections interpolated at the photon energy. f' is the
// principal-value dispersion integral over those cross sections, evaluated per
// orbital with 5-point Gauss-Legendre quadrature plus an analytic correction
// for the singular part, less the element's relativistic energy term.
//
// Evaluation is pure and allocation-free apart from the returned warnings, so
// it is safe to call concurrently with shared [atomdata.Element] values.
package fprime

import (
	"fmt"
	"math"

	"github.com/matzehuels/absorb/pkg/atomdata"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// FineStructure is the inverse fine-structure constant used by the tables.
const FineStructure = 137.0367

// edgeNudge shifts an energy that coincides with a binding energy so the
// logarithmic correction stays finite.
const edgeNudge = 1e-9

// Result holds the scattering factors of one element at one energy.
type Result struct {
	// FPrime and FDoublePrime are f' and f'' in electrons.
	FPrime       float64
	FDoublePrime float64

	// Mu is the atomic photoabsorption cross section in barns/atom.
	Mu float64

	// Reliable is false inside a known breakdown region of the tables.
	Reliable bool

	// Warnings explains why Reliable is false.
	Warnings []Warning
}

// Warning identifies the element and wavelength threshold responsible for a
// reliability degradation.
type Warning struct {
	Element string `json:"element"`
	Z       int    `json:"z"`

	// Threshold is the wavelength limit in Å that was crossed.
	Threshold float64 `json:"threshold"`

	// Below is true if the point lies below Threshold, false if above.
	Below bool `json:"below"`

	Reason string `json:"reason"`
}

func (w Warning) String() string {
	side := "above"
	if w.Below {
		side = "below"
	}
	return fmt.Sprintf("%s (Z=%d) %s %.2f Å: %s", w.Element, w.Z, side, w.Threshold, w.Reason)
}

// Check returns the warnings for element z at wavelength lambda in Å, or nil
// if the tables are reliable there.
func Check(symbol string, z int, lambda float64) []Warning {
	var out []Warning
	if z >= spectrum.HeavyMinZ && z <= spectrum.TableMaxZ && lambda < spectrum.HeavyMinWavelength {
		out = append(out, Warning{
			Element:   symbol,
			Z:         z,
			Threshold: spectrum.HeavyMinWavelength,
			Below:     true,
			Reason:    "f' does not converge reliably",
		})
	}
	if z >= spectrum.ActinideMinZ && z <= spectrum.TableMaxZ && lambda > spectrum.ActinideMaxWavelength {
		out = append(out, Warning{
			Element:   symbol,
			Z:         z,
			Threshold: spectrum.ActinideMaxWavelength,
			Reason:    "f', f'' and mu are not reliably accurate",
		})
	}
	return out
}

// Evaluate computes f', f'' and the atomic cross section of el at energy keV.
// energy must be positive and finite. Elements without orbital tables (H, He)
// yield a zero, reliable result.
func Evaluate(el *atomdata.Element, energy float64) Result {
	res := Result{Reliable: true}
	if w := Check(el.Symbol, el.Z, spectrum.HC/energy); len(w) > 0 {
		res.Reliable = false
		res.Warnings = w
	}
	if len(el.Orbitals) == 0 {
		return res
	}

	energy = avoidEdges(el.Orbitals, energy)
	logE := math.Log(energy)
	rx := energy / atomdata.KeVPerHartree

	for i := range el.Orbitals {
		orb := &el.Orbitals[i]
		bb := orb.Binding()

		var cx float64
		if orb.BindingEnergy <= energy {
			cx = math.Exp(aitken(orb.LogEnergy, orb.LogXSect, logE))
			res.Mu += cx
			cx /= atomdata.BarnsPerAU
		}

		var fpi, corr float64
		if orb.Form == 0 && orb.BindingEnergy >= energy {
			cx = 0
			fpi = quadrature(orb, bb, cx, rx, formBelowEdge)
			corr = 0.5 * orb.EdgeXSect * bb * bb * math.Log((rx-bb)/(-rx-bb)) / rx
		} else {
			fpi = quadrature(orb, bb, cx, rx, orb.Form)
			if cx != 0 {
				corr = -0.5 * cx * rx * math.Log((rx+bb)/(rx-bb))
			}
		}
		res.FPrime += (fpi + corr) * FineStructure / (2 * math.Pi * math.Pi)
		res.FDoublePrime += FineStructure * cx * rx / (4 * math.Pi)
	}
	res.FPrime -= el.Eterm
	return res
}

// avoidEdges nudges energy off any binding energy it coincides with.
func avoidEdges(orbs []atomdata.Orbital, energy float64) float64 {
	for i := range orbs {
		if orbs[i].BindingEnergy == energy {
			return energy * (1 + edgeNudge)
		}
	}
	return energy
}
