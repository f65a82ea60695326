package fprime

import (
	"math"

	"github.com/matzehuels/absorb/pkg/atomdata"
)

// Integrand forms. Forms 0-2 match the orbital table forms; formBelowEdge is
// used for a form 0 orbital whose edge lies above the photon energy.
const (
	formOrdinary  = 0
	formSqrt      = 1
	formInverse   = 2
	formBelowEdge = 3
)

// aitken interpolates log cross section at logE from the three table points
// starting at the last entry not above logE, clamped to the table end.
func aitken(logE, logXS []float64, x float64) float64 {
	n := len(logE)
	j := n - 1
	for i := 0; i < n; i++ {
		if logE[i] <= x {
			j = i
		}
	}
	if j > n-3 {
		j = n - 3
	}

	var t [6]float64
	for i := 0; i < 3; i++ {
		t[i] = logXS[i+j]
		t[i+3] = logE[i+j] - x
	}
	t[1] = (t[0]*t[4] - t[1]*t[3]) / (logE[j+1] - logE[j])
	t[2] = (t[0]*t[5] - t[2]*t[3]) / (logE[j+2] - logE[j])
	t[2] = (t[1]*t[5] - t[2]*t[4]) / (logE[j+2] - logE[j+1])
	return t[2]
}

// quadrature evaluates the dispersion integrand of the given form on the
// Gauss-Legendre nodes. bb and rx are the binding and photon energies in
// Hartree; cx is the cross section at the photon energy in atomic units.
func quadrature(orb *atomdata.Orbital, bb, cx, rx float64, form int) float64 {
	b2 := bb * bb
	r2 := rx * rx

	var d float64
	for i, x := range atomdata.GaussNodes {
		x2 := x * x
		xs := orb.NodeXSect[i]

		var s float64
		switch form {
		case formOrdinary:
			s = bb * (xs*(b2/x2) - cx*r2) / (r2*x2 - b2)
		case formSqrt:
			s = 0.5 * bb * b2 * xs / (math.Sqrt(x) * (r2*x2 - x*b2))
		case formInverse:
			t := x*x2*r2 - b2/x
			s = 2 * bb * (xs*b2/(t*x2*x2) - cx*r2/t)
		default:
			s = bb * b2 * (xs - orb.EdgeXSect*x2) / (r2*x2*x2 - x2*b2)
		}
		d += atomdata.GaussWeights[i] * s
	}
	return d
}
