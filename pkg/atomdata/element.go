package atomdata

// Table conventions of the Cromer-Liberman cross-section data.
const (
	// BarnsPerAU converts cross sections from barns to atomic units (Bohr radius squared).
	BarnsPerAU = 2.80022e+7

	// KeVPerHartree converts energies from keV to Hartree atomic units.
	KeVPerHartree = 0.02721

	// MinZ and MaxZ bound the atomic numbers the tables cover.
	MinZ = 1
	MaxZ = 98

	// MaxZeroAbsorptionZ is the heaviest element treated as non-absorbing (He).
	MaxZeroAbsorptionZ = 2

	// DefaultAtomicVolume is the reference volume per atom in cubic ångström
	// used to estimate density from a packing fraction.
	DefaultAtomicVolume = 10.0
)

// GaussNodes and GaussWeights are the 5-point Gauss-Legendre abscissae and
// weights on [0, 1]. Orbital tables list cross sections at the energies these
// nodes map to, and the dispersion integral is evaluated on the same nodes.
var (
	GaussNodes   = [5]float64{0.04691007703067, 0.23076534494716, 0.5, 0.76923465505284, 0.95308992296933}
	GaussWeights = [5]float64{0.11846344252810, 0.23931433524968, 0.284444444444, 0.23931433524968, 0.11846344252810}
)

// Element holds the physical constants and scattering tables for one element.
// Elements returned by a [Table] are shared and must be treated as read-only.
type Element struct {
	Symbol string
	Name   string
	Z      int

	// Weight is the atomic weight in g/mol.
	Weight float64

	// Volume is the reference atomic volume in Å³ used for density estimates.
	Volume float64

	// KEdge and L3Edge are absorption edge energies in keV (0 if not tabulated).
	KEdge  float64
	L3Edge float64

	// Eterm is the relativistic energy correction subtracted from f'.
	Eterm float64

	// Orbitals lists the per-orbital photoionization tables.
	Orbitals []Orbital
}

// ZeroAbsorption reports whether the element is excluded from attenuation sums.
// H and He are accepted in formulas but contribute no absorption.
func (e *Element) ZeroAbsorption() bool {
	return e.Z <= MaxZeroAbsorptionZ
}

// Orbital is the photoionization cross-section table of one atomic orbital.
type Orbital struct {
	Name string

	// Form selects the dispersion integrand: 0 for ordinary orbitals, 1 and 2
	// for the alternate forms used by some outer orbitals.
	Form int

	// BindingEnergy is the orbital binding energy in keV.
	BindingEnergy float64

	// NodeXSect holds cross sections in atomic units at the energies mapped
	// from [GaussNodes].
	NodeXSect [5]float64

	// EdgeXSect is the cross section at the edge in atomic units (Form 0 only).
	EdgeXSect float64

	// LogEnergy and LogXSect are the interpolation table in ascending energy,
	// log(keV) against log(barns). A non-positive cross section is stored as 0.
	LogEnergy []float64
	LogXSect  []float64
}

// Binding returns the binding energy in Hartree.
func (o *Orbital) Binding() float64 {
	return o.BindingEnergy / KeVPerHartree
}
