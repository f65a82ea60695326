// Package spectrum models X-ray spectral points and the wavelength domains in
// which the absorption tables are valid.
//
// A [Point] is a single photon wavelength; energy is derived from it with the
// Planck relation E(keV) = 12.398/λ(Å). Requests may be expressed in either
// unit through [Kind], and are validated in the unit they were given in so
// that the published bounds (0.05-3.0 Å, 4.13-248 keV) are honored exactly.
package spectrum

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/absorb/pkg/errors"
)

// HC is Planck's constant times the speed of light in keV·Å.
const HC = 12.398419843320026

// Global validity domain of the tables.
const (
	MinWavelength = 0.05 // Å
	MaxWavelength = 3.0  // Å
	MinEnergy     = 4.13 // keV
	MaxEnergy     = 248  // keV
)

// Breakdown regions of the Cromer-Liberman tables for heavy elements.
const (
	// HeavyMinZ and HeavyMinWavelength: for Au-Cf f' does not converge below
	// this wavelength.
	HeavyMinZ          = 79
	HeavyMinWavelength = 0.16

	// ActinideMinZ and ActinideMaxWavelength: for Am-Cf f', f'' and mu are
	// inaccurate above this wavelength.
	ActinideMinZ          = 95
	ActinideMaxWavelength = 2.67

	// TableMaxZ is the heaviest tabulated element.
	TableMaxZ = 98
)

// Kind selects how a spectral value is interpreted.
type Kind string

const (
	Wavelength Kind = "Wavelength"
	Energy     Kind = "Energy"
)

// ParseKind parses a spectrum type name, case-insensitively. The empty string
// means Wavelength.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wavelength", "lambda":
		return Wavelength, nil
	case "energy", "kev":
		return Energy, nil
	}
	return "", errors.Field(errors.ErrCodeInvalidInput, "spectrumType", s,
		"spectrum type must be %s or %s (got %q)", Wavelength, Energy, s)
}

// Unit returns the unit symbol of values of this kind.
func (k Kind) Unit() string {
	if k == Energy {
		return "keV"
	}
	return "Å"
}

// Point is a spectral point stored as a wavelength in Å.
type Point struct {
	Wavelength float64 `json:"wavelength"`
}

// FromWavelength returns the point at lambda Å.
func FromWavelength(lambda float64) Point { return Point{Wavelength: lambda} }

// FromEnergy returns the point at e keV.
func FromEnergy(e float64) Point { return Point{Wavelength: HC / e} }

// Energy returns the photon energy in keV.
func (p Point) Energy() float64 { return HC / p.Wavelength }

// Value returns the point expressed in the unit of k.
func (p Point) Value(k Kind) float64 {
	if k == Energy {
		return p.Energy()
	}
	return p.Wavelength
}

func (p Point) String() string {
	return fmt.Sprintf("%.4f Å (%.3f keV)", p.Wavelength, p.Energy())
}

// New validates value in the unit of kind against the global domain and
// returns the corresponding point. Out-of-domain values fail with
// INVALID_SPECTRUM_RANGE, reporting value in the unit it was given in.
func New(value float64, kind Kind) (Point, error) {
	switch kind {
	case Energy:
		if err := errors.ValidateClosed(errors.ErrCodeInvalidSpectrumRange, "spectrum", value, MinEnergy, MaxEnergy); err != nil {
			return Point{}, err
		}
		return FromEnergy(value), nil
	case Wavelength, "":
		if err := errors.ValidateClosed(errors.ErrCodeInvalidSpectrumRange, "spectrum", value, MinWavelength, MaxWavelength); err != nil {
			return Point{}, err
		}
		return FromWavelength(value), nil
	}
	return Point{}, errors.Field(errors.ErrCodeInvalidInput, "spectrumType", string(kind), "unknown spectrum type %q", kind)
}

// Range is a closed wavelength interval in Å.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Global is the wavelength domain sampled curves cover.
var Global = Range{Min: MinWavelength, Max: MaxWavelength}

// Accepted is the wavelength span a point may take: Global widened to the
// published energy bounds, which fall just outside it (HC/4.13 ≈ 3.002 Å,
// HC/248 ≈ 0.04999 Å). It is the set of points [New] can return.
var Accepted = Range{
	Min: math.Min(MinWavelength, HC/MaxEnergy),
	Max: math.Max(MaxWavelength, HC/MinEnergy),
}

// Validate checks that p lies in [Accepted]. Failures carry the wavelength,
// since that is the only unit a Point holds.
func (p Point) Validate() error {
	return errors.ValidateClosed(errors.ErrCodeInvalidSpectrumRange, "wavelength", p.Wavelength, Accepted.Min, Accepted.Max)
}

// Contains reports whether lambda lies within r.
func (r Range) Contains(lambda float64) bool {
	return lambda >= r.Min && lambda <= r.Max
}

// Intersect returns the overlap of r and o. The result is empty if Min > Max.
func (r Range) Intersect(o Range) Range {
	return Range{Min: math.Max(r.Min, o.Min), Max: math.Min(r.Max, o.Max)}
}

// Empty reports whether r contains no wavelengths.
func (r Range) Empty() bool { return !(r.Min <= r.Max) }

// Width returns Max - Min.
func (r Range) Width() float64 { return r.Max - r.Min }

// ElementRange returns the wavelength range over which an element with atomic
// number z is reliably tabulated.
func ElementRange(z int) Range {
	r := Global
	if z >= HeavyMinZ && z <= TableMaxZ {
		r.Min = HeavyMinWavelength
	}
	if z >= ActinideMinZ && z <= TableMaxZ {
		r.Max = ActinideMaxWavelength
	}
	return r
}

// ValidRange returns the intersection of the global domain with the range of
// every element in zs.
func ValidRange(zs ...int) Range {
	r := Global
	for _, z := range zs {
		r = r.Intersect(ElementRange(z))
	}
	return r
}

// Sample returns n wavelengths evenly spaced across r in ascending order,
// including both ends. n below 2 yields just r.Min.
func (r Range) Sample(n int) []Point {
	if n < 2 {
		return []Point{FromWavelength(r.Min)}
	}
	pts := make([]Point, n)
	step := r.Width() / float64(n-1)
	for i := range pts {
		pts[i] = FromWavelength(r.Min + float64(i)*step)
	}
	pts[n-1] = FromWavelength(r.Max)
	return pts
}

func (r Range) String() string {
	return fmt.Sprintf("%.2f-%.2f Å", r.Min, r.Max)
}
