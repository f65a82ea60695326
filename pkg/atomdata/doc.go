// Package atomdata provides the per-element constants and orbital
// photoionization tables used by the absorption engine.
//
// The embedded table covers H (Z=1) through Cf (Z=98). Each element carries
// its atomic weight, a reference atomic volume for density estimates, and one
// cross-section table per orbital in the Cromer-Liberman layout: five cross
// sections at the energies mapped from the Gauss-Legendre nodes, the edge
// cross section, and a log-log interpolation table.
//
// By default the orbital tables are derived from the tabulated K and L3 edge
// energies with a Bragg-Pierce photoabsorption model. The model is close for
// light elements (Cu at 1.5406 Å is within a few percent of reference μ/ρ),
// but heavy-element μ can be off by tens of percent (Pb reads about 50% high
// at 1.5406 Å) unless published tables in the Xsect.dat layout are loaded
// instead, as the CLI does for `[tables] xsect`:
//
//	f, _ := os.Open("Xsect.dat")
//	defer f.Close()
//	table, err := atomdata.New(atomdata.WithXsect(f))
//
// Tables are immutable once built and safe for concurrent use.
//
// # Lookup
//
// [Table.Lookup] expects correctly capitalized symbols ("Cu", not "CU"). A
// string that names no element fails with INVALID_FORMULA; a real element
// beyond the tables fails with UNSUPPORTED_ELEMENT.
package atomdata
