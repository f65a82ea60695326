package atomdata

import (
	"math"
	"sort"
)

// Parameters of the photoabsorption model used to derive orbital tables from
// edge energies when no external cross-section file is supplied.
//
// The total photoabsorption cross section above the K edge follows the
// Bragg-Pierce law σ = C·Z⁴·λ³. It is split across shells using the K jump
// ratio r = 125/Z + 3.5 and a fixed L1/L2/L3/M/N partition of the remainder.
const (
	braggPierce = 0.0171 // barns per Z⁴·Å³

	hc = 12.398419843320026 // keV·Å

	kJumpScale  = 125.0
	kJumpOffset = 3.5

	// Thomas-Fermi total binding energy per Z^(7/3), and the electron rest
	// energy, both in keV, for the relativistic term (5/3)·Etot/mc².
	thomasFermi  = 0.0208
	electronRest = 510.999
)

// Partition of the non-K cross section among the outer shells.
const (
	fracL1 = 0.138
	fracL2 = 0.246
	fracL3 = 0.396
	fracM  = 0.176
	fracN  = 0.044
)

// tailMultipliers place the five extra tabulation energies above the highest
// Gauss node energy (binding/0.0469 ≈ 21.3×binding).
var tailMultipliers = [5]float64{30, 60, 120, 240, 480}

type shell struct {
	name   string
	edge   float64 // keV
	weight float64 // fraction of the total above-K cross section
}

// modelShells returns the shells carried by the model for element z.
func modelShells(z int, kEdge, l3Edge float64) []shell {
	if z <= MaxZeroAbsorptionZ || kEdge <= 0 {
		return nil
	}
	fz := float64(z)
	jump := kJumpScale/fz + kJumpOffset
	outer := 1 / jump

	k := shell{name: "K", edge: kEdge, weight: 1 - outer}
	if l3Edge <= 0 {
		// Li to Ne: a single L shell a few percent of the K edge.
		return []shell{k, {name: "L", edge: 0.03 * kEdge, weight: outer}}
	}

	l2 := l3Edge * (1 + 2.4e-5*fz*fz)
	l1 := l2 * (1 + 3.5/fz)
	m := l3Edge * 0.0024 * fz

	out := []shell{
		k,
		{name: "L1", edge: l1, weight: outer * fracL1},
		{name: "L2", edge: l2, weight: outer * fracL2},
		{name: "L3", edge: l3Edge, weight: outer * fracL3},
	}
	if z < 37 {
		return append(out, shell{name: "M", edge: m, weight: outer * (fracM + fracN)})
	}
	return append(out,
		shell{name: "M", edge: m, weight: outer * fracM},
		shell{name: "N", edge: 0.2 * m, weight: outer * fracN},
	)
}

// modelCrossSection returns the shell cross section in barns at energy keV.
func modelCrossSection(z int, weight, energy float64) float64 {
	lambda := hc / energy
	return weight * braggPierce * math.Pow(float64(z), 4) * lambda * lambda * lambda
}

// modelOrbital tabulates one shell in the Cromer-Liberman layout: five tail
// energies, five Gauss node energies (binding/x) and the edge itself.
func modelOrbital(z int, s shell) Orbital {
	o := Orbital{Name: s.name, Form: 0, BindingEnergy: s.edge}

	type point struct{ e, xs float64 }
	pts := make([]point, 0, 11)
	for _, m := range tailMultipliers {
		e := s.edge * m
		pts = append(pts, point{e, modelCrossSection(z, s.weight, e)})
	}
	for i, x := range GaussNodes {
		e := s.edge / x
		xs := modelCrossSection(z, s.weight, e)
		o.NodeXSect[i] = xs / BarnsPerAU
		pts = append(pts, point{e, xs})
	}
	edgeXS := modelCrossSection(z, s.weight, s.edge)
	o.EdgeXSect = edgeXS / BarnsPerAU
	pts = append(pts, point{s.edge, edgeXS})

	sort.Slice(pts, func(i, j int) bool { return pts[i].e < pts[j].e })
	o.LogEnergy = make([]float64, len(pts))
	o.LogXSect = make([]float64, len(pts))
	for i, p := range pts {
		o.LogEnergy[i] = math.Log(p.e)
		if p.xs > 0 {
			o.LogXSect[i] = math.Log(p.xs)
		}
	}
	return o
}

// relativisticTerm approximates the Cromer-Liberman energy term (5/3)·Etot/mc².
func relativisticTerm(z int) float64 {
	if z <= MaxZeroAbsorptionZ {
		return 0
	}
	etot := thomasFermi * math.Pow(float64(z), 7.0/3.0)
	return 5.0 / 3.0 * etot / electronRest
}

// deriveOrbitals fills Orbitals and Eterm of e from its edge energies.
func deriveOrbitals(e *Element) {
	e.Eterm = relativisticTerm(e.Z)
	e.Orbitals = nil
	for _, s := range modelShells(e.Z, e.KEdge, e.L3Edge) {
		e.Orbitals = append(e.Orbitals, modelOrbital(e.Z, s))
	}
}
