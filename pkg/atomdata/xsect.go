package atomdata

import (
	"bufio"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/absorb/pkg/errors"
)

// OrbitalSet is the orbital data read for one element from an Xsect file.
type OrbitalSet struct {
	Orbitals []Orbital
	Eterm    float64
}

const (
	xsectPoints    = 11
	xsectNodeStart = 5
	xsectEdge      = 10
)

// ParseXsect reads orbital cross-section tables in the Cromer-Liberman
// Xsect.dat layout and returns them keyed by element symbol.
//
// Each orbital record spans three physical lines. The first line starts with
// the upper-case element symbol in columns 1-2, carries the orbital name in
// columns 10-14 and the integrand form in column 15, followed by the binding
// energy and eleven (energy, cross section) pairs in keV and barns. Entries
// 6-10 are the cross sections at the Gauss node energies. For form 0 the
// eleventh pair is the edge itself; for other forms its cross-section field
// holds the element's relativistic energy term instead.
//
// Lines between records that do not start with an element symbol are ignored.
func ParseXsect(r io.Reader) (map[string]OrbitalSet, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	out := make(map[string]OrbitalSet)
	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimRight(sc.Text(), "\r"), true
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		sym := recordSymbol(line)
		if sym == "" {
			continue
		}
		start := lineNo
		record := line
		for i := 0; i < 2; i++ {
			cont, ok := next()
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidTable, "xsect line %d: truncated %s record", start, sym)
			}
			record += cont
		}
		orb, eterm, err := parseOrbital(record)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "xsect line %d: %s record", start, sym)
		}
		set := out[sym]
		set.Orbitals = append(set.Orbitals, orb)
		if orb.Form != 0 {
			set.Eterm = eterm
		}
		out[sym] = set
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "read xsect data")
	}
	return out, nil
}

// recordSymbol returns the properly capitalized symbol if line opens an
// orbital record for a tabulated element.
func recordSymbol(line string) string {
	if len(line) < 2 {
		return ""
	}
	head := strings.TrimSpace(line[:2])
	if head == "" {
		return ""
	}
	sym := head[:1] + strings.ToLower(head[1:])
	if head != strings.ToUpper(sym) {
		return ""
	}
	if z, ok := AtomicNumber(sym); !ok || z > MaxZ {
		return ""
	}
	return sym
}

func parseOrbital(record string) (Orbital, float64, error) {
	if len(record) < 15 {
		return Orbital{}, 0, errors.New(errors.ErrCodeInvalidTable, "record too short")
	}
	form, err := strconv.Atoi(record[14:15])
	if err != nil {
		return Orbital{}, 0, errors.New(errors.ErrCodeInvalidTable, "invalid form %q", record[14:15])
	}
	fields := strings.Fields(record[15:])
	if len(fields) < 1+2*xsectPoints {
		return Orbital{}, 0, errors.New(errors.ErrCodeInvalidTable, "expected %d values, got %d", 1+2*xsectPoints, len(fields))
	}
	vals := make([]float64, 1+2*xsectPoints)
	for i := range vals {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Orbital{}, 0, errors.New(errors.ErrCodeInvalidTable, "invalid number %q", fields[i])
		}
		vals[i] = v
	}

	orb := Orbital{
		Name:          strings.TrimSpace(record[9:14]),
		Form:          form,
		BindingEnergy: vals[0],
	}
	energy := make([]float64, xsectPoints)
	xsect := make([]float64, xsectPoints)
	for i := 0; i < xsectPoints; i++ {
		energy[i] = vals[2*i+1]
		xsect[i] = vals[2*i+2]
	}
	for i := range orb.NodeXSect {
		orb.NodeXSect[i] = xsect[xsectNodeStart+i] / BarnsPerAU
	}

	var eterm float64
	n := xsectPoints
	if form == 0 {
		orb.EdgeXSect = xsect[xsectEdge] / BarnsPerAU
	} else {
		eterm = xsect[xsectEdge]
		n = xsectEdge
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return energy[idx[a]] < energy[idx[b]] })
	orb.LogEnergy = make([]float64, n)
	orb.LogXSect = make([]float64, n)
	for i, k := range idx {
		if energy[k] <= 0 {
			return Orbital{}, 0, errors.New(errors.ErrCodeInvalidTable, "non-positive energy %g", energy[k])
		}
		orb.LogEnergy[i] = math.Log(energy[k])
		if xsect[k] > 0 {
			orb.LogXSect[i] = math.Log(xsect[k])
		}
	}
	return orb, eterm, nil
}
