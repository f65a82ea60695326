package atomdata

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/absorb/pkg/errors"
)

// xsectRecord renders one orbital record over three lines.
func xsectRecord(sym, orb string, form int, binding float64, pairs [11][2]float64) string {
	var vals []string
	for _, p := range pairs {
		vals = append(vals, fmt.Sprintf("%10.4f %12.5e", p[0], p[1]))
	}
	line1 := fmt.Sprintf("%-2s       %-5s%d %9.4f %s", strings.ToUpper(sym), orb, form, binding, strings.Join(vals[:4], " "))
	line2 := " " + strings.Join(vals[4:8], " ")
	line3 := " " + strings.Join(vals[8:], " ")
	return line1 + "\n" + line2 + "\n" + line3 + "\n"
}

func fixturePairs(edge float64, withEdge bool, eterm float64) [11][2]float64 {
	var p [11][2]float64
	for i, m := range tailMultipliers {
		p[i] = [2]float64{edge * m, 1000 / m}
	}
	for i, x := range GaussNodes {
		p[5+i] = [2]float64{edge / x, 5000 * x * x * x}
	}
	if withEdge {
		p[10] = [2]float64{edge, 6000}
	} else {
		p[10] = [2]float64{edge * 0.99, eterm}
	}
	return p
}

func TestParseXsect(t *testing.T) {
	data := "Cromer-Liberman orbital cross sections\n" +
		xsectRecord("Cu", "1s1/2", 0, 8.979, fixturePairs(8.979, true, 0)) +
		xsectRecord("Cu", "4s1/2", 2, 0.0077, fixturePairs(0.0077, false, 0.042)) +
		xsectRecord("O", "1s1/2", 0, 0.5317, fixturePairs(0.5317, true, 0))

	sets, err := ParseXsect(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ParseXsect() error = %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("len(sets) = %d, want 2", len(sets))
	}

	cu := sets["Cu"]
	if len(cu.Orbitals) != 2 {
		t.Fatalf("Cu orbitals = %d, want 2", len(cu.Orbitals))
	}
	if cu.Eterm != 0.042 {
		t.Errorf("Cu Eterm = %g, want 0.042", cu.Eterm)
	}

	k := cu.Orbitals[0]
	if k.Name != "1s1/2" || k.Form != 0 || k.BindingEnergy != 8.979 {
		t.Errorf("K orbital = %q form %d binding %g", k.Name, k.Form, k.BindingEnergy)
	}
	if len(k.LogEnergy) != 11 {
		t.Errorf("form 0 table has %d points, want 11", len(k.LogEnergy))
	}
	if got, want := k.EdgeXSect, 6000/BarnsPerAU; math.Abs(got-want) > 1e-9*want {
		t.Errorf("EdgeXSect = %g, want %g", got, want)
	}
	for i, x := range GaussNodes {
		want := 5000 * x * x * x / BarnsPerAU
		if math.Abs(k.NodeXSect[i]-want) > 1e-5*want {
			t.Errorf("NodeXSect[%d] = %g, want %g", i, k.NodeXSect[i], want)
		}
	}
	for i := 1; i < len(k.LogEnergy); i++ {
		if k.LogEnergy[i] < k.LogEnergy[i-1] {
			t.Errorf("LogEnergy not sorted at %d", i)
		}
	}

	outer := cu.Orbitals[1]
	if outer.Form != 2 {
		t.Errorf("outer Form = %d, want 2", outer.Form)
	}
	if len(outer.LogEnergy) != 10 {
		t.Errorf("form 2 table has %d points, want 10", len(outer.LogEnergy))
	}
	if outer.EdgeXSect != 0 {
		t.Errorf("form 2 EdgeXSect = %g, want 0", outer.EdgeXSect)
	}

	if o := sets["O"]; len(o.Orbitals) != 1 || o.Eterm != 0 {
		t.Errorf("O set = %d orbitals, Eterm %g", len(o.Orbitals), o.Eterm)
	}
}

func TestParseXsectErrors(t *testing.T) {
	full := xsectRecord("Fe", "1s1/2", 0, 7.112, fixturePairs(7.112, true, 0))
	lines := strings.SplitAfter(full, "\n")

	tests := []struct {
		name string
		data string
	}{
		{"truncated", lines[0] + lines[1]},
		{"bad form", strings.Replace(full, "1s1/20", "1s1/2x", 1)},
		{"short values", lines[0] + lines[1] + "\n"},
		{"bad number", strings.Replace(full, "7.1120", "7.1z20", 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXsect(strings.NewReader(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidTable) {
				t.Errorf("ParseXsect() error = %v, want INVALID_TABLE", err)
			}
		})
	}
}

func TestNewWithXsect(t *testing.T) {
	data := xsectRecord("Cu", "1s1/2", 0, 8.979, fixturePairs(8.979, true, 0)) +
		xsectRecord("Cu", "4s1/2", 1, 0.0077, fixturePairs(0.0077, false, 0.037))

	tbl, err := New(WithXsect(strings.NewReader(data)))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cu, _ := tbl.Lookup("Cu")
	if len(cu.Orbitals) != 2 || cu.Orbitals[0].Name != "1s1/2" {
		t.Errorf("Cu orbitals not replaced: %d orbitals", len(cu.Orbitals))
	}
	if cu.Eterm != 0.037 {
		t.Errorf("Cu Eterm = %g, want 0.037", cu.Eterm)
	}

	fe, _ := tbl.Lookup("Fe")
	def, _ := Default().Lookup("Fe")
	if len(fe.Orbitals) != len(def.Orbitals) {
		t.Errorf("Fe orbitals = %d, want derived %d", len(fe.Orbitals), len(def.Orbitals))
	}
}
