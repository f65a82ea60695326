package density

import (
	"math"
	"testing"

	"github.com/matzehuels/absorb/pkg/atomdata"
	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/formula"
)

func TestResolveMeasured(t *testing.T) {
	f := formula.MustParse("SiO2")
	got, err := Resolve(f, atomdata.Default(), FromMeasured(2.65))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != 2.65 {
		t.Errorf("Resolve() = %g, want 2.65", got)
	}
}

// At full packing the estimate lands within ±25% of literature densities for
// simple oxides.
func TestResolvePackingFractionAccuracy(t *testing.T) {
	tests := []struct {
		formula    string
		literature float64
	}{
		{"Al2O3", 3.99},
		{"MgO", 3.58},
		{"TiO2", 4.23},
		{"ZnO", 5.61},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			got, err := Resolve(formula.MustParse(tt.formula), atomdata.Default(), FromPackingFraction(1))
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if rel := math.Abs(got-tt.literature) / tt.literature; rel > 0.25 {
				t.Errorf("estimate = %.3f g/cc, literature %.2f (off by %.0f%%)", got, tt.literature, rel*100)
			}
		})
	}
}

func TestResolvePackingFractionScales(t *testing.T) {
	f := formula.MustParse("YBa2Cu3O6.5")
	full, _ := Resolve(f, atomdata.Default(), FromPackingFraction(1))
	half, _ := Resolve(f, atomdata.Default(), FromPackingFraction(0.5))
	if math.Abs(half-full/2) > 1e-12 {
		t.Errorf("half packing = %g, want %g", half, full/2)
	}
	zero, err := Resolve(f, atomdata.Default(), FromPackingFraction(0))
	if err != nil || zero != 0 {
		t.Errorf("zero packing = %g, %v, want 0, nil", zero, err)
	}

	mw, _ := MolecularWeight(f, atomdata.Default())
	want := 0.5 * mw / (AvogadroPerCubicAngstrom * 12.5 * atomdata.DefaultAtomicVolume)
	if math.Abs(half-want) > 1e-12 {
		t.Errorf("half packing = %g, want %g", half, want)
	}
}

func TestResolveCountsLightElements(t *testing.T) {
	withH, _ := Resolve(formula.MustParse("CH4"), atomdata.Default(), FromPackingFraction(1))
	carbon, _ := Resolve(formula.MustParse("C"), atomdata.Default(), FromPackingFraction(1))
	if withH >= carbon {
		t.Errorf("CH4 estimate %g should be below C estimate %g since H adds volume", withH, carbon)
	}
}

func TestResolveInvalid(t *testing.T) {
	f := formula.MustParse("SiO2")
	tests := []struct {
		name string
		spec Spec
	}{
		{"packing above one", FromPackingFraction(1.5)},
		{"packing negative", FromPackingFraction(-0.1)},
		{"packing nan", FromPackingFraction(math.NaN())},
		{"measured zero", FromMeasured(0)},
		{"measured negative", FromMeasured(-2)},
		{"measured inf", FromMeasured(math.Inf(1))},
		{"unknown mode", Spec{Mode: "Volume", Value: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(f, atomdata.Default(), tt.spec)
			if !errors.Is(err, errors.ErrCodeInvalidDensity) {
				t.Errorf("Resolve() error = %v, want INVALID_DENSITY", err)
			}
		})
	}
}

func TestResolveUnsupportedElement(t *testing.T) {
	_, err := Resolve(formula.MustParse("EsO2"), atomdata.Default(), FromPackingFraction(0.5))
	if !errors.Is(err, errors.ErrCodeUnsupportedElement) {
		t.Errorf("Resolve() error = %v, want UNSUPPORTED_ELEMENT", err)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"RHO":            Measured,
		"rho":            Measured,
		"PackedFraction": PackedFraction,
		"":               PackedFraction,
		"anything":       PackedFraction,
	} {
		if got := ParseMode(in); got != want {
			t.Errorf("ParseMode(%q) = %q, want %q", in, got, want)
		}
	}
}
