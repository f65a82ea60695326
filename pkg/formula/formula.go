// Package formula parses chemical formulas into ordered element occupancies.
//
// A formula is a sequence of element symbols, each optionally followed by a
// non-negative decimal occupancy:
//
//	YBa2Cu3O6.5
//	Al2 O3
//	Ca0.5Sr.5TiO3
//
// Symbols are case-sensitive ("Ba", never "BA"); an omitted occupancy means 1.
// Occupancies are rounded to 0.01, half away from zero, and repeated symbols
// are merged in order of first appearance. Grouping with parentheses is not
// supported.
package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/absorb/pkg/atomdata"
	"github.com/matzehuels/absorb/pkg/errors"
)

// Component is one element of a formula with its occupancy.
type Component struct {
	Symbol    string  `json:"symbol"`
	Occupancy float64 `json:"occupancy"`
}

// Formula is an ordered list of distinct elements and their occupancies.
type Formula []Component

var numberPattern = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)

// Parse scans text into a Formula.
//
// It fails with INVALID_FORMULA if text is empty, contains a token that is
// not an element symbol, carries a malformed occupancy, or sums to zero atoms.
// Symbols of real elements beyond the tables parse successfully and are
// rejected later by the table lookup.
func Parse(text string) (Formula, error) {
	src := []rune(text)
	if strings.TrimSpace(text) == "" {
		return nil, invalid(text, "formula is empty")
	}

	var f Formula
	index := make(map[string]int)
	for i := 0; i < len(src); {
		r := src[i]
		if unicode.IsSpace(r) {
			i++
			continue
		}
		if r > unicode.MaxASCII || !unicode.IsUpper(r) {
			return nil, invalid(text, "unexpected %q at position %d: element symbols start with an upper-case letter", r, i+1)
		}

		start := i
		i++
		if i < len(src) && src[i] <= unicode.MaxASCII && unicode.IsLower(src[i]) {
			i++
		}
		sym := string(src[start:i])
		if _, ok := atomdata.AtomicNumber(sym); !ok {
			return nil, invalid(text, "unknown element symbol %q", sym)
		}

		for i < len(src) && unicode.IsSpace(src[i]) {
			i++
		}
		numStart := i
		for i < len(src) && (src[i] == '.' || (src[i] >= '0' && src[i] <= '9')) {
			i++
		}
		occ := 1.0
		if i > numStart {
			v, err := parseOccupancy(string(src[numStart:i]))
			if err != nil {
				return nil, invalid(text, "%s: %v", sym, err)
			}
			occ = v
		}

		if k, ok := index[sym]; ok {
			f[k].Occupancy = round2(f[k].Occupancy + occ)
			continue
		}
		index[sym] = len(f)
		f = append(f, Component{Symbol: sym, Occupancy: occ})
	}

	if f.Atoms() <= 0 {
		return nil, invalid(text, "formula contains no atoms")
	}
	return f, nil
}

// MustParse is like Parse but panics on error. It is intended for tests and
// package-level fixtures.
func MustParse(text string) Formula {
	f, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

func invalid(text, format string, args ...any) error {
	return errors.Field(errors.ErrCodeInvalidFormula, "formula", text, format, args...)
}

// parseOccupancy rounds a decimal token to 0.01, half away from zero, working
// on the digits so that "6.505" becomes 6.51 regardless of binary rounding.
func parseOccupancy(tok string) (float64, error) {
	if !numberPattern.MatchString(tok) {
		return 0, fmt.Errorf("malformed occupancy %q", tok)
	}
	intPart, frac, _ := strings.Cut(tok, ".")
	frac += "000"
	cents, err := strconv.ParseUint(intPart+frac[:2], 10, 63)
	if err != nil {
		return 0, fmt.Errorf("occupancy %q out of range", tok)
	}
	if frac[2] >= '5' {
		cents++
	}
	return float64(cents) / 100, nil
}

// round2 keeps merged occupancies on the 0.01 grid.
func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// Atoms returns the total number of atoms, including H and He.
func (f Formula) Atoms() float64 {
	var n float64
	for _, c := range f {
		n += c.Occupancy
	}
	return n
}

// Symbols returns the element symbols in formula order.
func (f Formula) Symbols() []string {
	out := make([]string, len(f))
	for i, c := range f {
		out[i] = c.Symbol
	}
	return out
}

// Occupancy returns the occupancy of symbol, or 0 if it is absent.
func (f Formula) Occupancy(symbol string) float64 {
	for _, c := range f {
		if c.Symbol == symbol {
			return c.Occupancy
		}
	}
	return 0
}

// String renders the formula in canonical form, omitting unit occupancies.
func (f Formula) String() string {
	var b strings.Builder
	for _, c := range f {
		b.WriteString(c.Symbol)
		if c.Occupancy != 1 {
			b.WriteString(strconv.FormatFloat(c.Occupancy, 'f', -1, 64))
		}
	}
	return b.String()
}
