package atomdata

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/absorb/pkg/errors"
)

//go:embed elements.toml
var elementsTOML []byte

// elementRecord mirrors one entry of elements.toml.
type elementRecord struct {
	Symbol string  `toml:"symbol"`
	Name   string  `toml:"name"`
	Z      int     `toml:"z"`
	Weight float64 `toml:"weight"`
	KEdge  float64 `toml:"k_edge"`
	L3Edge float64 `toml:"l3_edge"`
}

type elementFile struct {
	Element []elementRecord `toml:"element"`
}

// Table is an immutable, concurrency-safe lookup of element data by symbol.
// Construct one with [New] or use the shared [Default] table.
type Table struct {
	bySymbol map[string]*Element
	byZ      []*Element // index Z, nil for unused slots
}

// Option configures a [Table] built by [New].
type Option func(*options)

type options struct {
	xsect  io.Reader
	volume float64
}

// WithXsect replaces the derived orbital tables with those read from r, in
// the Cromer-Liberman Xsect.dat layout. Elements absent from r keep the
// derived tables.
func WithXsect(r io.Reader) Option {
	return func(o *options) { o.xsect = r }
}

// WithAtomicVolume sets the reference atomic volume in Å³ used for density
// estimates. Non-positive values are ignored.
func WithAtomicVolume(v float64) Option {
	return func(o *options) {
		if v > 0 {
			o.volume = v
		}
	}
}

// New builds a table from the embedded element constants.
func New(opts ...Option) (*Table, error) {
	o := options{volume: DefaultAtomicVolume}
	for _, opt := range opts {
		opt(&o)
	}

	var file elementFile
	if _, err := toml.Decode(string(elementsTOML), &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "decode element constants")
	}

	t := &Table{
		bySymbol: make(map[string]*Element, len(file.Element)),
		byZ:      make([]*Element, MaxZ+1),
	}
	for _, rec := range file.Element {
		if err := checkRecord(rec); err != nil {
			return nil, err
		}
		el := &Element{
			Symbol: rec.Symbol,
			Name:   rec.Name,
			Z:      rec.Z,
			Weight: rec.Weight,
			Volume: o.volume,
			KEdge:  rec.KEdge,
			L3Edge: rec.L3Edge,
		}
		deriveOrbitals(el)
		t.bySymbol[el.Symbol] = el
		t.byZ[el.Z] = el
	}
	for z := MinZ; z <= MaxZ; z++ {
		if t.byZ[z] == nil {
			return nil, errors.New(errors.ErrCodeInvalidTable, "element constants missing Z=%d", z)
		}
	}

	if o.xsect != nil {
		sets, err := ParseXsect(o.xsect)
		if err != nil {
			return nil, err
		}
		for sym, set := range sets {
			el, ok := t.bySymbol[sym]
			if !ok {
				continue
			}
			el.Orbitals = set.Orbitals
			el.Eterm = set.Eterm
		}
	}
	return t, nil
}

func checkRecord(rec elementRecord) error {
	switch {
	case rec.Z < MinZ || rec.Z > MaxZ:
		return errors.New(errors.ErrCodeInvalidTable, "element %q: atomic number %d out of range", rec.Symbol, rec.Z)
	case Symbol(rec.Z) != rec.Symbol:
		return errors.New(errors.ErrCodeInvalidTable, "element %q: symbol does not match Z=%d", rec.Symbol, rec.Z)
	case rec.Weight <= 0:
		return errors.New(errors.ErrCodeInvalidTable, "element %q: atomic weight must be positive", rec.Symbol)
	case rec.Z > MaxZeroAbsorptionZ && rec.KEdge <= 0:
		return errors.New(errors.ErrCodeInvalidTable, "element %q: missing K edge", rec.Symbol)
	}
	return nil
}

// Default returns the shared table built from the embedded constants.
// It panics if the embedded data is malformed, which is a build defect.
var Default = sync.OnceValue(func() *Table {
	t, err := New()
	if err != nil {
		panic(fmt.Sprintf("atomdata: embedded table: %v", err))
	}
	return t
})

// Lookup returns the element for a correctly capitalized symbol.
//
// An unrecognized symbol fails with INVALID_FORMULA; a real element beyond
// the tables (Z > 98) fails with UNSUPPORTED_ELEMENT.
func (t *Table) Lookup(symbol string) (*Element, error) {
	if el, ok := t.bySymbol[symbol]; ok {
		return el, nil
	}
	if z, ok := AtomicNumber(symbol); ok {
		return nil, errors.Field(errors.ErrCodeUnsupportedElement, "formula", symbol,
			"element %s (Z=%d) is beyond the supported range Z=%d-%d", symbol, z, MinZ, MaxZ)
	}
	return nil, errors.Field(errors.ErrCodeInvalidFormula, "formula", symbol, "unknown element symbol %q", symbol)
}

// ByZ returns the element with atomic number z.
func (t *Table) ByZ(z int) (*Element, error) {
	if z < MinZ || z > MaxZ || t.byZ[z] == nil {
		return nil, errors.Field(errors.ErrCodeUnsupportedElement, "z", z,
			"atomic number %d is beyond the supported range Z=%d-%d", z, MinZ, MaxZ)
	}
	return t.byZ[z], nil
}

// Elements returns every tabulated element ordered by atomic number.
func (t *Table) Elements() []*Element {
	out := make([]*Element, 0, len(t.bySymbol))
	for _, el := range t.bySymbol {
		out = append(out, el)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Z < out[j].Z })
	return out
}
