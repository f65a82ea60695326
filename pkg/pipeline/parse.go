package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/absorb/pkg/density"
	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

// Form keys accepted by ParseRequest.
const (
	KeyFormula      = "formula"
	KeyRadius       = "radius"
	KeySpectrum     = "spectrum"
	KeySpectrumType = "spectrumType"
	KeyDensity      = "density"
	KeyDensityType  = "densityType"
	KeyResolution   = "resolution"
)

// ParseRequest decodes raw string parameters, as submitted by a web form or
// query string, into a validated Request.
//
// Missing or blank keys take the form defaults. Values that are not numbers
// fail with the same messages the web tool shows ("Invalid Wavelength/Energy",
// "Invalid Density/Packing Fraction"). Any density type other than RHO means
// a packing fraction.
func ParseRequest(params map[string]string) (Request, error) {
	get := func(key string) string { return strings.TrimSpace(params[key]) }

	req := Request{
		Formula:      get(KeyFormula),
		Radius:       DefaultRadius,
		Spectrum:     DefaultSpectrum,
		SpectrumType: DefaultSpectrumType,
		Density:      DefaultDensity,
		DensityType:  DefaultDensityType,
		Resolution:   DefaultResolution,
	}

	if s := get(KeySpectrumType); s != "" {
		kind, err := spectrum.ParseKind(s)
		if err != nil {
			return Request{}, err
		}
		req.SpectrumType = kind
	}
	if s := get(KeyDensityType); s != "" {
		req.DensityType = density.ParseMode(s)
	}

	if s := get(KeyRadius); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Request{}, errors.Field(errors.ErrCodeInvalidRadius, KeyRadius, s, "Invalid Radius")
		}
		req.Radius = v
	}
	if s := get(KeySpectrum); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Request{}, errors.Field(errors.ErrCodeInvalidSpectrumRange, KeySpectrum, s, "Invalid Wavelength/Energy")
		}
		req.Spectrum = v
	}
	if s := get(KeyDensity); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Request{}, errors.Field(errors.ErrCodeInvalidDensity, KeyDensity, s, "Invalid Density/Packing Fraction")
		}
		req.Density = v
	}
	if s := get(KeyResolution); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Request{}, errors.Field(errors.ErrCodeInvalidInput, KeyResolution, s, "Invalid Resolution")
		}
		req.Resolution = n
	}

	if err := req.ValidateAndSetDefaults(); err != nil {
		return Request{}, err
	}
	return req, nil
}
