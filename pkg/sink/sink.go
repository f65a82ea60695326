package sink

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/pipeline"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Formats lists every supported format.
var Formats = []string{FormatJSON, FormatCSV, FormatXLSX, FormatPDF}

// ValidateFormat checks that format names a supported output format.
func ValidateFormat(format string) error {
	for _, f := range Formats {
		if f == format {
			return nil
		}
	}
	return errors.Field(errors.ErrCodeInvalidInput, "format", format,
		"unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if err := ValidateFormat(ext); err != nil {
		return "", err
	}
	return ext, nil
}

// Write encodes r in format to w.
func Write(w io.Writer, r *pipeline.Result, format string) error {
	if r == nil || r.Absorption == nil || r.Absorption.Requested == nil {
		return errors.New(errors.ErrCodeInternal, "empty result")
	}
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatCSV:
		return WriteCSV(w, r)
	case FormatXLSX:
		return WriteXLSX(w, r)
	case FormatPDF:
		return WritePDF(w, r)
	}
	return ValidateFormat(format)
}

// Render returns r encoded in format.
func Render(r *pipeline.Result, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, r, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export writes r to path in the format named by its extension.
// The file is only created once the result has been encoded.
func Export(r *pipeline.Result, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Render(r, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// curveHeader returns the column names shared by the CSV and XLSX curve tables.
func curveHeader(r *pipeline.Result) []string {
	cols := []string{"wavelength_A", "energy_keV", "muR"}
	for _, sym := range r.Absorption.Curve.Symbols {
		cols = append(cols, "muR_"+sym)
	}
	return append(cols, "reliable")
}

// summaryRows lists the requested-point figures as label/value pairs.
func summaryRows(r *pipeline.Result) [][2]string {
	a := r.Absorption
	p := a.Requested
	densityNote := "measured"
	if r.DensityEstimated {
		densityNote = fmt.Sprintf("estimated from packing fraction %g", r.Request.Density)
	}
	return [][2]string{
		{"Formula", a.Formula.String()},
		{"Wavelength (Å)", fmt.Sprintf("%.4f", p.Point.Wavelength)},
		{"Energy (keV)", fmt.Sprintf("%.4f", p.Point.Energy())},
		{"Radius (mm)", fmt.Sprintf("%g", a.Radius)},
		{"Density (g/cc)", fmt.Sprintf("%.4f (%s)", a.Density, densityNote)},
		{"μ/ρ (cm²/g)", fmt.Sprintf("%.4f", p.MassAttenuation)},
		{"μ (cm⁻¹)", fmt.Sprintf("%.4f", p.LinearAttenuation)},
		{"μR", fmt.Sprintf("%.4f", p.MuR)},
		{"Transmission", fmt.Sprintf("%.4g", p.Transmission)},
		{"Class", string(p.Class)},
		{"Reliable", fmt.Sprintf("%t", p.Reliable)},
	}
}
