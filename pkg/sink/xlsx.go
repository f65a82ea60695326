package sink

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/absorb/pkg/pipeline"
)

const (
	sheetSummary = "Summary"
	sheetCurve   = "Curve"
	sheetElement = "Elements"
)

// WriteXLSX writes a workbook with a summary sheet, the per-element figures
// at the requested point, and the sampled curve.
func WriteXLSX(w io.Writer, r *pipeline.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetSummary); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	for i, row := range summaryRows(r) {
		if err := setRow(f, sheetSummary, i+1, []any{row[0], row[1]}); err != nil {
			return err
		}
	}
	next := len(summaryRows(r)) + 2
	for _, t := range r.Absorption.Thresholds {
		if err := setRow(f, sheetSummary, next, []any{fmt.Sprintf("μR = %g", t.MuR), t.Description}); err != nil {
			return err
		}
		next++
	}

	if _, err := f.NewSheet(sheetElement); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	header := []any{"Element", "Z", "Occupancy", "f'", "f''", "μ/ρ (cm²/g)", "Weight fraction", "μR", "Reliable"}
	if err := setRow(f, sheetElement, 1, header); err != nil {
		return err
	}
	for i, e := range r.Absorption.Requested.Elements {
		row := []any{e.Symbol, e.Z, e.Occupancy, e.FPrime, e.FDoublePrime, e.MassAttenuation, e.WeightFraction, e.MuR, e.Reliable}
		if err := setRow(f, sheetElement, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetCurve); err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	cols := curveHeader(r)
	head := make([]any, len(cols))
	for i, c := range cols {
		head[i] = c
	}
	if err := setRow(f, sheetCurve, 1, head); err != nil {
		return err
	}
	for i, p := range r.Absorption.Curve.Points {
		row := []any{p.Wavelength, p.Energy, p.MuR}
		for _, v := range p.Elements {
			row = append(row, v)
		}
		row = append(row, p.Reliable)
		if err := setRow(f, sheetCurve, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsx: %s row %d: %w", sheet, row, err)
	}
	return nil
}
