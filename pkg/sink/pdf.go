package sink

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/matzehuels/absorb/pkg/pipeline"
)

// The core PDF fonts only cover Latin-1, so unit symbols are spelled out.
var pdfText = strings.NewReplacer(
	"μ", "mu", "ρ", "rho", "²", "^2", "⁻¹", "^-1", "Å", "A",
)

// maxPDFCurveRows caps the curve table; longer curves are thinned evenly.
const maxPDFCurveRows = 60

// WritePDF writes a printable report: the requested-point summary, the
// per-element table, reliability warnings, and a thinned curve table.
func WritePDF(w io.Writer, r *pipeline.Result) error {
	a := r.Absorption
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Capillary absorption: "+a.Formula.String(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, pdfText.Replace("Capillary absorption (muR): "+a.Formula.String()))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range summaryRows(r) {
		pdf.CellFormat(55, 6, pdfText.Replace(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, pdfText.Replace(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	for _, t := range a.Thresholds {
		pdf.MultiCell(0, 5, pdfText.Replace(fmt.Sprintf("muR = %g: %s", t.MuR, t.Description)), "", "L", false)
	}
	if ws := a.Warnings(); len(ws) > 0 {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 6, "Warnings")
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		for _, warn := range ws {
			pdf.MultiCell(0, 5, pdfText.Replace(warn.String()), "", "L", false)
		}
	}
	pdf.Ln(4)

	elemHeader := []string{"Element", "Occ.", "f'", "f''", "mu/rho", "wt. frac.", "muR"}
	elemWidths := []float64{22, 20, 24, 24, 30, 26, 26}
	pdfTableHeader(pdf, elemHeader, elemWidths)
	for _, e := range a.Requested.Elements {
		pdfTableRow(pdf, elemWidths, []string{
			e.Symbol,
			fmt.Sprintf("%g", e.Occupancy),
			fmt.Sprintf("%.3f", e.FPrime),
			fmt.Sprintf("%.3f", e.FDoublePrime),
			fmt.Sprintf("%.3f", e.MassAttenuation),
			fmt.Sprintf("%.4f", e.WeightFraction),
			fmt.Sprintf("%.4f", e.MuR),
		})
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, pdfText.Replace(fmt.Sprintf("Sampled curve %s", a.Curve.Range)))
	pdf.Ln(10)
	curveWidths := []float64{40, 40, 40, 30}
	pdfTableHeader(pdf, []string{"Wavelength (A)", "Energy (keV)", "muR", "Reliable"}, curveWidths)
	for _, p := range thin(a.Curve.Points, maxPDFCurveRows) {
		pdfTableRow(pdf, curveWidths, []string{
			fmt.Sprintf("%.4f", p.Wavelength),
			fmt.Sprintf("%.3f", p.Energy),
			fmt.Sprintf("%.4f", p.MuR),
			fmt.Sprintf("%t", p.Reliable),
		})
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	return nil
}

func pdfTableHeader(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 10)
	for i, c := range cols {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

func pdfTableRow(pdf *gofpdf.Fpdf, widths []float64, cells []string) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], 6, c, "1", 0, "R", false, 0, "")
	}
	pdf.Ln(-1)
}

// thin returns at most n elements of s, evenly spaced and keeping both ends.
func thin[T any](s []T, n int) []T {
	if len(s) <= n || n < 2 {
		return s
	}
	out := make([]T, n)
	for i := range out {
		out[i] = s[i*(len(s)-1)/(n-1)]
	}
	return out
}
