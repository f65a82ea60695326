package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/absorb/pkg/absorb"
	"github.com/matzehuels/absorb/pkg/errors"
	"github.com/matzehuels/absorb/pkg/fprime"
	"github.com/matzehuels/absorb/pkg/pipeline"
)

// stdout receives command output; tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages and impractical values.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleTableHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleTableBorder = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

func printNewline() {
	fmt.Fprintln(stdout)
}

// printTable prints a rendered table followed by a newline.
func printTable(rendered string) {
	fmt.Fprintln(stdout, rendered)
}

// isTerminal reports whether stderr is attached to a terminal, where the
// spinner is drawn.
func isTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// =============================================================================
// Engine Errors
// =============================================================================

// formatEngineError renders err with its code and message unchanged, plus
// the offending input when one was recorded.
func formatEngineError(err error) string {
	msg := err.Error()
	if field, value, ok := errors.GetField(err); ok {
		msg += fmt.Sprintf(" (%s=%v)", field, value)
	}
	return msg
}

// =============================================================================
// Result Display
// =============================================================================

// classStyle colors a muR class.
func classStyle(c absorb.Class) lipgloss.Style {
	switch c {
	case absorb.Ideal:
		return StyleSuccess
	case absorb.Correctable:
		return StyleWarning
	}
	return StyleError
}

// printSummary prints the requested-point figures of res.
func printSummary(res *pipeline.Result) {
	a := res.Absorption
	p := a.Requested

	fmt.Fprintln(stdout, StyleTitle.Render(a.Formula.String()))
	printKeyValue("Wavelength", fmt.Sprintf("%.4f Å", p.Point.Wavelength))
	printKeyValue("Energy", fmt.Sprintf("%.4f keV", p.Point.Energy()))
	printKeyValue("Radius", fmt.Sprintf("%g mm", a.Radius))
	densityNote := ""
	if res.DensityEstimated {
		densityNote = StyleDim.Render(fmt.Sprintf(" (estimated, packing fraction %g)", res.Request.Density))
	}
	printKeyValue("Density", fmt.Sprintf("%.4f g/cc", a.Density)+densityNote)
	printKeyValue("μ/ρ", fmt.Sprintf("%.4f cm²/g", p.MassAttenuation))
	printKeyValue("μ", fmt.Sprintf("%.4f cm⁻¹", p.LinearAttenuation))
	fmt.Fprintln(stdout, lipgloss.NewStyle().Foreground(colorGray).Width(16).Render("μR")+" "+
		StyleNumber.Bold(true).Render(fmt.Sprintf("%.4f", p.MuR))+"  "+classStyle(p.Class).Render(string(p.Class)))
	printKeyValue("Transmission", fmt.Sprintf("%.4g", p.Transmission))
	printKeyValue("Valid range", a.Curve.Range.String())

	status := iconFresh
	statusStyle := styleComputed
	if res.CacheHit {
		status = iconCached
		statusStyle = styleCached
	}
	printNewline()
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf("%d points · ", res.Stats.Points))+statusStyle.Render(status))
}

// printThresholds prints the reference muR annotations.
func printThresholds(ts []absorb.Threshold) {
	for _, t := range ts {
		printDetail("μR = %g  %s: %s", t.MuR, t.Label, t.Description)
	}
}

// printWarnings prints reliability warnings.
func printWarnings(ws []fprime.Warning) {
	for _, w := range ws {
		printWarning("%s", w.String())
	}
}

// newTable returns a table in the CLI's house style.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col == 0 {
				return StyleValue
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
}

// elementTable renders the per-element figures at the requested point.
func elementTable(p *absorb.PointResult) string {
	t := newTable("Element", "Z", "Occ.", "f'", "f''", "μ/ρ (cm²/g)", "Wt. frac.", "μR")
	for _, e := range p.Elements {
		sym := e.Symbol
		if !e.Reliable {
			sym += " " + iconWarning
		}
		t.Row(
			sym,
			fmt.Sprintf("%d", e.Z),
			fmt.Sprintf("%g", e.Occupancy),
			fmt.Sprintf("%.3f", e.FPrime),
			fmt.Sprintf("%.3f", e.FDoublePrime),
			fmt.Sprintf("%.3f", e.MassAttenuation),
			fmt.Sprintf("%.4f", e.WeightFraction),
			fmt.Sprintf("%.4f", e.MuR),
		)
	}
	return t.Render()
}

// curveTable renders the sampled curve, thinned to at most n rows.
func curveTable(c absorb.Curve, n int) string {
	headers := []string{"λ (Å)", "E (keV)", "μR"}
	headers = append(headers, c.Symbols...)
	t := newTable(headers...)
	for _, p := range thinPoints(c.Points, n) {
		row := []string{
			fmt.Sprintf("%.4f", p.Wavelength),
			fmt.Sprintf("%.3f", p.Energy),
			fmt.Sprintf("%.4f", p.MuR),
		}
		for _, v := range p.Elements {
			row = append(row, fmt.Sprintf("%.4f", v))
		}
		if !p.Reliable {
			row[0] += " " + iconWarning
		}
		t.Row(row...)
	}
	return t.Render()
}

// thinPoints returns at most n points evenly spaced, keeping both ends.
func thinPoints(pts []absorb.CurvePoint, n int) []absorb.CurvePoint {
	if n < 2 || len(pts) <= n {
		return pts
	}
	out := make([]absorb.CurvePoint, n)
	for i := range out {
		out[i] = pts[i*(len(pts)-1)/(n-1)]
	}
	return out
}

// sparkline renders values as a one-line bar chart scaled to their maximum.
func sparkline(values []float64, width int) string {
	const bars = "▁▂▃▄▅▆▇█"
	runes := []rune(bars)
	if len(values) == 0 || width <= 0 {
		return ""
	}
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
		width = len(values)
	}
	maxV := 0.0
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	var b strings.Builder
	for i := 0; i < width; i++ {
		v := values[int(float64(i)*step)]
		idx := 0
		if maxV > 0 {
			idx = int(v / maxV * float64(len(runes)-1))
		}
		b.WriteRune(runes[idx])
	}
	return b.String()
}
