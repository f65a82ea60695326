package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/absorb/pkg/absorb"
	"github.com/matzehuels/absorb/pkg/pipeline"
	"github.com/matzehuels/absorb/pkg/spectrum"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ExplorerModel - Interactive wavelength explorer
// =============================================================================

// ExplorerModel is the bubbletea model for stepping through a sampled curve.
// The cursor selects a curve point; the element table is recomputed exactly
// at that wavelength.
type ExplorerModel struct {
	Engine *absorb.Engine
	Sample pipeline.Sample
	Result *absorb.Result

	Cursor int
	Width  int

	point *absorb.PointResult
	err   error
}

// NewExplorerModel creates an explorer positioned at the curve point nearest
// the requested wavelength.
func NewExplorerModel(engine *absorb.Engine, s pipeline.Sample, res *absorb.Result) ExplorerModel {
	m := ExplorerModel{Engine: engine, Sample: s, Result: res, Width: 72}
	m.Cursor = nearestPoint(res.Curve.Points, s.Point.Wavelength)
	m.point = res.Requested
	return m
}

func nearestPoint(pts []absorb.CurvePoint, lambda float64) int {
	best := 0
	for i, p := range pts {
		if math.Abs(p.Wavelength-lambda) < math.Abs(pts[best].Wavelength-lambda) {
			best = i
		}
	}
	return best
}

func (m ExplorerModel) Init() tea.Cmd {
	return nil
}

func (m ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Result.Curve.Points)
	move := 0
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			move = -1
		case "right", "l":
			move = 1
		case "shift+left", "pgup", "H":
			move = -10
		case "shift+right", "pgdown", "L":
			move = 10
		case "home", "g":
			move = -n
		case "end", "G":
			move = n
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width - 4
		if m.Width < 20 {
			m.Width = 20
		}
	}
	if move != 0 && n > 0 {
		m.Cursor = min(max(m.Cursor+move, 0), n-1)
		m.point, m.err = m.Engine.ComputeAt(m.Sample.Formula, m.Sample.Density, m.Sample.Radius, spectrum.FromWavelength(m.Result.Curve.Points[m.Cursor].Wavelength))
	}
	return m, nil
}

func (m ExplorerModel) View() string {
	var b strings.Builder
	a := m.Result

	b.WriteString(StyleTitle.Render("Explore " + a.Formula.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ step  shift+←/→ jump  home/end  q quit"))
	b.WriteString("\n\n")

	mus := make([]float64, len(a.Curve.Points))
	for i, p := range a.Curve.Points {
		mus[i] = p.MuR
	}
	width := min(m.Width, len(mus))
	b.WriteString("  " + sparkline(mus, width) + "\n")
	if width > 0 && len(mus) > 0 {
		col := m.Cursor * width / len(mus)
		b.WriteString("  " + strings.Repeat(" ", col) + StyleNumber.Render("▲") + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s\n\n", a.Curve.Range)))

	if m.err != nil {
		b.WriteString(StyleError.Render(formatEngineError(m.err)))
		return b.String()
	}
	p := m.point
	b.WriteString(fmt.Sprintf("  λ %s Å   E %s keV   μR %s  %s\n",
		StyleValue.Render(fmt.Sprintf("%.4f", p.Point.Wavelength)),
		StyleValue.Render(fmt.Sprintf("%.3f", p.Point.Energy())),
		StyleNumber.Bold(true).Render(fmt.Sprintf("%.4f", p.MuR)),
		classStyle(p.Class).Render(string(p.Class))))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  μ/ρ %.3f cm²/g   μ %.3f cm⁻¹   T %.3g\n",
		p.MassAttenuation, p.LinearAttenuation, p.Transmission)))
	b.WriteString(elementTable(p))
	b.WriteString("\n")
	for _, w := range p.Warnings {
		b.WriteString(StyleWarning.Render(iconWarning+" "+w.String()) + "\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(a.Curve.Points))))
	return b.String()
}

// =============================================================================
// Explore Command
// =============================================================================

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "explore [formula]",
		Short: "Step through muR interactively across the valid wavelength range",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(c, cmd, args)
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			defer runner.Close()

			s, err := runner.Resolve(req)
			if err != nil {
				return err
			}
			res, err := runner.Execute(cmd.Context(), req)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewExplorerModel(runner.Engine, s, res.Absorption), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
