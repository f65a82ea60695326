package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/absorb/pkg/density"
	"github.com/matzehuels/absorb/pkg/pipeline"
)

func newTestExplorer(t *testing.T) ExplorerModel {
	t.Helper()
	r := pipeline.NewRunner(nil, nil, nil, log.New(io.Discard))
	req := pipeline.Request{Formula: "Cu", Radius: 0.2, Spectrum: 1.5406, Density: 8.96, DensityType: density.Measured, Resolution: 30}
	s, err := r.Resolve(req)
	if err != nil {
		t.Fatal(err)
	}
	res, err := r.Execute(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	return NewExplorerModel(r.Engine, s, res.Absorption)
}

func TestExplorerStartsNearRequested(t *testing.T) {
	m := newTestExplorer(t)
	got := m.Result.Curve.Points[m.Cursor].Wavelength
	step := m.Result.Curve.Range.Width() / 29
	if d := got - 1.5406; d > step || d < -step {
		t.Errorf("cursor wavelength = %v, want within one step of 1.5406", got)
	}
}

func TestExplorerNavigation(t *testing.T) {
	m := newTestExplorer(t)
	start := m.Cursor

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(ExplorerModel)
	if m.Cursor != start+1 {
		t.Errorf("Cursor = %d after right, want %d", m.Cursor, start+1)
	}
	if m.point.Point.Wavelength != m.Result.Curve.Points[m.Cursor].Wavelength {
		t.Error("point should be recomputed at the cursor wavelength")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyHome})
	m = next.(ExplorerModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d after home, want 0", m.Cursor)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(ExplorerModel)
	if m.Cursor != 0 {
		t.Errorf("Cursor = %d, should clamp at 0", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m = next.(ExplorerModel)
	if m.Cursor != len(m.Result.Curve.Points)-1 {
		t.Errorf("Cursor = %d after end, want last", m.Cursor)
	}
}

func TestExplorerQuit(t *testing.T) {
	m := newTestExplorer(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestExplorerView(t *testing.T) {
	view := newTestExplorer(t).View()
	for _, want := range []string{"Explore Cu", "μR", "Element"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestSparkline(t *testing.T) {
	got := sparkline([]float64{0, 1, 2, 4}, 4)
	if got != "▁▂▄█" {
		t.Errorf("sparkline() = %q, want ▁▂▄█", got)
	}
	if sparkline(nil, 10) != "" {
		t.Error("sparkline(nil) should be empty")
	}
}
