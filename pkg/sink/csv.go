package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/absorb/pkg/pipeline"
)

// WriteCSV writes the sampled curve, one row per wavelength, with a header.
func WriteCSV(w io.Writer, r *pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(curveHeader(r)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, p := range r.Absorption.Curve.Points {
		row := []string{
			formatFloat(p.Wavelength),
			formatFloat(p.Energy),
			formatFloat(p.MuR),
		}
		for _, v := range p.Elements {
			row = append(row, formatFloat(v))
		}
		row = append(row, strconv.FormatBool(p.Reliable))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
