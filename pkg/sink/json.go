package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/absorb/pkg/pipeline"
)

// WriteJSON writes the complete result as indented JSON.
func WriteJSON(w io.Writer, r *pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
