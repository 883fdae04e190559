package display

import (
	"encoding/json"
	"io"
)

// jsonRenderer emits the report as JSON.
type jsonRenderer struct {
	config Config
}

// Render implements Renderer.Render.
func (r *jsonRenderer) Render(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	if !r.config.Compact {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(report)
}
