package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gaitsim/internal/sim"
)

type ExportData struct {
	RunMetadata
	Times  []float64            `json:"times"`
	Series map[string][]float64 `json:"series"`
}

// ExportJSON writes a run as one JSON object with a series per channel.
func ExportJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	data := ExportData{
		RunMetadata: meta,
		Times:       result.Times,
		Series:      make(map[string][]float64, len(result.Channels)),
	}
	data.Channels = result.Channels
	data.Steps = result.StepsTaken
	data.Metrics = result.Metrics
	for _, name := range result.Channels {
		data.Series[name], _ = result.Column(name)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
