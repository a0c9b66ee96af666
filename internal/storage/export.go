package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/asciiscape/internal/metrics"
)

type FrameRecord struct {
	Index     int     `json:"index"`
	Elapsed   float64 `json:"elapsed"`
	Dt        float64 `json:"dt"`
	Glyphs    int     `json:"glyphs"`
	MeanAlpha float64 `json:"mean_alpha"`
}

// ExportData is a recording with its frames inlined.
type ExportData struct {
	Recording
	Frames []FrameRecord `json:"frames"`
}

func ExportJSON(w io.Writer, rec Recording, stats []metrics.FrameStats) error {
	data := ExportData{
		Recording: rec,
		Frames:    make([]FrameRecord, len(stats)),
	}
	for i, s := range stats {
		data.Frames[i] = FrameRecord(s)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
