package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/randwalk/internal/walk"
)

type ExportData struct {
	ID            string             `json:"id"`
	Steps         int                `json:"steps"`
	MaxStepLength float64            `json:"max_step_length"`
	Seed          uint64             `json:"seed"`
	Mode          string             `json:"mode"`
	X             []float64          `json:"x"`
	Y             []float64          `json:"y"`
	Radii         []float64          `json:"radii"`
	Metrics       map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, st *walk.State) error {
	data := ExportData{
		ID:            meta.ID,
		Steps:         meta.Steps,
		MaxStepLength: meta.MaxStepLength,
		Seed:          meta.Seed,
		Mode:          meta.Mode,
		X:             make([]float64, len(st.Points)),
		Y:             make([]float64, len(st.Points)),
		Radii:         st.Radii(),
		Metrics:       meta.Metrics,
	}

	for i, p := range st.Points {
		data.X[i] = p.X
		data.Y[i] = p.Y
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
