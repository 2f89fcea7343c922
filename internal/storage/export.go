package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the machine-readable dump of one scan, suitable for
// piping into plotting scripts or notebooks.
type ExportData struct {
	Material   string             `json:"material"`
	Kind       string             `json:"kind"`
	Functional string             `json:"functional"`
	Samples    int                `json:"samples"`
	X          []float64          `json:"x"`
	Y          []float64          `json:"y"`
	Results    map[string]float64 `json:"results"`
}

func ExportJSON(w io.Writer, meta *ScanMetadata, xs, ys []float64) error {
	data := ExportData{
		Material:   meta.Material,
		Kind:       meta.Kind,
		Functional: meta.Functional,
		Samples:    len(xs),
		X:          xs,
		Y:          ys,
		Results:    meta.Results,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSONFile(path string, meta *ScanMetadata, xs, ys []float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, xs, ys)
}
