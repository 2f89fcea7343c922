package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// ScanMetadata describes one saved scan: an energy-volume sweep or a
// cutoff/k-point convergence series. Results holds derived scalars such
// as the fitted V0 and B0, or the converged parameter value.
type ScanMetadata struct {
	ID         string             `json:"id"`
	Material   string             `json:"material"`
	Kind       string             `json:"kind"`
	Timestamp  time.Time          `json:"timestamp"`
	Functional string             `json:"functional"`
	Results    map[string]float64 `json:"results"`
}

// Save writes a scan to a fresh run directory and returns its ID. The
// x/y samples land in samples.csv under the given column names.
func (s *Store) Save(material, kind, functional string, xName, yName string, xs, ys []float64, results map[string]float64) (string, error) {
	if len(xs) != len(ys) {
		return "", fmt.Errorf("storage: %d %s values against %d %s values", len(xs), xName, len(ys), yName)
	}
	runID := fmt.Sprintf("%s_%s_%d", material, kind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := ScanMetadata{
		ID:         runID,
		Material:   material,
		Kind:       kind,
		Timestamp:  time.Now(),
		Functional: functional,
		Results:    results,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{xName, yName}); err != nil {
		return "", err
	}
	for i := range xs {
		row := []string{
			strconv.FormatFloat(xs[i], 'g', -1, 64),
			strconv.FormatFloat(ys[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]ScanMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ScanMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]ScanMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta ScanMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*ScanMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta ScanMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads back the x/y columns of a saved scan.
func (s *Store) LoadSamples(runID string) (xs, ys []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errX != nil || errY != nil {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	return xs, ys, nil
}
