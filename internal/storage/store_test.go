package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	volumes := []float64{250.0, 260.0, 270.0, 280.0, 290.0}
	energies := []float64{-15.82, -15.84, -15.85, -15.845, -15.835}
	results := map[string]float64{
		"v0_bohr3": 270.1,
		"b0_gpa":   98.6,
	}

	runID, err := st.Save("silicon", "eos", "PBE", "volume_bohr3", "energy_ry", volumes, energies, results)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Material != "silicon" {
		t.Errorf("expected material 'silicon', got '%s'", meta.Material)
	}
	if meta.Kind != "eos" {
		t.Errorf("expected kind 'eos', got '%s'", meta.Kind)
	}
	if meta.Results["b0_gpa"] != 98.6 {
		t.Errorf("expected b0_gpa 98.6, got %f", meta.Results["b0_gpa"])
	}

	xs, ys, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(xs) != 5 || len(ys) != 5 {
		t.Fatalf("expected 5 samples, got %d/%d", len(xs), len(ys))
	}
	if xs[2] != 270.0 || ys[2] != -15.85 {
		t.Errorf("sample 2 = (%v, %v), want (270, -15.85)", xs[2], ys[2])
	}
}

func TestStoreSaveLengthMismatch(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Save("x", "eos", "PBE", "v", "e", []float64{1, 2}, []float64{1}, nil); err == nil {
		t.Error("mismatched sample lengths should fail")
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	_, err = st.Save("mgo", "convergence", "LDA", "ecutwfc_ry", "energy_ry", []float64{30}, []float64{-35.2}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("fe", "eos", "PBE", "v", "e", []float64{100}, []float64{-50}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "samples.csv")); os.IsNotExist(err) {
		t.Error("samples.csv not created")
	}
}

func TestExportJSON(t *testing.T) {
	meta := &ScanMetadata{
		Material:   "silicon",
		Kind:       "eos",
		Functional: "PBE",
		Results:    map[string]float64{"v0_bohr3": 270.1},
	}
	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, []float64{260, 270}, []float64{-15.84, -15.85}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var got ExportData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if got.Material != "silicon" || got.Samples != 2 {
		t.Errorf("export = %+v", got)
	}
	if got.Results["v0_bohr3"] != 270.1 {
		t.Errorf("results lost in export: %+v", got.Results)
	}
}
