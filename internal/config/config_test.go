package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Functional != DefaultFunctional {
		t.Errorf("functional = %q, want %q", cfg.Functional, DefaultFunctional)
	}
	if cfg.NProcs != DefaultNProcs {
		t.Errorf("nprocs = %d, want %d", cfg.NProcs, DefaultNProcs)
	}
	if cfg.Executables.PW == "" {
		t.Errorf("pw executable should never be empty")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Functional = "PBEsol"
	cfg.NProcs = 16
	cfg.Executables.PW = "/opt/qe/bin/pw.x"

	path := filepath.Join(t.TempDir(), "qelab.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Functional != "PBEsol" || got.NProcs != 16 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Executables.PW != "/opt/qe/bin/pw.x" {
		t.Errorf("pw = %q, want /opt/qe/bin/pw.x", got.Executables.PW)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("functional: LDA\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Functional != "LDA" {
		t.Errorf("functional = %q, want LDA", cfg.Functional)
	}
	if cfg.NProcs != DefaultNProcs {
		t.Errorf("missing nprocs should keep the default, got %d", cfg.NProcs)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QE_NPROCS", "8")
	t.Setenv("QE_MPI_COMMAND", "srun")
	t.Setenv("QE_PW_EXECUTABLE", "/custom/pw.x")

	cfg := DefaultConfig()
	if cfg.NProcs != 8 {
		t.Errorf("QE_NPROCS not applied: %d", cfg.NProcs)
	}
	if cfg.MPICommand != "srun" {
		t.Errorf("QE_MPI_COMMAND not applied: %q", cfg.MPICommand)
	}
	if cfg.Executables.PW != "/custom/pw.x" {
		t.Errorf("QE_PW_EXECUTABLE not applied: %q", cfg.Executables.PW)
	}
}

func TestEnvInvalidNProcsIgnored(t *testing.T) {
	t.Setenv("QE_NPROCS", "not-a-number")
	cfg := DefaultConfig()
	if cfg.NProcs != DefaultNProcs {
		t.Errorf("invalid QE_NPROCS should be ignored, got %d", cfg.NProcs)
	}
}
