package runner

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/qelab/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		NProcs:     4,
		MPICommand: "mpirun",
		Executables: config.Executables{
			PW: "/opt/qe/bin/pw.x",
		},
	}
}

func TestCommandMPI(t *testing.T) {
	r := New(testConfig())
	got := r.Command("/opt/qe/bin/pw.x", "scf.in")
	want := []string{"mpirun", "-np", "4", "/opt/qe/bin/pw.x", "-in", "scf.in"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Command = %v, want %v", got, want)
	}
}

func TestCommandSerial(t *testing.T) {
	cfg := testConfig()
	cfg.NProcs = 1
	r := New(cfg)
	got := r.Command("pw.x", "scf.in")
	want := []string{"pw.x", "-in", "scf.in"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Command = %v, want %v", got, want)
	}
}

// A stub script stands in for pw.x: it echoes the deck named by -in,
// which checks the cwd handling and the .out redirection without QE.
func TestPWWritesOutputFile(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "fake-pw.x")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\ncat \"$2\"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	deck := filepath.Join(dir, "si.scf.in")
	content := "&CONTROL\n  calculation = 'scf'\n/\n"
	if err := os.WriteFile(deck, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig()
	cfg.NProcs = 1
	cfg.Executables.PW = stub
	r := New(cfg)

	res, err := r.PW(context.Background(), deck)
	if err != nil {
		t.Fatalf("PW: %v", err)
	}
	if res.OutputPath != filepath.Join(dir, "si.scf.out") {
		t.Errorf("output path = %s", res.OutputPath)
	}
	if res.Output != content {
		t.Errorf("Output = %q, want the deck echoed back", res.Output)
	}
	data, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if res.Output != string(data) {
		t.Errorf("Output field does not match the .out file")
	}
	if res.Elapsed <= 0 {
		t.Errorf("elapsed = %v", res.Elapsed)
	}
}

func TestPWMissingExecutable(t *testing.T) {
	dir := t.TempDir()
	deck := filepath.Join(dir, "scf.in")
	if err := os.WriteFile(deck, []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig()
	cfg.NProcs = 1
	cfg.Executables.PW = "/nonexistent/pw.x"
	r := New(cfg)

	_, err := r.PW(context.Background(), deck)
	if err == nil {
		t.Fatal("expected an error for a missing executable")
	}
	if !strings.Contains(err.Error(), "pw.x") {
		t.Errorf("error should name the binary: %v", err)
	}
}
