// Package runner executes Quantum ESPRESSO binaries over input decks on
// disk and hands the combined output back for parsing.
package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/qelab/internal/config"
	"github.com/san-kum/qelab/internal/qeoutput"
)

type Runner struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Runner {
	return &Runner{cfg: cfg}
}

// RunResult wraps a finished calculation. Output holds the raw pw.x
// text; Parsed the extracted quantities.
type RunResult struct {
	InputPath  string
	OutputPath string
	Output     string
	Parsed     qeoutput.Result
	Elapsed    time.Duration
}

// Command builds the argv for one calculation without running it.
// NProcs > 1 wraps the executable in the configured MPI launcher.
func (r *Runner) Command(executable, inputFile string) []string {
	if r.cfg.NProcs > 1 {
		return []string{
			r.cfg.MPICommand, "-np", strconv.Itoa(r.cfg.NProcs),
			executable, "-in", inputFile,
		}
	}
	return []string{executable, "-in", inputFile}
}

// PW runs pw.x on the deck at inputPath. The working directory is the
// deck's directory, stdout and stderr land in the sibling .out file, and
// the parsed result is returned alongside the raw text.
func (r *Runner) PW(ctx context.Context, inputPath string) (RunResult, error) {
	return r.run(ctx, r.cfg.Executables.PW, inputPath)
}

// DOS runs dos.x; the deck references the prefix of an earlier SCF run.
func (r *Runner) DOS(ctx context.Context, inputPath string) (RunResult, error) {
	return r.run(ctx, r.cfg.Executables.DOS, inputPath)
}

// Bands runs bands.x for post-processing a band-structure calculation.
func (r *Runner) Bands(ctx context.Context, inputPath string) (RunResult, error) {
	return r.run(ctx, r.cfg.Executables.Bands, inputPath)
}

// Run executes an arbitrary configured binary (pp.x, projwfc.x, ph.x) on
// an input deck with the same MPI and output conventions.
func (r *Runner) Run(ctx context.Context, executable, inputPath string) (RunResult, error) {
	return r.run(ctx, executable, inputPath)
}

func (r *Runner) run(ctx context.Context, executable, inputPath string) (RunResult, error) {
	res := RunResult{InputPath: inputPath}
	dir := filepath.Dir(inputPath)
	base := filepath.Base(inputPath)
	res.OutputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".out"

	argv := r.Command(executable, base)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	out, err := os.Create(res.OutputPath)
	if err != nil {
		return res, err
	}
	cmd.Stdout = out
	cmd.Stderr = out

	start := time.Now()
	runErr := cmd.Run()
	res.Elapsed = time.Since(start)
	out.Close()

	data, readErr := os.ReadFile(res.OutputPath)
	if readErr == nil {
		res.Output = string(data)
		res.Parsed = qeoutput.Parse(res.Output)
	}
	if runErr != nil {
		return res, fmt.Errorf("runner: %s on %s: %w", filepath.Base(executable), base, runErr)
	}
	return res, nil
}
