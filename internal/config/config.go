package config

import (
	"os"
	"os/exec"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFunctional = "PBE"
	DefaultNProcs     = 4
	DefaultMPI        = "mpirun"
	DefaultPseudoDir  = "pseudo"
	DefaultOutputDir  = "calc"
)

type Config struct {
	PseudoDir   string      `yaml:"pseudo_dir"`
	OutputDir   string      `yaml:"output_dir"`
	Functional  string      `yaml:"functional"`
	NProcs      int         `yaml:"nprocs"`
	MPICommand  string      `yaml:"mpi_command"`
	Executables Executables `yaml:"executables"`
}

type Executables struct {
	PW      string `yaml:"pw"`
	PP      string `yaml:"pp"`
	Bands   string `yaml:"bands"`
	DOS     string `yaml:"dos"`
	ProjWfc string `yaml:"projwfc"`
	Ph      string `yaml:"ph"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		PseudoDir:  DefaultPseudoDir,
		OutputDir:  DefaultOutputDir,
		Functional: DefaultFunctional,
		NProcs:     DefaultNProcs,
		MPICommand: DefaultMPI,
		Executables: Executables{
			PW:      findExecutable("pw.x"),
			PP:      findExecutable("pp.x"),
			Bands:   findExecutable("bands.x"),
			DOS:     findExecutable("dos.x"),
			ProjWfc: findExecutable("projwfc.x"),
			Ph:      findExecutable("ph.x"),
		},
	}
	cfg.applyEnv()
	return cfg
}

// findExecutable checks the common QE install locations before falling
// back to PATH. The bare name is returned when nothing resolves, so the
// eventual exec error names the missing binary.
func findExecutable(name string) string {
	wellKnown := []string{
		"/usr/local/bin/" + name,
		"/opt/qe/bin/" + name,
		"/usr/bin/" + name,
	}
	for _, p := range wellKnown {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	if p, err := exec.LookPath(name); err == nil {
		return p
	}
	return name
}

func (c *Config) applyEnv() {
	if v := os.Getenv("QE_NPROCS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.NProcs = n
		}
	}
	if v := os.Getenv("QE_MPI_COMMAND"); v != "" {
		c.MPICommand = v
	}
	if v := os.Getenv("QE_PW_EXECUTABLE"); v != "" {
		c.Executables.PW = v
	}
	if v := os.Getenv("QE_PSEUDO_DIR"); v != "" {
		c.PseudoDir = v
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
