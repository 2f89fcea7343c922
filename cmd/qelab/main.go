package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/qelab/internal/config"
	"github.com/san-kum/qelab/internal/convergence"
	"github.com/san-kum/qelab/internal/eos"
	"github.com/san-kum/qelab/internal/plot"
	"github.com/san-kum/qelab/internal/pseudo"
	"github.com/san-kum/qelab/internal/qeinput"
	"github.com/san-kum/qelab/internal/qeoutput"
	"github.com/san-kum/qelab/internal/radii"
	"github.com/san-kum/qelab/internal/report"
	"github.com/san-kum/qelab/internal/runner"
	"github.com/san-kum/qelab/internal/stability"
	"github.com/san-kum/qelab/internal/storage"
	"github.com/san-kum/qelab/internal/tui"
	"github.com/san-kum/qelab/internal/units"
)

var (
	dataDir    string
	configFile string
	functional string

	// input deck parameters
	ecutwfc float64
	ecutrho float64
	kpoints int
	convThr float64
	profile string
	alat    float64
	deckOut string

	// eos / conv parameters
	figure    string
	saveScan  bool
	material  string
	threshold float64
	scale     float64
	divisor   float64
	refIndex  int

	// radius parameters
	oxidation    int
	coordination int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qelab",
		Short: "plane-wave DFT workflow lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qelab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")

	inputCmd := &cobra.Command{
		Use:   "input [material]",
		Short: "generate a pw.x SCF input deck",
		Args:  cobra.ExactArgs(1),
		RunE:  generateInput,
	}
	inputCmd.Flags().Float64Var(&ecutwfc, "ecutwfc", 0, "wavefunction cutoff (Ry), 0 = from pseudo tables")
	inputCmd.Flags().Float64Var(&ecutrho, "ecutrho", 0, "density cutoff (Ry), 0 = from pseudo tables")
	inputCmd.Flags().IntVar(&kpoints, "kpoints", 8, "Monkhorst-Pack grid size")
	inputCmd.Flags().Float64Var(&convThr, "conv-thr", 1e-8, "scf convergence threshold")
	inputCmd.Flags().StringVar(&profile, "profile", "", "accuracy profile (fast, standard, precise)")
	inputCmd.Flags().Float64Var(&alat, "alat", 0, "lattice constant (Bohr), 0 = material default")
	inputCmd.Flags().StringVar(&functional, "functional", "", "exchange-correlation functional")
	inputCmd.Flags().StringVar(&deckOut, "output", "", "output file (default stdout)")

	kpathCmd := &cobra.Command{
		Use:   "kpath [lattice]",
		Short: "print a high-symmetry K_POINTS card",
		Long:  "Lattices: " + strings.Join(qeinput.Lattices(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE:  printKPath,
	}

	parseCmd := &cobra.Command{
		Use:   "parse [output-file]",
		Short: "extract results from pw.x output",
		Args:  cobra.ExactArgs(1),
		RunE:  parseOutput,
	}

	eosCmd := &cobra.Command{
		Use:   "eos [csv]",
		Short: "fit a Birch-Murnaghan equation of state to a volume,energy CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  fitEOS,
	}
	eosCmd.Flags().StringVar(&figure, "figure", "", "write a figure (png/svg) to this path")
	eosCmd.Flags().BoolVar(&saveScan, "save", false, "save the scan and fit to the data directory")
	eosCmd.Flags().StringVar(&material, "material", "material", "material label")
	eosCmd.Flags().StringVar(&functional, "functional", "PBE", "functional label for saved scans")

	convCmd := &cobra.Command{
		Use:   "conv [csv]",
		Short: "analyze a parameter,energy convergence series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeConvergence,
	}
	convCmd.Flags().Float64Var(&threshold, "threshold", 1.0, "convergence threshold (after scaling)")
	convCmd.Flags().Float64Var(&scale, "scale", units.RyToMeVFactor, "unit scale applied to deviations")
	convCmd.Flags().Float64Var(&divisor, "divisor", 1, "per-atom divisor")
	convCmd.Flags().IntVar(&refIndex, "ref", -1, "reference index (negative counts from the end)")
	convCmd.Flags().StringVar(&figure, "figure", "", "write a figure (png/svg) to this path")

	pseudoCmd := &cobra.Command{
		Use:   "pseudo",
		Short: "pseudopotential database and cache",
	}
	pseudoListCmd := &cobra.Command{
		Use:   "list [functional]",
		Short: "list available elements",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPseudo,
	}
	pseudoFetchCmd := &cobra.Command{
		Use:   "fetch [elements...]",
		Short: "download pseudopotentials into the cache",
		Args:  cobra.MinimumNArgs(1),
		RunE:  fetchPseudo,
	}
	pseudoFetchCmd.Flags().StringVar(&functional, "functional", "", "exchange-correlation functional")
	pseudoCutoffsCmd := &cobra.Command{
		Use:   "cutoffs [elements...]",
		Short: "recommended plane-wave cutoffs for a set of elements",
		Args:  cobra.MinimumNArgs(1),
		RunE:  printCutoffs,
	}
	pseudoCutoffsCmd.Flags().StringVar(&functional, "functional", "", "exchange-correlation functional")
	pseudoCmd.AddCommand(pseudoListCmd, pseudoFetchCmd, pseudoCutoffsCmd)

	radiusCmd := &cobra.Command{
		Use:   "radius [element]",
		Short: "Shannon ionic radius lookup",
		Args:  cobra.ExactArgs(1),
		RunE:  lookupRadius,
	}
	radiusCmd.Flags().IntVar(&oxidation, "ox", 0, "oxidation state")
	radiusCmd.Flags().IntVar(&coordination, "coord", 6, "coordination number")

	neutralCmd := &cobra.Command{
		Use:   "neutral [element=count:ox ...]",
		Short: "check charge neutrality of a composition",
		Long:  "Example: qelab neutral Sr=1:+2 Ti=1:+4 O=3:-2",
		Args:  cobra.MinimumNArgs(1),
		RunE:  checkNeutrality,
	}

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "Born mechanical stability checks",
	}
	stabilityCubicCmd := &cobra.Command{
		Use:   "cubic [C11] [C12] [C44]",
		Short: "cubic Born criteria (GPa)",
		Args:  cobra.ExactArgs(3),
		RunE:  checkCubic,
	}
	stabilityHexCmd := &cobra.Command{
		Use:   "hex [C11] [C12] [C13] [C33] [C44]",
		Short: "hexagonal Born criteria (GPa)",
		Args:  cobra.ExactArgs(5),
		RunE:  checkHexagonal,
	}
	stabilityCmd.AddCommand(stabilityCubicCmd, stabilityHexCmd)

	runCmd := &cobra.Command{
		Use:   "run [deck]",
		Short: "run pw.x on an input deck and summarize the output",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalculation,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved scans",
		RunE:  listScans,
	}

	exportCmd := &cobra.Command{
		Use:   "export [scan_id]",
		Short: "export a saved scan as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportScan,
	}

	rootCmd.AddCommand(inputCmd, kpathCmd, parseCmd, eosCmd, convCmd,
		pseudoCmd, radiusCmd, neutralCmd, stabilityCmd, runCmd, listCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

// fccCell builds the primitive fcc vectors for a lattice constant given
// in Bohr, converted to the angstrom card pw.x expects with ibrav = 0.
func fccCell(alatBohr float64) [][3]float64 {
	h := units.BohrToAngstrom(alatBohr) / 2
	return [][3]float64{
		{0, h, h},
		{h, 0, h},
		{h, h, 0},
	}
}

// siliconAlat is the experimental lattice constant in Bohr.
const siliconAlat = 10.2625

func generateInput(cmd *cobra.Command, args []string) error {
	name := strings.ToLower(args[0])
	if name != "silicon" && name != "si" {
		return fmt.Errorf("unknown material %q (known: silicon)", name)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if functional == "" {
		functional = cfg.Functional
	}
	if alat == 0 {
		alat = siliconAlat
	}

	entry, ok := pseudo.Info(functional, "Si")
	if !ok {
		return fmt.Errorf("no %s pseudopotential for Si", functional)
	}

	deck := qeinput.SCF{
		Prefix:       name,
		PseudoDir:    cfg.PseudoDir,
		OutDir:       cfg.OutputDir,
		ECutWfc:      ecutwfc,
		ECutRho:      ecutrho,
		ConvThr:      convThr,
		KPoints:      qeinput.CubicKPoints(kpoints),
		CellAngstrom: fccCell(alat),
		Species:      []qeinput.Species{{Symbol: "Si", Mass: 28.0855, Pseudo: entry.Filename}},
		Positions: []qeinput.Position{
			{Symbol: "Si"},
			{Symbol: "Si", X: 0.25, Y: 0.25, Z: 0.25},
		},
	}

	if profile != "" {
		p, ok := config.GetProfile(profile)
		if !ok {
			return fmt.Errorf("unknown profile %q (have: %s)", profile, strings.Join(config.ListProfiles(), ", "))
		}
		if !cmd.Flags().Changed("ecutwfc") {
			deck.ECutWfc = p.ECutWfc
		}
		if !cmd.Flags().Changed("ecutrho") {
			deck.ECutRho = p.ECutRho
		}
		if !cmd.Flags().Changed("kpoints") {
			deck.KPoints = qeinput.CubicKPoints(p.KPoints)
		}
		if !cmd.Flags().Changed("conv-thr") {
			deck.ConvThr = p.ConvThr
		}
	}

	// Pseudo tables win over profile floors when higher.
	wfc, rho := pseudo.RecommendedCutoffs(functional, []string{"Si"})
	if deck.ECutWfc < wfc && !cmd.Flags().Changed("ecutwfc") {
		deck.ECutWfc = wfc
	}
	if deck.ECutRho < rho && !cmd.Flags().Changed("ecutrho") {
		deck.ECutRho = rho
	}

	text, err := deck.Render()
	if err != nil {
		return err
	}

	if deckOut == "" {
		fmt.Print(text)
		return nil
	}
	return os.WriteFile(deckOut, []byte(text), 0644)
}

func printKPath(cmd *cobra.Command, args []string) error {
	card, err := qeinput.KPathCard(strings.ToUpper(args[0]), nil)
	if err != nil {
		return err
	}
	fmt.Print(card)
	return nil
}

func parseOutput(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	res := qeoutput.Parse(string(data))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "converged\t%v\n", res.Converged)
	if res.HasEnergy {
		fmt.Fprintf(w, "total energy\t%.8f Ry\t(%.6f eV)\n", res.EnergyRy, res.EnergyEV)
	}
	if res.HasFermi {
		fmt.Fprintf(w, "Fermi energy\t%.4f eV\n", res.FermiEV)
	}
	if res.HasIterations {
		fmt.Fprintf(w, "scf iterations\t%d\n", res.Iterations)
	}
	if res.HasVolume {
		fmt.Fprintf(w, "cell volume\t%.4f Bohr^3\n", res.VolumeBohr3)
	}
	if res.HasPressure {
		fmt.Fprintf(w, "pressure\t%.2f kbar\t(%.3f GPa)\n", res.PressureKbar, units.KbarToGPa(res.PressureKbar))
	}
	if res.HasForce {
		fmt.Fprintf(w, "total force\t%.6f Ry/Bohr\n", res.ForceRyBohr)
	}
	if res.HasGap {
		fmt.Fprintf(w, "band edges\t%.4f / %.4f eV\tgap %.4f eV\n", res.VBM, res.CBM, res.CBM-res.VBM)
	}
	if res.WallTime != "" {
		fmt.Fprintf(w, "walltime\t%s\n", res.WallTime)
	}
	return w.Flush()
}

// readXYCSV reads a two-column CSV, skipping a non-numeric header row.
func readXYCSV(path string) (xs, ys []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	for i, rec := range records {
		if len(rec) < 2 {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errX != nil || errY != nil {
			if i == 0 {
				continue // header
			}
			return nil, nil, fmt.Errorf("%s: bad row %d: %v", path, i+1, rec)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

func fitEOS(cmd *cobra.Command, args []string) error {
	volumes, energies, err := readXYCSV(args[0])
	if err != nil {
		return err
	}

	params, err := eos.Fit(volumes, energies, eos.DefaultFitOptions())
	if err != nil {
		return err
	}

	fmt.Println(report.EOSFit(material, params))
	fmt.Println(report.EOSGraph(volumes, params, 70, 10))

	if figure != "" {
		if err := plot.EOSCurve(figure, material, volumes, energies, params); err != nil {
			return err
		}
		fmt.Println(report.Subtle.Render("figure written to " + figure))
	}

	if saveScan {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(material, "eos", functional, "volume_bohr3", "energy_ry", volumes, energies, map[string]float64{
			"e0_ry":    params.E0,
			"v0_bohr3": params.V0,
			"b0_gpa":   units.RyBohr3ToGPa(params.B0),
			"b_prime":  params.BPrime,
		})
		if err != nil {
			return err
		}
		fmt.Println(report.Subtle.Render("saved as " + id))
	}
	return nil
}

func analyzeConvergence(cmd *cobra.Command, args []string) error {
	params, values, err := readXYCSV(args[0])
	if err != nil {
		return err
	}

	opts := convergence.Options{
		ReferenceIndex: refIndex,
		Scale:          scale,
		Divisor:        divisor,
	}
	a, err := convergence.Analyze(values, threshold, opts)
	if err != nil {
		return err
	}

	fmt.Println(report.Convergence(params, a, threshold, "meV/atom"))
	fmt.Println(report.ConvergenceGraph(a, 70, 8))

	if figure != "" {
		err := plot.ConvergenceFigure(figure, "convergence", "parameter", params, a.Deviations, threshold)
		if err != nil {
			return err
		}
		fmt.Println(report.Subtle.Render("figure written to " + figure))
	}
	return nil
}

func listPseudo(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		for _, f := range pseudo.Functionals() {
			els, _ := pseudo.Elements(f)
			fmt.Printf("%-8s %d elements\n", f, len(els))
		}
		return nil
	}

	els, err := pseudo.Elements(args[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "element\tecutwfc (Ry)\tecutrho (Ry)\tfile")
	for _, e := range els {
		entry, _ := pseudo.Info(args[0], e)
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%s\n", e, entry.ECutWfc, entry.ECutWfc*entry.Dual, entry.Filename)
	}
	return w.Flush()
}

func fetchPseudo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if functional == "" {
		functional = cfg.Functional
	}

	mgr := pseudo.NewManager(cfg.PseudoDir)
	failed, err := tui.Run(mgr, functional, args)
	if err != nil {
		return err
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed to fetch: %s", strings.Join(failed, ", "))
	}
	return nil
}

func printCutoffs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if functional == "" {
		functional = cfg.Functional
	}

	wfc, rho := pseudo.RecommendedCutoffs(functional, args)
	fmt.Printf("ecutwfc = %.0f Ry\necutrho = %.0f Ry\n", wfc, rho)
	return nil
}

func lookupRadius(cmd *cobra.Command, args []string) error {
	element := args[0]

	if !cmd.Flags().Changed("ox") {
		states := radii.States(element)
		if len(states) == 0 {
			return fmt.Errorf("no Shannon radii for %q", element)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "oxidation\tcoordination\tradius (Å)")
		for _, s := range states {
			r, _ := radii.Lookup(element, s[0], s[1])
			fmt.Fprintf(w, "%+d\t%d\t%.3f\n", s[0], s[1], r)
		}
		return w.Flush()
	}

	r, ok := radii.Lookup(element, oxidation, coordination)
	if !ok {
		return fmt.Errorf("no Shannon radius for %s %+d in %d-fold coordination", element, oxidation, coordination)
	}
	fmt.Printf("%.3f Å\n", r)
	return nil
}

func checkNeutrality(cmd *cobra.Command, args []string) error {
	composition := make(map[string]int)
	oxidations := make(map[string]int)
	for _, arg := range args {
		elem, rest, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("bad composition term %q, want element=count:ox", arg)
		}
		countStr, oxStr, ok := strings.Cut(rest, ":")
		if !ok {
			return fmt.Errorf("bad composition term %q, want element=count:ox", arg)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count <= 0 {
			return fmt.Errorf("bad count in %q", arg)
		}
		ox, err := strconv.Atoi(oxStr)
		if err != nil {
			return fmt.Errorf("bad oxidation state in %q", arg)
		}
		composition[elem] = count
		oxidations[elem] = ox
	}

	neutral, total, err := radii.ChargeNeutral(composition, oxidations)
	if err != nil {
		return err
	}
	if neutral {
		fmt.Println(report.Pass.Render("charge neutral"))
	} else {
		fmt.Println(report.Fail.Render(fmt.Sprintf("net charge %+g", total)))
	}
	return nil
}

func parseElastic(args []string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad elastic constant %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func checkCubic(cmd *cobra.Command, args []string) error {
	c, err := parseElastic(args)
	if err != nil {
		return err
	}
	r := stability.CheckCubic(c[0], c[1], c[2])
	fmt.Println(report.Stability("cubic", r))
	fmt.Printf("Voigt: B = %.1f GPa, G = %.1f GPa\n",
		stability.VoigtBulkModulus(c[0], c[1]),
		stability.VoigtShearModulus(c[0], c[1], c[2]))
	return nil
}

func checkHexagonal(cmd *cobra.Command, args []string) error {
	c, err := parseElastic(args)
	if err != nil {
		return err
	}
	r := stability.CheckHexagonal(c[0], c[1], c[2], c[3], c[4])
	fmt.Println(report.Stability("hexagonal", r))
	return nil
}

func runCalculation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	r := runner.New(cfg)
	fmt.Printf("running pw.x on %s (%d procs)\n", filepath.Base(args[0]), cfg.NProcs)

	res, err := r.PW(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("finished in %s, output in %s\n", res.Elapsed.Round(10*time.Millisecond), res.OutputPath)
	if res.Parsed.Converged {
		fmt.Println(report.Pass.Render("converged"))
	} else {
		fmt.Println(report.Fail.Render("NOT converged"))
	}
	if res.Parsed.HasEnergy {
		fmt.Printf("total energy = %.8f Ry\n", res.Parsed.EnergyRy)
	}
	return nil
}

func listScans(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	scans, err := st.List()
	if err != nil {
		return err
	}
	if len(scans) == 0 {
		fmt.Println("no saved scans")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "id\tmaterial\tkind\tfunctional\tdate")
	for _, s := range scans {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Material, s.Kind, s.Functional, s.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func exportScan(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	xs, ys, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, xs, ys)
}
