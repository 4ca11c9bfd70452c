package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/pendulums/internal/analysis"
	"github.com/san-kum/pendulums/internal/automation"
	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/experiment"
	"github.com/san-kum/pendulums/internal/export"
	"github.com/san-kum/pendulums/internal/gui"
	"github.com/san-kum/pendulums/internal/sim"
	"github.com/san-kum/pendulums/internal/storage"
	"github.com/san-kum/pendulums/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string

	count       int
	delta       float64
	seed        int64
	variant     string
	resetMs     int
	ticks       int
	sampleEvery int
	frameRate   int
	theme       string

	pendulumIdx int
	showPhase   bool
	pngFile     string
	outFile     string

	sweepFrom  float64
	sweepTo    float64
	sweepSteps int

	trials  int
	perturb float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pendulums",
		Short: "double pendulum ensembles with particle trails",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.RunInteractive(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pendulums", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "default", "preset configuration")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write logs to this file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the ensemble in the terminal",
		RunE:  runLive,
	}
	ensembleFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick and edit a preset in the terminal, then run it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			closeLog, err := setupTUILog()
			if err != nil {
				return err
			}
			defer closeLog()
			return viz.RunInteractive(cfg)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the ensemble in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, name, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(name, cfg)
		},
	}
	ensembleFlags(guiCmd)
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and store the samples",
		RunE:  runHeadless,
	}
	ensembleFlags(runCmd)
	runFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot particles, spread and energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngFile, "png", "", "also write the spread chart to this PNG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency and divergence analysis of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&pendulumIdx, "pendulum", 0, "pendulum index")
	analyzeCmd.Flags().BoolVar(&showPhase, "phase", false, "print the (a1, a2) phase portrait")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "run headless and draw the final frame as SVG",
		RunE:  exportSVG,
	}
	ensembleFlags(exportSVGCmd)
	runFlags(exportSVGCmd)
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "pendulums.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets, or print one as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "spread against perturbation step δ",
		RunE:  runSweep,
	}
	runFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first δ")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.01, "last δ")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 8, "number of δ values")
	sweepCmd.Flags().StringVar(&pngFile, "png", "", "write the sweep chart to this PNG")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a yaml scenario of presets and overrides",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "jitter the initial angles and compare outcomes",
		RunE:  runMonteCarlo,
	}
	runFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 0.01, "max angle jitter in radians")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure headless ticks per second",
		RunE:  benchEnsemble,
	}
	ensembleFlags(benchCmd)
	runFlags(benchCmd)

	rootCmd.AddCommand(liveCmd, tuiCmd, guiCmd, runCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, sweepCmd, scenarioCmd,
		monteCarloCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func ensembleFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of pendulums")
	cmd.Flags().Float64Var(&delta, "delta", config.DefaultDelta, "radius step between pendulums")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&variant, "variant", "disc", "particle shape (disc, triangle, square)")
	cmd.Flags().IntVar(&resetMs, "reset-ms", config.DefaultResetIntervalMs, "reset interval in ms (0 disables)")
}

func runFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "ticks between samples")
}

// loadConfig resolves the preset, then the config file, then any flag the
// user set explicitly. It returns the config and a name for the run.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	name := preset
	cfg, err := config.MustPreset(preset)
	if err != nil {
		return nil, "", fmt.Errorf("%w (available: %v)", err, config.ListPresets())
	}

	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Ensemble.Count = count
	}
	if flags.Changed("delta") {
		cfg.Ensemble.Delta = delta
	}
	if flags.Changed("seed") {
		cfg.Ensemble.Seed = seed
	}
	if flags.Changed("variant") {
		cfg.Particle.Variant = variant
	}
	if flags.Changed("reset-ms") {
		cfg.Ensemble.ResetIntervalMs = resetMs
	}
	if flags.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if flags.Changed("sample-every") {
		cfg.Run.SampleEvery = sampleEvery
	}
	if flags.Changed("fps") {
		cfg.View.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

// setupTUILog keeps log output off the terminal while bubbletea owns it.
func setupTUILog() (func(), error) {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "pendulums")
	if err != nil {
		return nil, err
	}
	return func() { f.Close() }, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupTUILog()
	if err != nil {
		return err
	}
	defer closeLog()

	log.Printf("live: %s, %d pendulums, δ=%g", name, cfg.Ensemble.Count, cfg.Ensemble.Delta)
	return viz.Run(name, cfg)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s: %d pendulums for %d ticks...\n", name, cfg.Ensemble.Count, cfg.Run.Ticks)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		if result == nil {
			return err
		}
		fmt.Printf("stopped early: %v\n", err)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(exp.Info(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Printf("samples: %d\n", len(result.Samples))
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, k := range names {
		fmt.Printf("  %s: %.6f\n", k, m[k])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tCOUNT\tDELTA\tTICKS\tVARIANT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%d\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Count,
			run.Delta,
			run.TicksTaken,
			run.Variant,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *sim.Result, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, &sim.Result{Samples: samples, Metrics: meta.Metrics, TicksTaken: meta.TicksTaken}, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(result.Samples))

	series := []struct {
		caption string
		fn      func(sim.Sample) float64
	}{
		{"live particles", func(s sim.Sample) float64 { return float64(s.Particles) }},
		{"ensemble spread", func(s sim.Sample) float64 { return s.Spread }},
		{"mean energy", func(s sim.Sample) float64 { return s.Energy }},
	}

	for _, s := range series {
		graph := asciigraph.Plot(result.Series(s.fn),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if pngFile != "" {
		p, err := export.LinePlot(meta.ID, "tick", "spread",
			export.Series{Name: "spread", X: result.Ticks(), Y: result.Series(func(s sim.Sample) float64 { return s.Spread })})
		if err != nil {
			return err
		}
		if err := export.SavePNG(pngFile, p, 8, 4); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngFile)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if pendulumIdx < 0 || pendulumIdx >= meta.Count {
		return fmt.Errorf("pendulum %d out of range [0, %d)", pendulumIdx, meta.Count)
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	a1 := result.AngleSeries(pendulumIdx)
	ps := analysis.PowerSpectrum(a1)
	if len(ps) > 1 {
		graph := asciigraph.Plot(ps,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (a1 of pendulum %d)", pendulumIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(a1, meta.SampleEvery)
	fmt.Printf("dominant frequency: %.5f cycles/tick\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.1f ticks\n", 1.0/freq)
	}
	fmt.Printf("divergence exponent: %.5f per tick\n", analysis.Divergence(result))

	if showPhase {
		fmt.Println()
		fmt.Println(analysis.PhasePortraitToASCII(analysis.PhasePortrait(result, pendulumIdx), 60, 20))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return storage.WriteSamplesCSV(out, result.Samples)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args[0])
	if err != nil {
		return err
	}

	return storage.WriteRunJSON(os.Stdout, meta, result.Samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(name, cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	if _, err := exp.Run(ctx); err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteSVG(f, exp.GetSimulator().Ensemble(), export.DefaultSVGOptions()); err != nil {
		return err
	}
	fmt.Printf("wrote %s after %d ticks\n", outFile, cfg.Run.Ticks)
	return nil
}

func showPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("presets:")
		for _, p := range config.ListPresets() {
			fmt.Printf("  %s\n", p)
		}
		return nil
	}

	cfg, err := config.MustPreset(args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	deltas := analysis.LinearDeltas(sweepFrom, sweepTo, sweepSteps)
	exp := experiment.New("sweep", cfg)
	points, err := analysis.SweepPerturbation(ctx, cfg.EnsembleConfig(), exp.SimConfig(), deltas)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DELTA\tFINAL SPREAD\tMAX SPREAD\tEXPONENT")
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%.3f\t%.3f\t%.5f\n", p.Delta, p.FinalSpread, p.MaxSpread, p.Exponent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if pngFile != "" {
		xs := make([]float64, len(points))
		final := make([]float64, len(points))
		peak := make([]float64, len(points))
		for i, p := range points {
			xs[i], final[i], peak[i] = p.Delta, p.FinalSpread, p.MaxSpread
		}
		p, err := export.LinePlot("spread vs δ", "δ", "spread",
			export.Series{Name: "final", X: xs, Y: final},
			export.Series{Name: "max", X: xs, Y: peak})
		if err != nil {
			return err
		}
		if err := export.SavePNG(pngFile, p, 8, 4); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngFile)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunScenario(ctx, sc, st, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tTICKS\tMAX SPREAD\tRUN")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%s\t%d\t%.3f\t%s\n", i+1, r.Step.Preset, r.Result.TicksTaken, r.Result.Metrics["max_spread"], r.RunID)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
	}, os.Stdout)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tA1\tA2\tFINAL SPREAD\tMAX SPREAD\tSTABLE")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.3f\t%.3f\t%v\n", r.TrialID, r.A1, r.A2, r.FinalSpread, r.MaxSpread, r.Stable)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
	return nil
}

func benchEnsemble(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ens, err := ensemble.New(cfg.EnsembleConfig(), cfg.Viewport())
	if err != nil {
		return err
	}
	ens.SetVariant(int(cfg.Variant()))

	start := time.Now()
	for i := 0; i < cfg.Run.Ticks; i++ {
		ens.AdvanceAll()
	}
	elapsed := time.Since(start)

	perTick := elapsed / time.Duration(max(cfg.Run.Ticks, 1))
	fmt.Printf("pendulums: %d\n", ens.Len())
	fmt.Printf("ticks: %d in %v\n", cfg.Run.Ticks, elapsed)
	fmt.Printf("per tick: %v (%.0f ticks/s)\n", perTick, float64(cfg.Run.Ticks)/elapsed.Seconds())
	fmt.Printf("live particles at end: %d\n", ens.ParticleCount())
	return nil
}
