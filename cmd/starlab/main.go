package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/starlab/internal/analysis"
	"github.com/san-kum/starlab/internal/audio"
	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/director"
	"github.com/san-kum/starlab/internal/experiment"
	"github.com/san-kum/starlab/internal/export"
	"github.com/san-kum/starlab/internal/stellar"
	"github.com/san-kum/starlab/internal/storage"
	"github.com/san-kum/starlab/internal/telemetry"
	"github.com/san-kum/starlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	preset     string
	configFile string
	seed       int64
	speed      float64
	frameRate  int
	themeName  string
	silent     bool
	duration   float64
	step       float64
	interval   float64
	record     bool
	svgOut     string
	svgWidth   int
	svgHeight  int
	svgScene   bool
	svgScale   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "starlab",
		Short: "stellar lifecycle sandbox",
		Long:  "starlab collapses a nebula into a star, burns it, blows it up\nand leaves a remnant, live in your terminal or headless for study.",
		RunE:  runLive,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".starlab", "data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a star live",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "classic", "preset configuration")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	liveCmd.Flags().Float64Var(&speed, "speed", 1.0, "initial time scale")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&themeName, "theme", "deepspace", "color theme")
	liveCmd.Flags().BoolVar(&silent, "silent", false, "disable sound")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a star headless",
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&preset, "preset", "classic", "preset configuration")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	runCmd.Flags().Float64Var(&duration, "time", 300.0, "simulated seconds")
	runCmd.Flags().Float64Var(&step, "step", 1.0/60.0, "seconds per step")
	runCmd.Flags().Float64Var(&interval, "interval", 0.25, "sampling cadence")
	runCmd.Flags().BoolVar(&record, "record", false, "save the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "analyze a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a recorded run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 900, "chart width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 360, "chart height")
	exportSVGCmd.Flags().BoolVar(&svgScene, "scene", false, "replay the run and render its final frame instead")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 4, "dot pitch for --scene")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	phasesCmd := &cobra.Command{
		Use:   "phases",
		Short: "describe the lifecycle phases",
		RunE:  listPhases,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark stepping at several cloud sizes",
		RunE:  benchSizes,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [plan.yaml]",
		Short: "run a parameter sweep or seeded ensemble",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweepPlan,
	}

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, phasesCmd,
		benchCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig resolves preset, then config file, then explicit flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.GetPreset(preset)
	}
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("speed") {
		cfg.TimeScale = speed
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	viz.SetTheme(themeName)

	dir := director.New(cfg)

	var snd viz.Sound
	if !silent {
		proc := audio.NewProcessor()
		if err := proc.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "audio unavailable: %v\n", err)
		} else {
			defer proc.Stop()
		}
		dir.AddCueSink(proc)
		snd = proc
	}

	m := viz.NewModel(cfg, dir, snd, frameRate)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	// A clock seed would make a recorded run unreplayable.
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running seed %d for %.0fs...\n", cfg.Seed, duration)
	result, err := experiment.Run(ctx, cfg, experiment.Config{
		Duration: duration,
		Step:     step,
		Interval: interval,
	})
	if err != nil {
		if result == nil || !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Println("interrupted, keeping the partial run")
	}

	printRun(result)

	if record {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(presetLabel(), cfg, result.History, result.Final)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func presetLabel() string {
	if configFile != "" {
		return "custom"
	}
	return preset
}

func printRun(r *experiment.Result) {
	fmt.Printf("completed in %v (%d steps)\n\n", r.Wall.Round(time.Millisecond), r.Steps)

	fmt.Println("phase timeline:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s\t%.1fs\n", stellar.NebulaCollapse, 0.0)
	for _, tr := range r.Transitions {
		fmt.Fprintf(w, "  %s\t%.1fs\n", tr.To, tr.AtTime)
	}
	w.Flush()

	f := r.Final
	fmt.Printf("\nfinal phase: %s", f.Phase)
	if f.RemnantKind != "" {
		fmt.Printf(" (%s)", f.RemnantKind)
	}
	fmt.Println()
	fmt.Printf("core mass: %.4f\n", f.ConsumedMass)
	fmt.Printf("star radius: %.2f\n", f.StarRadius)
	fmt.Printf("particles: %d free, %d stuck, %d consumed\n", f.Free, f.Stuck, f.Consumed)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tDURATION\tFINAL\tREMNANT")
	for _, run := range runs {
		remnant := run.RemnantKind
		if remnant == "" {
			remnant = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%s\t%s\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FinalPhase,
			remnant,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	columns := []struct {
		caption string
		get     func(telemetry.Sample) float64
	}{
		{"core mass", func(s telemetry.Sample) float64 { return s.Mass }},
		{"star radius", func(s telemetry.Sample) float64 { return s.StarRadius }},
		{"capture radius", func(s telemetry.Sample) float64 { return s.CaptureRadius }},
		{"free particles", func(s telemetry.Sample) float64 { return float64(s.Free) }},
		{"stuck particles", func(s telemetry.Sample) float64 { return float64(s.Stuck) }},
	}

	for _, col := range columns {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = col.get(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(col.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	fmt.Println("time in phase:")
	spans := analysis.PhaseSpans(samples)
	for _, p := range stellar.Phases() {
		if d := spans[p.String()]; d > 0 {
			fmt.Printf("  %-16s %.1fs\n", p, d)
		}
	}
	fmt.Println()

	if rate, err := analysis.MassGrowthRate(samples); err == nil {
		fmt.Printf("mass growth: %.6f per second\n", rate)
	}
	peak, at := analysis.PeakStarRadius(samples)
	fmt.Printf("peak star radius: %.2f at %.1fs\n", peak, at)
	if period, err := analysis.PulsationPeriod(samples); err == nil {
		fmt.Printf("pulsation period: %.2fs\n", period)
	}
	fmt.Println()

	radius := make([]float64, len(samples))
	for i, s := range samples {
		radius[i] = s.StarRadius
	}
	ps := analysis.PowerSpectrum(radius)
	if len(ps) >= 8 {
		graph := asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("star radius power spectrum"),
		)
		fmt.Println(graph)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportCSV(args[0], os.Stdout)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(args[0], os.Stdout)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}

	var doc string
	if svgScene {
		cfg, err := st.LoadConfig(runID)
		if err != nil {
			return err
		}
		meta, err := st.Load(runID)
		if err != nil {
			return err
		}
		doc = renderFinalFrame(cfg, meta.Duration)
	} else {
		samples, err := st.LoadSeries(runID)
		if err != nil {
			return err
		}
		doc = export.ChartSVG(samples, svgWidth, svgHeight)
	}
	if doc == "" {
		return fmt.Errorf("nothing to export for %s", runID)
	}

	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

// renderFinalFrame replays a recorded config to its end and rasterizes
// the last frame. The replay is deterministic because recorded configs
// always carry a concrete seed.
func renderFinalFrame(cfg *config.Config, duration float64) string {
	d := director.New(cfg)
	for d.TotalElapsed() < duration {
		d.Advance(1.0 / 60.0)
	}

	scene := viz.NewScene()
	canvas := viz.NewCanvas(120, 40)
	scene.Render(canvas, d.Views())
	return export.CanvasSVG(canvas, svgScale)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCLOUD\tSTAR BURN\tBH CHANCE")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.0fs\t%.0f%%\n",
			name, cfg.Nebula.CloudCount, cfg.Star.Duration, cfg.Remnant.BlackHoleChance*100)
	}
	return w.Flush()
}

func listPhases(cmd *cobra.Command, args []string) error {
	descriptions := map[stellar.Phase]string{
		stellar.NebulaCollapse: "dust falls inward; the core grows by capture until critical mass",
		stellar.MainSequence:   "stable burn; the surface pulses and sheds a light wind",
		stellar.RedGiant:       "the envelope swells and cools; the wind thickens",
		stellar.Supernova:      "detonation; shockwave and debris race out as the flash fades",
		stellar.Remnant:        "black hole with disk and jets, or neutron star with beams",
	}
	for _, p := range stellar.Phases() {
		fmt.Printf("  %-16s %s\n", p, descriptions[p])
	}
	return nil
}

func benchSizes(cmd *cobra.Command, args []string) error {
	sizes := []int{500, 1500, 4200, 9000}
	steps := []float64{1.0 / 60.0, 1.0 / 120.0}

	fmt.Println("benchmarking collapse and burn")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CLOUD\tSTEP\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		for _, dt := range steps {
			cfg, err := config.GetPreset("classic")
			if err != nil {
				return err
			}
			cfg.Nebula.CloudCount = size
			cfg.Seed = 42

			result, err := experiment.Run(context.Background(), cfg, experiment.Config{
				Duration: 6,
				Step:     dt,
				Interval: 1,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(w, "%d\t%.4fs\t%d\t%v\t%.0f\n",
				size, dt, result.Steps,
				result.Wall.Round(time.Millisecond),
				float64(result.Steps)/result.Wall.Seconds())
		}
	}
	return w.Flush()
}

func runSweepPlan(cmd *cobra.Command, args []string) error {
	sw, err := experiment.LoadSweep(args[0])
	if err != nil {
		return err
	}
	// Unseeded plans still need comparable points.
	if sw.Seed == 0 {
		sw.Seed = 1
	}

	base := config.DefaultConfig()
	if sw.Preset != "" {
		base, err = config.GetPreset(sw.Preset)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if sw.IsEnsemble() {
		return runEnsemble(ctx, base, sw)
	}

	fmt.Printf("sweep %q: %s from %g to %g in %d steps\n\n",
		sw.Name, sw.Parameter, sw.Min, sw.Max, sw.Steps)

	points, err := experiment.RunSweep(ctx, base, sw)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tFINAL\tREMNANT\tIGNITED\tMASS")
	for _, pt := range points {
		kind := pt.Kind
		if kind == "" {
			kind = "-"
		}
		ignited := "-"
		if pt.IgnitedAt > 0 {
			ignited = fmt.Sprintf("%.1fs", pt.IgnitedAt)
		}
		fmt.Fprintf(w, "%g\t%s\t%s\t%s\t%.4f\n",
			pt.Value, pt.FinalPhase, kind, ignited, pt.FinalMass)
	}
	return w.Flush()
}

func runEnsemble(ctx context.Context, base *config.Config, sw *experiment.Sweep) error {
	runs := sw.Runs
	if runs <= 0 {
		runs = 8
	}

	fmt.Printf("ensemble %q: %d runs of %.0fs\n\n", sw.Name, runs, sw.Duration)

	rc := experiment.Config{Duration: sw.Duration, Step: sw.Step}
	if rc.Step <= 0 {
		rc.Step = 1.0 / 60.0
	}

	results, err := experiment.NewEnsemble(base, runs, sw.Seed).Run(ctx, rc)
	if err != nil {
		return err
	}

	sum := experiment.Summarize(results)
	fmt.Printf("ignited: %d/%d\n", sum.Ignited, sum.Runs)
	if sum.Ignited > 0 {
		fmt.Printf("mean ignition: %.1fs\n", sum.MeanIgnition)
	}
	fmt.Printf("mean final mass: %.4f\n", sum.MeanMass)
	fmt.Printf("remnants: %d black holes, %d neutron stars\n\n", sum.BlackHoles, sum.NeutronStars)

	transitions := experiment.TransitionTimes(results)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REACHED\tMIN\tMEAN\tMAX\tRUNS")
	for _, p := range stellar.Phases()[1:] {
		if st, ok := transitions[p.String()]; ok {
			fmt.Fprintf(w, "%s\t%.1fs\t%.1fs\t%.1fs\t%d\n", p, st.Min, st.Mean, st.Max, st.N)
		}
	}
	return w.Flush()
}
