package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/randwalk/internal/config"
	"github.com/san-kum/randwalk/internal/export"
	"github.com/san-kum/randwalk/internal/metrics"
	"github.com/san-kum/randwalk/internal/sim"
	"github.com/san-kum/randwalk/internal/storage"
	"github.com/san-kum/randwalk/internal/tui"
	"github.com/san-kum/randwalk/internal/view"
	"github.com/san-kum/randwalk/internal/viz"
	"github.com/san-kum/randwalk/internal/walk"
)

var (
	dataDir       string
	steps         int
	maxStepLength float64
	modeName      string
	seed          uint64
	frameRate     int
	themeName     string
	preset        string
	configFile    string
	overrides     []string
	verbose       bool
	// run output
	animate   bool
	save      bool
	svgPath   string
	pngPath   string
	imgWidth  int
	imgHeight int
	// ensemble
	numRuns int
	workers int
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "randwalk"})

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "randwalk",
		Short: "2d random walk generator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := vizOptions(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(opts)
		},
	}
	registerFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "generate a walk without the interactive view",
		Args:  cobra.NoArgs,
		RunE:  runWalk,
	}
	runCmd.Flags().BoolVar(&animate, "animate", false, "draw frames to the terminal while generating")
	runCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")
	runCmd.Flags().StringVar(&pngPath, "png", "", "write the final frame as PNG")
	addImageFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate a walk in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := vizOptions(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(opts)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run points to CSV",
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
		Use:   "export-svg [run_id] [file]",
		Short: "render a saved run to SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportImage(cmd, args, export.SVG)
		},
	}
	addImageFlags(exportSVGCmd)

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id] [file]",
		Short: "render a saved run to PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportImage(cmd, args, export.PNG)
		},
	}
	addImageFlags(exportPNGCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run many walks and compare the rms distance with theory",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 100, "number of walks")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "concurrent walks (0 uses every CPU)")

	rootCmd.AddCommand(runCmd, liveCmd, ensembleCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, exportPNGCmd, presetsCmd)
	return rootCmd
}

func registerFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	f.Float64Var(&maxStepLength, "max-step", config.DefaultMaxStepLength, "maximum step length")
	f.StringVar(&modeName, "mode", config.DefaultMode, "view mode ("+strings.Join(view.ModeNames(), ", ")+")")
	f.Uint64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
	f.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	f.StringVar(&themeName, "theme", config.DefaultTheme, "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringArrayVar(&overrides, "set", nil, "override a config field (key=value)")
	f.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func addImageFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&imgWidth, "width", 800, "image width")
	cmd.Flags().IntVar(&imgHeight, "height", 600, "image height")
}

func changed(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// resolveConfig layers defaults, preset, config file, --set overrides and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if len(overrides) > 0 {
		kv, err := config.ParseOverrides(overrides)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(kv); err != nil {
			return nil, fmt.Errorf("invalid override: %w", err)
		}
	}

	if changed(cmd, "steps") {
		cfg.Steps = steps
	}
	if changed(cmd, "max-step") {
		cfg.MaxStepLength = maxStepLength
	}
	if changed(cmd, "mode") {
		cfg.Mode = modeName
	}
	if changed(cmd, "seed") {
		cfg.Seed = seed
	}
	if changed(cmd, "fps") {
		cfg.FPS = frameRate
	}
	if changed(cmd, "theme") {
		cfg.Theme = themeName
	}
	if changed(cmd, "data") {
		cfg.DataDir = dataDir
	}

	if _, err := cfg.Params(); err != nil {
		return nil, err
	}
	if _, err := cfg.ViewMode(); err != nil {
		return nil, err
	}
	logger.Debug("resolved config", "steps", cfg.Steps, "max_step_length", cfg.MaxStepLength, "mode", cfg.Mode, "seed", cfg.Seed, "fps", cfg.FPS)
	return cfg, nil
}

func vizOptions(cmd *cobra.Command) (viz.Options, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return viz.Options{}, err
	}
	p, _ := cfg.Params()
	m, _ := cfg.ViewMode()
	if _, err := viz.LookupTheme(cfg.Theme); err != nil {
		return viz.Options{}, err
	}
	return viz.Options{Params: p, Mode: m, FPS: cfg.FPS, Theme: cfg.Theme}, nil
}

func runWalk(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, _ := cfg.Params()
	mode, _ := cfg.ViewMode()

	var surfaces view.Multi

	var live *tui.LiveRenderer
	if animate {
		live = tui.NewLiveRenderer(os.Stdout, cfg.FPS)
		if err := live.Start(); err != nil {
			return err
		}
		surfaces = append(surfaces, live)
	}

	var files []*export.FileSurface
	if svgPath != "" {
		files = append(files, &export.FileSurface{Path: svgPath, Format: export.SVG, Width: imgWidth, Height: imgHeight})
	}
	if pngPath != "" {
		files = append(files, &export.FileSurface{Path: pngPath, Format: export.PNG, Width: imgWidth, Height: imgHeight})
	}
	for _, f := range files {
		surfaces = append(surfaces, f)
	}

	sess := view.NewSession(surfaces, mode)
	id, err := sess.Start(p)
	if err != nil {
		return err
	}
	logger.Debug("run started", "steps", p.Steps, "seed", sess.Seed())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var interval time.Duration
	if animate && cfg.FPS > 0 {
		interval = time.Second / time.Duration(cfg.FPS)
	}
	driveErr := view.Drive(ctx, sess, id, interval)
	if live != nil {
		if err := live.Finish(sess.Status()); err != nil {
			return err
		}
	}
	if driveErr != nil {
		if !errors.Is(driveErr, context.Canceled) {
			return driveErr
		}
		logger.Warn("run interrupted", "step", sess.Step())
	}

	for _, f := range files {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Path, err)
		}
		logger.Info("wrote image", "path", f.Path)
	}

	st := sess.State()
	stats := metrics.Compute(st)
	end := st.Last()

	fmt.Printf("status: %s\n", sess.Status())
	fmt.Printf("current step: %d\n", st.Step())
	fmt.Printf("seed: %d\n", sess.Seed())
	fmt.Printf("final position: (%.4f, %.4f)\n", end.X, end.Y)
	fmt.Printf("final distance: %.4f\n", stats["final_distance"])
	fmt.Printf("expected rms: %.4f\n", metrics.ExpectedRMS(st.Step(), p.MaxStepLength))
	fmt.Printf("max radius: %.4f\n", stats["max_radius"])
	fmt.Printf("path length: %.4f\n", stats["path_length"])

	if save {
		store := storage.New(cfg.DataDir)
		store.SetLogger(logger)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(sess.Params(), sess.Seed(), mode.String(), st, stats)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p, _ := cfg.Params()

	e, err := sim.NewEnsemble(p, numRuns, cfg.Seed)
	if err != nil {
		return err
	}
	e.SetWorkers(workers)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := e.Run(ctx)
	if err != nil {
		return err
	}
	logger.Debug("ensemble done", "runs", len(results), "elapsed", time.Since(start))

	s := e.Summarize(results)
	fmt.Printf("runs: %d  steps: %d  max step: %.3f\n\n", s.Runs, s.Steps, p.MaxStepLength)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN")
	for _, name := range s.MetricNames() {
		fmt.Fprintf(w, "%s\t%.4f\n", name, s.Mean[name])
	}
	fmt.Fprintf(w, "rms distance\t%.4f\n", s.RMSDistance)
	fmt.Fprintf(w, "expected rms\t%.4f\n", s.ExpectedRMS)
	return w.Flush()
}

// openStore uses the resolved data_dir so runs saved through a config file
// or preset are found by the same flags.
func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	store := storage.New(cfg.DataDir)
	store.SetLogger(logger)
	return store, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := store.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tMAX\tSEED\tMODE\tDISTANCE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%d\t%s\t%.3f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.MaxStepLength,
			run.Seed,
			run.Mode,
			run.Metrics["final_distance"],
		)
	}

	return w.Flush()
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, *walk.State, error) {
	store, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	meta, err := store.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.LoadPoints(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, st, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("steps: %d  max step: %.3f  seed: %d\n\n", meta.Steps, meta.MaxStepLength, meta.Seed)

	if len(st.Points) < 2 {
		fmt.Println("nothing to plot: the walk never left the origin")
		return nil
	}

	xs := make([]float64, len(st.Points))
	ys := make([]float64, len(st.Points))
	for i, p := range st.Points {
		xs[i], ys[i] = p.X, p.Y
	}

	series := []struct {
		caption string
		data    []float64
	}{
		{"distance from origin", st.Radii()},
		{"x vs step", xs},
		{"y vs step", ys},
	}
	for _, s := range series {
		fmt.Println(asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		))
		fmt.Println()
	}

	fmt.Println("distance distribution")
	bins := view.Histogram(st.Radii(), view.DefaultBins)
	top := view.MaxCount(bins)
	for _, b := range bins {
		bar := 0
		if top > 0 {
			bar = b.Count * 50 / top
		}
		fmt.Printf("  %7.3f-%-7.3f %s %d\n", b.Lo, b.Hi, strings.Repeat("█", bar), b.Count)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	st, err := store.LoadPoints(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, st)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, st, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, st)
}

func exportImage(cmd *cobra.Command, args []string, format export.Format) error {
	meta, st, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	name := meta.Mode
	if changed(cmd, "mode") {
		name = modeName
	}
	mode, err := view.ParseMode(name)
	if err != nil {
		return err
	}

	out := &export.FileSurface{Path: args[1], Format: format, Width: imgWidth, Height: imgHeight}
	if err := out.Render(view.Build(st, mode)); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	logger.Info("wrote image", "run", meta.ID, "path", out.Path, "mode", mode)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTEPS\tMAX\tMODE\tFPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%s\t%d\n", name, p.Steps, p.MaxStepLength, p.Mode, p.FPS)
	}
	return w.Flush()
}
