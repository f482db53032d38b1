package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/dotgrid/internal/config"
	"github.com/san-kum/dotgrid/internal/gui"
	"github.com/san-kum/dotgrid/internal/raster"
	"github.com/san-kum/dotgrid/internal/storage"
	"github.com/san-kum/dotgrid/internal/trace"
	"github.com/san-kum/dotgrid/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	debug      bool
	// Animation overrides
	cellSize    float64
	probability float64
	hueMin      float64
	hueMax      float64
	fadeAlpha   float64
	debounce    time.Duration
	frameRate   int
	pixelScale  float64
	dpr         float64
	// Headless runs
	width      float64
	height     float64
	frames     int
	every      int
	scale      float64
	outPath    string
	traceField string
	plotField  string
	saveRun    bool
	ensemble   int
	plotRows   int
)

// main registers the commands and runs the terminal animation when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "dotgrid",
		Short:         "animated grid of pulsing, color-shifting dots",
		RunE:          runTUI,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".dotgrid", "data directory for trace runs")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = from clock)")
	pf.BoolVar(&debug, "debug", false, "write debug log to dotgrid.log")
	pf.Float64Var(&cellSize, "cell-size", config.DefaultConfig().CellSize, "grid cell size in logical pixels")
	pf.Float64Var(&probability, "probability", config.DefaultConfig().SeedProbability, "chance that a cell gets a dot")
	pf.Float64Var(&hueMin, "hue-min", config.DefaultConfig().HueMin, "lower hue bound (degrees)")
	pf.Float64Var(&hueMax, "hue-max", config.DefaultConfig().HueMax, "upper hue bound (degrees)")
	pf.Float64Var(&fadeAlpha, "fade", config.DefaultConfig().FadeAlpha, "alpha of the per-frame black overlay")
	pf.DurationVar(&debounce, "debounce", config.DefaultDebounce, "quiet period before re-seeding after a resize")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.Float64Var(&pixelScale, "pixel-scale", config.DefaultPixelScale, "logical pixels per braille sub-pixel (tui)")
	pf.Float64Var(&dpr, "dpr", 0, "device pixel ratio (0 = detect)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE:  runGUI,
	}

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "render headlessly to an animated GIF or a PNG",
		RunE:  runRecord,
	}
	addViewportFlags(recordCmd)
	recordCmd.Flags().IntVar(&every, "every", 2, "capture one frame out of every N")
	recordCmd.Flags().Float64Var(&scale, "scale", 1, "resample output by this factor")
	recordCmd.Flags().StringVar(&outPath, "out", "dotgrid.gif", "output file (.gif or .png)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "sample scene statistics headlessly and save a run",
		RunE:  runTrace,
	}
	addViewportFlags(traceCmd)
	traceCmd.Flags().StringVar(&traceField, "field", "hue", "series to plot ("+strings.Join(trace.Fields(), ", ")+")")
	traceCmd.Flags().BoolVar(&saveRun, "save", true, "save the run under --data")
	traceCmd.Flags().IntVar(&ensemble, "ensemble", 1, "run this many consecutive seeds in parallel")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved trace runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved trace run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotField, "field", "", "series to plot (default: all)")
	plotCmd.Flags().IntVar(&plotRows, "rows", 10, "chart height in rows")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s hue [%g, %g]  cell %g  p %g\n", name, p.HueMin, p.HueMax, p.CellSize, p.SeedProbability)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "config file tools",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, recordCmd, traceCmd, runsCmd, plotCmd, exportJSONCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", 320, "viewport width in logical pixels")
	cmd.Flags().Float64Var(&height, "height", 200, "viewport height in logical pixels")
	cmd.Flags().IntVar(&frames, "frames", 300, "number of frames")
}

// resolveConfig layers defaults, preset, config file and changed flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := cfg.Apply(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("cell-size") {
		cfg.CellSize = cellSize
	}
	if flags.Changed("probability") {
		cfg.SeedProbability = probability
	}
	if flags.Changed("hue-min") {
		cfg.HueMin = hueMin
	}
	if flags.Changed("hue-max") {
		cfg.HueMax = hueMax
	}
	if flags.Changed("fade") {
		cfg.FadeAlpha = fadeAlpha
	}
	if flags.Changed("debounce") {
		cfg.Debounce = debounce
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("pixel-scale") {
		cfg.PixelScale = pixelScale
	}
	if flags.Changed("dpr") {
		cfg.DevicePixelRatio = dpr
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger discards output unless --debug is set, in which case the
// standard logger is pointed at dotgrid.log.
func newLogger() (*log.Logger, func(), error) {
	if !debug {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	f, err := tea.LogToFile("dotgrid.log", "dotgrid")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	return log.Default(), func() { f.Close() }, nil
}

func resolvedSeed(cfg *config.Config) int64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return time.Now().UnixNano()
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	return viz.Run(viz.Options{
		Params:     cfg.AnimParams(),
		PresetName: preset,
		Presets:    config.AnimPresets(),
		Debounce:   cfg.Debounce,
		FPS:        cfg.FPS,
		PixelScale: cfg.PixelScale,
		Seed:       cfg.Seed,
		Logger:     logger,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	return gui.Run(gui.Options{
		Params:           cfg.AnimParams(),
		PresetName:       preset,
		Presets:          config.AnimPresets(),
		Debounce:         cfg.Debounce,
		FPS:              cfg.FPS,
		Seed:             cfg.Seed,
		DevicePixelRatio: cfg.DevicePixelRatio,
		Logger:           logger,
	})
}

func headlessOptions(cfg *config.Config) trace.Options {
	ratio := cfg.DevicePixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return trace.Options{
		Params:   cfg.AnimParams(),
		Width:    width,
		Height:   height,
		DPR:      ratio,
		Frames:   frames,
		Interval: time.Second / time.Duration(cfg.FPS),
		Seed:     resolvedSeed(cfg),
	}
}

func runRecord(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := headlessOptions(cfg)
	opts.Logger = logger
	surface := raster.NewSurface(opts.Width, opts.Height, opts.DPR)
	opts.Surface = surface

	asPNG := strings.EqualFold(filepath.Ext(outPath), ".png")
	var rec *raster.Recorder
	if !asPNG {
		rec = raster.NewRecorder(surface, every, scale, opts.Interval)
		opts.Observers = append(opts.Observers, rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := trace.Run(ctx, opts); err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if asPNG {
		err = surface.WritePNG(f, scale)
	} else {
		err = rec.WriteGIF(f)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	fmt.Printf("wrote %s (seed %d)\n", outPath, opts.Seed)
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	opts := headlessOptions(cfg)
	opts.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if ensemble > 1 {
		return runEnsemble(ctx, opts)
	}

	res, err := trace.Run(ctx, opts)
	if err != nil {
		return err
	}

	chart, err := trace.Plot(res.Samples, traceField, 80, 10)
	if err != nil {
		return err
	}
	fmt.Println(chart)
	fmt.Println()

	if !saveRun {
		return nil
	}
	runID, err := saveTrace(opts, res)
	if err != nil {
		return err
	}
	fmt.Printf("run saved: %s\n", runID)
	return nil
}

func runEnsemble(ctx context.Context, opts trace.Options) error {
	e := trace.NewEnsemble(opts, ensemble, opts.Seed)
	results, err := e.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tDOTS\tHUE\tLUMINANCE\tDISPLACEMENT\tRUN")
	for i, res := range results {
		runOpts := opts
		runOpts.Seed = e.Seeds()[i]
		m := storage.Summary(res.Samples)

		runID := "-"
		if saveRun {
			if runID, err = saveTrace(runOpts, res); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%.0f\t%.2f\t%.2f\t%.2f\t%s\n",
			runOpts.Seed,
			m["dots"],
			m["final_mean_hue"],
			m["final_mean_luminance"],
			m["avg_displacement"],
			runID,
		)
	}
	return w.Flush()
}

func saveTrace(opts trace.Options, res *trace.Result) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	runID, err := st.Save(storage.RunMetadata{
		Preset:   preset,
		Seed:     opts.Seed,
		Width:    opts.Width,
		Height:   opts.Height,
		DPR:      opts.DPR,
		Frames:   len(res.Samples),
		Interval: float64(opts.Interval) / float64(time.Millisecond),
		Params:   opts.Params,
	}, res.Samples)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}
	return runID, nil
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tVIEWPORT\tSEED\tDOTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%gx%g@%g\t%d\t%.0f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Width, run.Height, run.DPR,
			run.Seed,
			run.Metrics["dots"],
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

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	fields := trace.Fields()
	if plotField != "" {
		fields = []string{plotField}
	}

	fmt.Printf("%s  preset=%s seed=%d frames=%d\n\n", meta.ID, meta.Preset, meta.Seed, meta.Frames)
	for _, f := range fields {
		chart, err := trace.Plot(samples, f, 80, plotRows)
		if err != nil {
			return err
		}
		fmt.Println(chart)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	return st.ExportJSON(os.Stdout, args[0])
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
