package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/config"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/logging"
	"github.com/san-kum/asciiscape/internal/renderers"
)

var version = "dev"

var (
	dataDir       string
	configFile    string
	debug         bool
	logFile       string
	driver        string
	colorMode     string
	variant       string
	preset        string
	fps           int
	seed          uint64
	reducedMotion bool
	width         float64
	height        float64
	dpr           float64
	duration      float64
	format        string
	outPath       string
	every         int
	scenarioFile  string
	runs          int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asciiscape",
		Short: "animated ascii hero canvases",
		Args:  cobra.MaximumNArgs(1),
		RunE:  play,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.BoolVar(&debug, "debug", false, "debug logging")
	pf.StringVar(&logFile, "log-file", "", "log file (full-screen drivers default to <data>/asciiscape.log)")
	pf.StringVar(&colorMode, "mode", config.DefaultColorMode, "colour mode: light, dark or auto")
	pf.StringVar(&variant, "variant", "background", "hero variant: background, below or dark")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 varies every run)")
	pf.BoolVar(&reducedMotion, "reduced-motion", false, "draw one static frame")

	playCmd := &cobra.Command{
		Use:   "play [theme]",
		Short: "play a theme interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  play,
	}
	playCmd.Flags().StringVar(&driver, "driver", config.DefaultDriver, "driver: tui, term, window or headless")
	playCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration for the headless driver")

	renderCmd := &cobra.Command{
		Use:   "render [theme]",
		Short: "render a theme offline to text, svg or gif",
		Args:  cobra.MaximumNArgs(1),
		RunE:  render,
	}
	addSizeFlags(renderCmd)
	renderCmd.Flags().StringVar(&format, "format", "text", "output format: text, svg or gif")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")
	renderCmd.Flags().IntVar(&every, "every", 3, "gif: keep every nth frame")

	recordCmd := &cobra.Command{
		Use:   "record [theme]",
		Short: "record a headless run into the data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  record,
	}
	addSizeFlags(recordCmd)
	recordCmd.Flags().StringVar(&scenarioFile, "scenario", "", "scenario file (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recordings",
		RunE:  listRecordings,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [recording_id]",
		Short: "plot a recording",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRecording,
	}
	plotCmd.Flags().StringVarP(&outPath, "out", "o", "", "also write the glyph series as svg")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [recording_id]",
		Short: "export recording frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [recording_id]",
		Short: "export a recording and its frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (stdout if empty)")

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range renderers.NewRegistry().List() {
				fmt.Println(t)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [theme]",
		Short: "list available presets for a theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for theme: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [theme...]",
		Short: "benchmark themes in both colour modes",
		RunE:  bench,
	}
	addSizeFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 1, "seeds per theme; above 1 runs an ensemble in the configured mode")

	rootCmd.AddCommand(playCmd, renderCmd, recordCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, themesCmd, presetsCmd, benchCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, rootCmd, fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}

func addSizeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "viewport height in pixels")
	cmd.Flags().Float64Var(&dpr, "dpr", config.DefaultDPR, "device pixel ratio")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
}

// loadConfig layers defaults, preset, config file, environment and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	theme := config.DefaultTheme
	if len(args) > 0 {
		theme = args[0]
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(theme, preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets(theme))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Theme = args[0]
	}
	if flags.Changed("mode") {
		cfg.ColorMode = colorMode
	}
	if flags.Changed("variant") {
		cfg.Hero.Variant = variant
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("reduced-motion") {
		cfg.ReducedMotion = reducedMotion
	}
	if flags.Changed("driver") {
		cfg.Driver = driver
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("dpr") {
		cfg.DPR = dpr
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}

	if cfg.ColorMode == "auto" {
		cfg.ColorMode = string(ascii.Light)
		if lipgloss.HasDarkBackground() {
			cfg.ColorMode = string(ascii.Dark)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging sends the log to a file when the driver owns the terminal.
func setupLogging(cfg *config.Config, fullScreen bool) (*slog.Logger, io.Closer, error) {
	file := cfg.LogFile
	if file == "" && fullScreen {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, nil, err
		}
		file = filepath.Join(cfg.DataDir, "asciiscape.log")
	}
	return logging.Setup(logging.Options{Debug: debug, File: file})
}

func sessionOptions(cfg *config.Config, logger *slog.Logger) headless.Options {
	opts := headless.Options{
		Theme:         ascii.Theme(cfg.Theme),
		Mode:          cfg.Mode(),
		Width:         cfg.Width,
		Height:        cfg.Height,
		DPR:           cfg.DPR,
		ReducedMotion: cfg.ReducedMotion,
		CellWidth:     cfg.CellWidth,
		CellHeight:    cfg.CellHeight,
		FPS:           cfg.FPS,
		Page:          cfg.PageConfig(),
		Logger:        logger,
	}
	if cfg.Seed != 0 {
		opts.Renderer = append(opts.Renderer, renderers.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))))
	}
	return opts
}
