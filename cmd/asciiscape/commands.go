package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/asciiscape/internal/ascii"
	"github.com/san-kum/asciiscape/internal/automation"
	"github.com/san-kum/asciiscape/internal/export"
	"github.com/san-kum/asciiscape/internal/headless"
	"github.com/san-kum/asciiscape/internal/storage"
	"github.com/san-kum/asciiscape/internal/term"
	"github.com/san-kum/asciiscape/internal/tui"
	"github.com/san-kum/asciiscape/internal/window"
)

func play(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closer, err := setupLogging(cfg, cfg.Driver != "headless")
	if err != nil {
		return err
	}
	defer closer.Close()

	opts := sessionOptions(cfg, logger)
	logger.Info("play", "theme", cfg.Theme, "mode", cfg.ColorMode, "driver", cfg.Driver)

	switch cfg.Driver {
	case "tui":
		return tui.Run(cmd.Context(), opts)
	case "term":
		return term.Run(cmd.Context(), opts)
	case "window":
		return window.Run(opts)
	}

	sess, err := headless.NewSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.Advance(time.Duration(cfg.Duration * float64(time.Second)))
	fmt.Println(sess.Frame())
	return nil
}

// output opens outPath, or stdout when it is empty.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func render(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	capture := 0
	if format == "gif" {
		capture = max(1, every)
	}
	sc := &automation.Scenario{
		Name:          "render",
		Theme:         cfg.Theme,
		ColorMode:     cfg.ColorMode,
		Variant:       cfg.Hero.Variant,
		Width:         cfg.Width,
		Height:        cfg.Height,
		DPR:           cfg.DPR,
		FPS:           cfg.FPS,
		Seed:          cfg.Seed,
		ReducedMotion: cfg.ReducedMotion,
		Duration:      cfg.Duration,
	}
	pc := cfg.PageConfig()
	res, err := automation.Run(cmd.Context(), sc, automation.Options{Logger: logger, Page: &pc, Capture: capture})
	if err != nil {
		return err
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()

	bg := ascii.PaletteFor(res.Mode).Background
	switch format {
	case "text":
		_, err = fmt.Fprintln(out, res.Final)
	case "svg":
		_, err = io.WriteString(out, export.FrameToSVG(res.Final, cfg.CellWidth, cfg.CellHeight, bg))
	case "gif":
		frames := res.Frames
		if len(frames) == 0 {
			frames = append(frames, res.Final)
		}
		delay := max(1, capture*100/cfg.FPS)
		err = export.WriteGIF(out, frames, bg, delay)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	logger.Info("rendered", "theme", res.Theme, "format", format, "frames", res.Summary.Frames)
	return nil
}

func record(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	logger, closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	var sc *automation.Scenario
	if scenarioFile != "" {
		sc, err = automation.LoadScenario(scenarioFile)
		if err != nil {
			return err
		}
	} else {
		sc = &automation.Scenario{
			Name:          "idle",
			Theme:         cfg.Theme,
			ColorMode:     cfg.ColorMode,
			Variant:       cfg.Hero.Variant,
			Width:         cfg.Width,
			Height:        cfg.Height,
			DPR:           cfg.DPR,
			FPS:           cfg.FPS,
			Seed:          cfg.Seed,
			ReducedMotion: cfg.ReducedMotion,
			Duration:      cfg.Duration,
		}
	}

	pc := cfg.PageConfig()
	res, err := automation.Run(cmd.Context(), sc, automation.Options{Logger: logger, Page: &pc})
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.Recording{
		Theme:     string(res.Theme),
		ColorMode: string(res.Mode),
		Scenario:  sc.Name,
		Seed:      sc.Seed,
		FPS:       sc.FPS,
		Width:     sc.Width,
		Height:    sc.Height,
		DPR:       sc.DPR,
		Duration:  sc.Duration,
		Summary:   res.Summary,
		Metrics:   res.Values,
	}, res.Stats)
	if err != nil {
		return err
	}

	fmt.Printf("recording: %s\n", id)
	fmt.Printf("frames: %d, mean glyphs: %.1f, max glyphs: %d, mean alpha: %.3f\n",
		res.Summary.Frames, res.Summary.MeanGlyphs, res.Summary.MaxGlyphs, res.Summary.MeanAlpha)
	return nil
}

func listRecordings(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	recs, err := st.List()
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("no recordings found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTHEME\tMODE\tTIME\tDURATION\tFRAMES\tSCENARIO")

	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%d\t%s\n",
			rec.ID,
			rec.Theme,
			rec.ColorMode,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Duration,
			rec.Summary.Frames,
			rec.Scenario,
		)
	}

	return w.Flush()
}

func plotRecording(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("recording: %s\n", rec.ID)
	fmt.Printf("theme: %s (%s)\n", rec.Theme, rec.ColorMode)
	fmt.Printf("frames: %d\n\n", len(stats))

	glyphs := make([]float64, len(stats))
	alpha := make([]float64, len(stats))
	dts := make([]float64, len(stats))
	for i, s := range stats {
		glyphs[i] = float64(s.Glyphs)
		alpha[i] = s.MeanAlpha
		dts[i] = s.Dt * 1000
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{glyphs, "glyphs drawn"},
		{alpha, "mean alpha"},
		{dts, "frame dt (ms)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if outPath != "" {
		svg := export.SeriesToSVG(glyphs, 800, 200, "#6ce714")
		if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outPath)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := storage.WriteFramesCSV(w, stats); err != nil {
		return err
	}
	return w.Flush()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rec, err := st.Load(args[0])
	if err != nil {
		return err
	}
	stats, err := st.LoadStats(args[0])
	if err != nil {
		return err
	}

	out, err := output()
	if err != nil {
		return err
	}
	defer out.Close()
	return storage.ExportJSON(out, *rec, stats)
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	logger, closer, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	themes := ascii.Themes
	if len(args) > 0 {
		themes = themes[:0:0]
		for _, a := range args {
			themes = append(themes, ascii.Theme(a))
		}
	}

	sc := &automation.Scenario{
		Name:     "bench",
		Width:    cfg.Width,
		Height:   cfg.Height,
		DPR:      cfg.DPR,
		FPS:      cfg.FPS,
		Seed:     cfg.Seed,
		Duration: cfg.Duration,
		Steps: []automation.Step{
			{At: cfg.Duration / 3, Pointer: &automation.Point{X: cfg.Width / 2, Y: cfg.Height / 2}},
			{At: cfg.Duration * 2 / 3, Leave: true},
		},
	}
	pc := cfg.PageConfig()
	opts := automation.Options{Logger: logger, Page: &pc}

	if runs > 1 {
		sc.ColorMode = cfg.ColorMode
		return benchEnsemble(cmd, sc, themes, opts)
	}

	fmt.Printf("benchmarking %s\n\n", strings.Join(themeNames(themes), ", "))
	start := time.Now()
	results, err := automation.Sweep(cmd.Context(), sc, themes, []ascii.ColorMode{ascii.Light, ascii.Dark}, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THEME\tMODE\tFRAMES\tMEAN GLYPHS\tMAX GLYPHS\tMEAN ALPHA")
	frames := 0
	for _, r := range results {
		frames += r.Summary.Frames
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%d\t%.3f\n",
			r.Theme, r.Mode, r.Summary.Frames, r.Summary.MeanGlyphs, r.Summary.MaxGlyphs, r.Summary.MeanAlpha)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d frames in %v (%.0f frames/sec)\n", frames, elapsed.Round(time.Millisecond), float64(frames)/elapsed.Seconds())
	return nil
}

// benchEnsemble runs every theme over consecutive seeds and reports the
// spread of mean glyph counts.
func benchEnsemble(cmd *cobra.Command, sc *automation.Scenario, themes []ascii.Theme, opts automation.Options) error {
	seedStart := sc.Seed
	if seedStart == 0 {
		seedStart = 1
	}
	fmt.Printf("benchmarking %s over seeds %d..%d\n\n", strings.Join(themeNames(themes), ", "), seedStart, seedStart+uint64(runs-1))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THEME\tRUNS\tMEAN GLYPHS\tMIN\tMAX\tMEAN ALPHA")
	for _, theme := range themes {
		run := *sc
		run.Theme = string(theme)
		results, err := automation.Ensemble(cmd.Context(), &run, runs, seedStart, opts)
		if err != nil {
			return err
		}

		lo, hi, sum, alpha := results[0].Summary.MeanGlyphs, results[0].Summary.MeanGlyphs, 0.0, 0.0
		for _, r := range results {
			lo = min(lo, r.Summary.MeanGlyphs)
			hi = max(hi, r.Summary.MeanGlyphs)
			sum += r.Summary.MeanGlyphs
			alpha += r.Summary.MeanAlpha
		}
		n := float64(len(results))
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.3f\n", theme, len(results), sum/n, lo, hi, alpha/n)
	}
	return w.Flush()
}

func themeNames(themes []ascii.Theme) []string {
	out := make([]string, len(themes))
	for i, t := range themes {
		out[i] = string(t)
	}
	return out
}
