package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/willbeason/fractol/pkg/display"
	"github.com/willbeason/fractol/pkg/fractal"
	"github.com/willbeason/fractol/pkg/palette"
	"github.com/willbeason/fractol/pkg/render"
)

const (
	flagWidth      = "width"
	flagHeight     = "height"
	flagIterations = "iterations"
	flagPalette    = "palette"
	flagZoom       = "zoom"
	flagShiftX     = "shift-x"
	flagShiftY     = "shift-y"
	flagOut        = "out"
	flagTitle      = "title"
	flagVerbose    = "verbose"
)

func mainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fractol",
		Short: "Render the Mandelbrot set to a PNG",
		Args:  cobra.ExactArgs(0),
		RunE:  runCmd,
	}

	// Defaults for zoom and shift come from the fractal's starting config.
	start := fractal.NewMandelbrot(fractal.Options{})

	flags := cmd.Flags()
	flags.Int(flagWidth, fractal.Width, "image width in pixels")
	flags.Int(flagHeight, fractal.Height, "image height in pixels")
	flags.Uint(flagIterations, fractal.EscapeCount, "maximum iterations per pixel")
	flags.String(flagPalette, "spectrum",
		fmt.Sprintf("escape palette, one of: %s", strings.Join(palette.Names(), ", ")))
	flags.Float64(flagZoom, start.Zoom, "zoom factor, values below 1 magnify")
	flags.Float64(flagShiftX, start.Shift.X, "real offset of the view")
	flags.Float64(flagShiftY, start.Shift.Y, "imaginary offset of the view")
	flags.StringP(flagOut, "o", "", "output file, defaults to out-<timestamp>.png")
	flags.Bool(flagTitle, false, "draw the fractal name in the corner")
	flags.BoolP(flagVerbose, "v", false, "log debug output")

	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func configFromFlags(cmd *cobra.Command) (fractal.Config, error) {
	flags := cmd.Flags()

	width, err := flags.GetInt(flagWidth)
	if err != nil {
		return fractal.Config{}, err
	}
	height, err := flags.GetInt(flagHeight)
	if err != nil {
		return fractal.Config{}, err
	}
	iterations, err := flags.GetUint(flagIterations)
	if err != nil {
		return fractal.Config{}, err
	}
	paletteName, err := flags.GetString(flagPalette)
	if err != nil {
		return fractal.Config{}, err
	}
	p, err := palette.ByName(paletteName)
	if err != nil {
		return fractal.Config{}, err
	}

	cfg := fractal.NewMandelbrot(fractal.Options{
		Width:      width,
		Height:     height,
		Iterations: iterations,
		Palette:    p,
	})
	// NewMandelbrot fills zero values with defaults; a zero from the command
	// line is a mistake Validate should catch.
	cfg.Width, cfg.Height, cfg.Iterations = width, height, iterations

	if flags.Changed(flagZoom) {
		zoom, err := flags.GetFloat64(flagZoom)
		if err != nil {
			return fractal.Config{}, err
		}
		cfg = cfg.WithZoom(zoom)
	}

	if flags.Changed(flagShiftX) || flags.Changed(flagShiftY) {
		x, err := flags.GetFloat64(flagShiftX)
		if err != nil {
			return fractal.Config{}, err
		}
		y, err := flags.GetFloat64(flagShiftY)
		if err != nil {
			return fractal.Config{}, err
		}
		cfg = cfg.WithShift(x, y)
	}

	return cfg, cfg.Validate()
}

func runCmd(cmd *cobra.Command, _ []string) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	verbose, err := cmd.Flags().GetBool(flagVerbose)
	if err != nil {
		return err
	}
	logger := newLogger(verbose)
	render.SetLogger(logger)
	gg.SetLogger(logger)

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}

	out, err := cmd.Flags().GetString(flagOut)
	if err != nil {
		return err
	}
	if out == "" {
		out = fmt.Sprintf("out-%s.png", time.Now().Format("20060102150405"))
	}

	window := display.New(cfg.Width, cfg.Height)
	defer window.Close()

	renderer, err := render.New(window, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := renderer.Render(cfg); err != nil {
		return err
	}
	logger.Info("rendered",
		slog.String("name", cfg.Name),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.Duration("elapsed", time.Since(start)))

	title, err := cmd.Flags().GetBool(flagTitle)
	if err != nil {
		return err
	}
	if title {
		if err := window.SetTitle(cfg.Name); err != nil {
			return err
		}
	}

	if err := window.SavePNG(out); err != nil {
		return err
	}
	logger.Info("saved", slog.String("path", out))

	return nil
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
