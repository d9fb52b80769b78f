// Package fractal describes which part of the complex plane a render pass
// looks at and how it colors what it finds there.
package fractal

import (
	"errors"
	"fmt"

	"github.com/willbeason/fractol/pkg/palette"
)

const (
	// Width and Height are the default image dimensions in pixels.
	Width  = 800
	Height = 800

	// EscapeCount is the default iteration bound.
	EscapeCount = 100
)

// ErrInvalidConfig is returned by Validate for configurations that cannot be
// rendered.
var ErrInvalidConfig = errors.New("invalid fractal config")

// Variant identifies the escape function a Config is set up for.
type Variant int

const (
	Mandelbrot Variant = iota + 1
)

func (v Variant) String() string {
	switch v {
	case Mandelbrot:
		return "mandelbrot"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Shift offsets every mapped point in the complex plane.
type Shift struct {
	X, Y float64
}

// Viewport is the rectangle of the complex plane spread across the image.
type Viewport struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// viewportFor returns the square viewport of half-width 2 at the given scale.
func viewportFor(scale float64) Viewport {
	return Viewport{
		Xmin: -2.0 * scale,
		Xmax: 2.0 * scale,
		Ymin: -2.0 * scale,
		Ymax: 2.0 * scale,
	}
}

// Config is everything a render pass needs to know. It is a plain value:
// methods that change a parameter return a modified copy, so a Config handed
// to a renderer never changes underneath it.
type Config struct {
	Name    string
	Color   palette.Color
	Variant Variant

	// EscapeValue is the squared-magnitude threshold for divergence.
	EscapeValue float64
	Iterations  uint

	Shift       Shift
	Zoom        float64
	InitialZoom float64
	Viewport    Viewport

	Width, Height int

	Palette palette.Palette
}

// Options are the inputs to NewMandelbrot. Zero fields take the package
// defaults.
type Options struct {
	Width, Height int
	Iterations    uint
	Palette       palette.Palette
}

// NewMandelbrot returns the starting Config for the Mandelbrot set.
func NewMandelbrot(opts Options) Config {
	if opts.Width == 0 {
		opts.Width = Width
	}
	if opts.Height == 0 {
		opts.Height = Height
	}
	if opts.Iterations == 0 {
		opts.Iterations = EscapeCount
	}
	if opts.Palette == nil {
		opts.Palette = palette.Default
	}

	const initialZoom = 0.7

	return Config{
		Name:        "❄️ Mandelbrot ❄️",
		Color:       palette.Brown,
		Variant:     Mandelbrot,
		EscapeValue: 4.0,
		Iterations:  opts.Iterations,
		Shift:       Shift{X: -0.7, Y: 0.0},
		InitialZoom: initialZoom,
		Zoom:        1.0,
		Viewport:    viewportFor(initialZoom),
		Width:       opts.Width,
		Height:      opts.Height,
		Palette:     opts.Palette,
	}
}

// WithZoom returns a copy of c at the given zoom with its viewport recomputed.
// A zoom below 1 magnifies.
func (c Config) WithZoom(zoom float64) Config {
	c.Zoom = zoom
	c.Viewport = viewportFor(c.InitialZoom * zoom)
	return c
}

// WithShift returns a copy of c centered on a different offset.
func (c Config) WithShift(x, y float64) Config {
	c.Shift = Shift{X: x, Y: y}
	return c
}

// Validate reports whether c describes a renderable image.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Iterations == 0:
		return fmt.Errorf("%w: zero iterations", ErrInvalidConfig)
	case c.Zoom <= 0 || c.InitialZoom <= 0:
		return fmt.Errorf("%w: zoom %g, initial zoom %g", ErrInvalidConfig, c.Zoom, c.InitialZoom)
	case c.Viewport.Xmax <= c.Viewport.Xmin || c.Viewport.Ymax <= c.Viewport.Ymin:
		return fmt.Errorf("%w: empty viewport %+v", ErrInvalidConfig, c.Viewport)
	case c.Palette == nil:
		return fmt.Errorf("%w: no palette", ErrInvalidConfig)
	}
	return nil
}

// Point maps pixel (x, y) to the complex plane. Pixel (0, 0) lands on
// (Xmin, Ymin) plus the shift.
func (c Config) Point(x, y int) complex128 {
	v := c.Viewport
	re := (v.Xmax-v.Xmin)*float64(x)/float64(c.Width) + v.Xmin + c.Shift.X
	im := (v.Ymax-v.Ymin)*float64(y)/float64(c.Height) + v.Ymin + c.Shift.Y
	return complex(re, im)
}

// MapColor is the color of a point that escaped at iteration i.
func (c Config) MapColor(i uint) palette.Color {
	return c.Palette.Escape(i, c.Iterations, c.Color)
}
