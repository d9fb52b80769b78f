// Package render computes escape-time fractals pixel by pixel.
package render

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/willbeason/fractol/pkg/fractal"
	"github.com/willbeason/fractol/pkg/palette"
	"github.com/willbeason/fractol/pkg/transforms"
)

// ErrSizeMismatch is returned by Render when a Config is laid out for a
// different image size than the Renderer's buffer.
var ErrSizeMismatch = errors.New("config size does not match image")

// Result describes how the escape loop for one point ended.
type Result struct {
	// Iteration is the iteration at which the point escaped, or the bound if
	// it never did.
	Iteration uint
	Escaped   bool
	// Writes counts the colors plotted for the point.
	Writes int
}

// Escape iterates the Mandelbrot map for c from z = 0.
//
// While |z|² stays below the escape value, every iteration plots a darker
// shade of the base color, so a point that never escapes keeps the shade of
// its last iteration. Once |z|² exceeds the escape value the escape color is
// plotted and the loop stops. An iteration landing exactly on the escape
// value plots nothing.
func Escape(c complex128, cfg fractal.Config, plot func(palette.Color)) Result {
	var (
		m   transforms.Mandelbrot
		z   complex128
		res Result
	)

	for i := uint(0); i < cfg.Iterations; i++ {
		z = m.Next(z, c)

		r := transforms.Abs2(z)
		if r < cfg.EscapeValue {
			plot(palette.Darken(cfg.Color, i))
			res.Writes++
		} else if r > cfg.EscapeValue {
			plot(cfg.MapColor(i))
			res.Writes++
			res.Iteration = i
			res.Escaped = true
			return res
		}
	}

	res.Iteration = cfg.Iterations
	return res
}

// Renderer draws configs onto a Display through an image buffer it owns.
type Renderer struct {
	display Display
	img     Image

	width, height int
}

// New allocates a width x height image on d.
func New(d Display, width, height int) (*Renderer, error) {
	img, err := d.CreateImage(width, height)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d image: %w", width, height, err)
	}

	return &Renderer{
		display: d,
		img:     img,
		width:   width,
		height:  height,
	}, nil
}

// Image returns the buffer written by ComputePixel and Render.
func (r *Renderer) Image() Image {
	return r.img
}

// ComputePixel maps (x, y) into the plane and runs Escape for it, writing
// straight into the image buffer.
func (r *Renderer) ComputePixel(x, y int, cfg fractal.Config) Result {
	return Escape(cfg.Point(x, y), cfg, func(col palette.Color) {
		r.img.PutPixel(x, y, col)
	})
}

// Render computes every pixel in row-major order, then blits the buffer to
// the display at (0, 0).
func (r *Renderer) Render(cfg fractal.Config) error {
	if cfg.Width != r.width || cfg.Height != r.height {
		return fmt.Errorf("%w: config %dx%d, image %dx%d",
			ErrSizeMismatch, cfg.Width, cfg.Height, r.width, r.height)
	}

	start := time.Now()

	escaped := 0
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if r.ComputePixel(x, y, cfg).Escaped {
				escaped++
			}
		}
	}

	Logger().Debug("render pass complete",
		slog.String("fractal", cfg.Variant.String()),
		slog.Int("width", r.width),
		slog.Int("height", r.height),
		slog.Uint64("iterations", uint64(cfg.Iterations)),
		slog.Int("escaped", escaped),
		slog.Duration("elapsed", time.Since(start)),
	)

	if err := r.display.Blit(r.img, 0, 0); err != nil {
		return fmt.Errorf("blit: %w", err)
	}

	return nil
}
