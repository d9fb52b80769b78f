package render

import (
	"errors"
	"image"
	"testing"

	"github.com/willbeason/fractol/pkg/fractal"
	"github.com/willbeason/fractol/pkg/palette"
	"github.com/willbeason/fractol/pkg/transforms"
)

type write struct {
	p image.Point
	c palette.Color
}

// recordingImage keeps every PutPixel call in order.
type recordingImage struct {
	writes []write
}

func (img *recordingImage) PutPixel(x, y int, c palette.Color) {
	img.writes = append(img.writes, write{p: image.Pt(x, y), c: c})
}

type blit struct {
	img    Image
	x, y   int
	writes int // writes made to img before the blit
}

type recordingDisplay struct {
	img       *recordingImage
	blits     []blit
	createErr error
	blitErr   error
}

func (d *recordingDisplay) CreateImage(width, height int) (Image, error) {
	if d.createErr != nil {
		return nil, d.createErr
	}
	d.img = &recordingImage{}
	return d.img, nil
}

func (d *recordingDisplay) Blit(img Image, x, y int) error {
	d.blits = append(d.blits, blit{img: img, x: x, y: y, writes: len(d.img.writes)})
	return d.blitErr
}

func collect(c complex128, cfg fractal.Config) ([]palette.Color, Result) {
	var plotted []palette.Color
	res := Escape(c, cfg, func(col palette.Color) {
		plotted = append(plotted, col)
	})
	return plotted, res
}

func TestEscape_Origin(t *testing.T) {
	cfg := fractal.NewMandelbrot(fractal.Options{Iterations: 50})

	plotted, res := collect(0, cfg)

	if res.Escaped {
		t.Fatal("0+0i escaped")
	}
	if res.Iteration != cfg.Iterations {
		t.Errorf("Iteration = %d, want %d", res.Iteration, cfg.Iterations)
	}
	if len(plotted) != int(cfg.Iterations) || res.Writes != len(plotted) {
		t.Fatalf("got %d writes (Result says %d), want one per iteration", len(plotted), res.Writes)
	}
	for i, col := range plotted {
		if want := palette.Darken(cfg.Color, uint(i)); col != want {
			t.Errorf("write %d = %#08x, want darken %#08x", i, uint32(col), uint32(want))
		}
	}
}

func TestEscape_FarPoint(t *testing.T) {
	cfg := fractal.NewMandelbrot(fractal.Options{Iterations: 50})

	plotted, res := collect(2+2i, cfg)

	if !res.Escaped {
		t.Fatal("2+2i did not escape")
	}
	if res.Iteration >= 2 {
		t.Errorf("escaped at iteration %d, want within 2", res.Iteration)
	}
	if len(plotted) == 0 || plotted[len(plotted)-1] != cfg.MapColor(res.Iteration) {
		t.Errorf("last write is not the escape color: %v", plotted)
	}
}

func TestEscape_ExactlyOnThreshold(t *testing.T) {
	cfg := fractal.NewMandelbrot(fractal.Options{Iterations: 20})

	t.Run("2 lands on the threshold then escapes", func(t *testing.T) {
		// z1 = 2 has |z|² == 4 and is not plotted; z2 = 6 escapes.
		plotted, res := collect(2, cfg)
		if !res.Escaped || res.Iteration != 1 {
			t.Fatalf("Result = %+v, want escape at iteration 1", res)
		}
		if len(plotted) != 1 || plotted[0] != cfg.MapColor(1) {
			t.Errorf("plotted %v, want only the escape color", plotted)
		}
	})

	t.Run("-2 stays on the threshold", func(t *testing.T) {
		// The orbit is -2, 2, 2, ... with |z|² == 4 every time.
		plotted, res := collect(-2, cfg)
		if res.Escaped {
			t.Fatalf("Result = %+v, want no escape", res)
		}
		if len(plotted) != 0 {
			t.Errorf("plotted %d colors, want none", len(plotted))
		}
	})
}

func TestEscape_Terminates(t *testing.T) {
	cfg := fractal.NewMandelbrot(fractal.Options{Width: 40, Height: 30, Iterations: 25})

	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			_, res := collect(cfg.Point(x, y), cfg)
			if res.Writes > int(cfg.Iterations) {
				t.Fatalf("(%d, %d): %d writes for %d iterations", x, y, res.Writes, cfg.Iterations)
			}
			if res.Iteration > cfg.Iterations {
				t.Fatalf("(%d, %d): Iteration %d past bound %d", x, y, res.Iteration, cfg.Iterations)
			}
		}
	}
}

func TestEscape_FirstCrossing(t *testing.T) {
	cfg := fractal.NewMandelbrot(fractal.Options{Iterations: 200})

	points := []complex128{0.3 + 0.5i, -0.75 + 0.1i, 0.26, 0.5 + 0.5i, -1.8 + 0.01i, 1}
	for _, c := range points {
		_, res := collect(c, cfg)
		if !res.Escaped {
			continue
		}

		// Replay the orbit: no earlier iterate may have crossed the threshold.
		var (
			m transforms.Mandelbrot
			z complex128
		)
		for i := uint(0); i <= res.Iteration; i++ {
			z = m.Next(z, c)
			r := transforms.Abs2(z)
			if i < res.Iteration && r > cfg.EscapeValue {
				t.Errorf("c=%v: crossed at %d before reported escape at %d", c, i, res.Iteration)
			}
			if i == res.Iteration && r <= cfg.EscapeValue {
				t.Errorf("c=%v: |z|² = %v at reported escape %d", c, r, res.Iteration)
			}
		}
	}
}

func TestRenderer_ComputePixel(t *testing.T) {
	d := &recordingDisplay{}
	cfg := fractal.NewMandelbrot(fractal.Options{Width: 8, Height: 8, Iterations: 10})

	r, err := New(d, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatal(err)
	}

	res := r.ComputePixel(3, 5, cfg)

	if len(d.img.writes) != res.Writes {
		t.Errorf("image got %d writes, Result says %d", len(d.img.writes), res.Writes)
	}
	for _, w := range d.img.writes {
		if w.p != image.Pt(3, 5) {
			t.Errorf("write at %v, want (3, 5)", w.p)
		}
	}
	if len(d.blits) != 0 {
		t.Errorf("ComputePixel blitted %d times", len(d.blits))
	}
}

func TestRenderer_Render(t *testing.T) {
	d := &recordingDisplay{}
	cfg := fractal.NewMandelbrot(fractal.Options{Width: 12, Height: 9, Iterations: 30})

	r, err := New(d, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Render(cfg); err != nil {
		t.Fatalf("Render() = %v", err)
	}

	if len(d.blits) != 1 {
		t.Fatalf("got %d blits, want 1", len(d.blits))
	}
	b := d.blits[0]
	if b.x != 0 || b.y != 0 {
		t.Errorf("blit at (%d, %d), want (0, 0)", b.x, b.y)
	}
	if b.img != r.Image() {
		t.Error("blitted a different image than the renderer's buffer")
	}
	if b.writes != len(d.img.writes) {
		t.Errorf("blit happened after %d of %d writes", b.writes, len(d.img.writes))
	}

	// Writes arrive pixel by pixel in row-major order.
	var last image.Point
	seen := make(map[image.Point]bool)
	for i, w := range d.img.writes {
		if i > 0 && w.p != last {
			if w.p.Y < last.Y || (w.p.Y == last.Y && w.p.X < last.X) {
				t.Fatalf("write to %v after %v", w.p, last)
			}
			if seen[w.p] {
				t.Fatalf("pixel %v revisited", w.p)
			}
		}
		seen[w.p] = true
		last = w.p
	}
}

func TestRenderer_RenderTwice(t *testing.T) {
	d := &recordingDisplay{}
	cfg := fractal.NewMandelbrot(fractal.Options{Width: 4, Height: 4, Iterations: 5})

	r, err := New(d, cfg.Width, cfg.Height)
	if err != nil {
		t.Fatal(err)
	}

	for range 2 {
		if err := r.Render(cfg); err != nil {
			t.Fatal(err)
		}
	}

	if len(d.blits) != 2 || d.blits[0].img != d.blits[1].img {
		t.Errorf("want two blits of the same buffer, got %+v", d.blits)
	}
	if got, first := len(d.img.writes), d.blits[0].writes; got != 2*first {
		t.Errorf("second pass wrote %d, first wrote %d", got-first, first)
	}
}

func TestRenderer_SizeMismatch(t *testing.T) {
	d := &recordingDisplay{}
	r, err := New(d, 4, 4)
	if err != nil {
		t.Fatal(err)
	}

	cfg := fractal.NewMandelbrot(fractal.Options{Width: 5, Height: 4})
	if err := r.Render(cfg); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Render() = %v, want ErrSizeMismatch", err)
	}
	if len(d.blits) != 0 || len(d.img.writes) != 0 {
		t.Error("mismatched render touched the image")
	}
}

func TestRenderer_Errors(t *testing.T) {
	errDisplay := errors.New("display gone")

	if _, err := New(&recordingDisplay{createErr: errDisplay}, 4, 4); !errors.Is(err, errDisplay) {
		t.Errorf("New() = %v, want wrapped %v", err, errDisplay)
	}

	d := &recordingDisplay{blitErr: errDisplay}
	r, err := New(d, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	cfg := fractal.NewMandelbrot(fractal.Options{Width: 2, Height: 2})
	if err := r.Render(cfg); !errors.Is(err, errDisplay) {
		t.Errorf("Render() = %v, want wrapped %v", err, errDisplay)
	}
}
