// Package display shows rendered images in an off-screen gg window and writes
// the result out as PNG.
package display

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/willbeason/fractol/pkg/palette"
	"github.com/willbeason/fractol/pkg/render"
)

// ErrForeignImage is returned by Blit for images not created by the Window.
var ErrForeignImage = errors.New("image was not created by this display")

// Image is an RGBA pixel buffer backed by a gg.ImageBuf.
type Image struct {
	buf *gg.ImageBuf
}

// PutPixel sets (x, y) to c. Writes outside the buffer are dropped.
func (img *Image) PutPixel(x, y int, c palette.Color) {
	r, g, b, a := c.Channels()
	_ = img.buf.SetRGBA(x, y, r, g, b, a)
}

// At returns the color at (x, y), or zero outside the buffer.
func (img *Image) At(x, y int) palette.Color {
	return palette.FromRGBA(img.buf.GetRGBA(x, y))
}

// Bounds returns the image width and height.
func (img *Image) Bounds() (width, height int) {
	return img.buf.Bounds()
}

// Window is the surface images are blitted onto.
type Window struct {
	dc *gg.Context
}

var _ render.Display = (*Window)(nil)

// New creates a black width x height window.
func New(width, height int) *Window {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.Black)
	return &Window{dc: dc}
}

// CreateImage implements render.Display.
func (w *Window) CreateImage(width, height int) (render.Image, error) {
	buf, err := gg.NewImageBuf(width, height, gg.FormatRGBA8)
	if err != nil {
		return nil, fmt.Errorf("gg.NewImageBuf: %w", err)
	}
	return &Image{buf: buf}, nil
}

// Blit implements render.Display. The image is drawn unscaled, so every
// sample lands on a source pixel center and the copy is exact up to rounding.
func (w *Window) Blit(img render.Image, x, y int) error {
	src, ok := img.(*Image)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignImage, img)
	}

	w.dc.DrawImageEx(src.buf, gg.DrawImageOptions{
		X:             float64(x),
		Y:             float64(y),
		Interpolation: gg.InterpBilinear,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
	gg.Logger().Debug("blit", "x", x, "y", y)
	return nil
}

const titleSize = 16

// SetTitle draws name in the top-left corner of the window.
func (w *Window) SetTitle(name string) error {
	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return fmt.Errorf("load title font: %w", err)
	}
	defer source.Close()

	w.dc.SetFont(source.Face(titleSize))
	w.dc.SetColor(gg.White)
	w.dc.DrawString(name, titleSize/2, titleSize*1.5)
	return nil
}

// Size returns the window width and height.
func (w *Window) Size() (width, height int) {
	return w.dc.Width(), w.dc.Height()
}

// EncodePNG writes the window contents to out.
func (w *Window) EncodePNG(out io.Writer) error {
	if err := w.dc.EncodePNG(out); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the window contents to the file at path.
func (w *Window) SavePNG(path string) error {
	if err := w.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %q: %w", path, err)
	}
	return nil
}

// Close releases the window.
func (w *Window) Close() error {
	return w.dc.Close()
}
