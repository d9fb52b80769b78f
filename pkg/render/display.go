package render

import "github.com/willbeason/fractol/pkg/palette"

// Image is a pixel buffer the renderer writes into.
type Image interface {
	PutPixel(x, y int, c palette.Color)
}

// Display is where finished images are shown.
type Display interface {
	// CreateImage allocates a width x height Image.
	CreateImage(width, height int) (Image, error)
	// Blit copies img onto the display with its top-left corner at (x, y).
	// img is only read.
	Blit(img Image, x, y int) error
}
