// Package palette holds packed colors and the policies that turn iteration
// counts into them.
package palette

import (
	"image/color"
	"math"
)

// Color is a packed 0xRRGGBBAA color.
type Color uint32

const (
	Black Color = 0x000000FF
	White Color = 0xFFFFFFFF
	Brown Color = 0xA52A2AFF
)

var _ color.Color = Color(0)

// FromRGBA packs 8-bit channels into a Color.
func FromRGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

// Channels unpacks c into its 8-bit components.
func (c Color) Channels() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color. Color is not premultiplied, so the channels
// are scaled by alpha here.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: uint8(c >> 24), G: uint8(c >> 16), B: uint8(c >> 8), A: uint8(c)}.RGBA()
}

// darkenFactor is the per-iteration brightness multiplier applied by Darken.
const darkenFactor = 0.97

// Darken returns base dimmed once per iteration up to and including i.
// Alpha is left alone.
func Darken(base Color, i uint) Color {
	f := math.Pow(darkenFactor, float64(i)+1)
	r, g, b, a := base.Channels()
	return FromRGBA(scale(r, f), scale(g, f), scale(b, f), a)
}

func scale(v uint8, f float64) uint8 {
	return uint8(math.Round(float64(v) * f))
}

// HSV converts hue, saturation and value in [0, 1] to an opaque Color.
func HSV(h, s, v float64) Color {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return FromRGBA(uint8(r*255), uint8(g*255), uint8(b*255), 0xFF)
}
