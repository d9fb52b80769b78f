package palette

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPalette is returned by ByName for names with no registered Palette.
var ErrUnknownPalette = errors.New("unknown palette")

// A Palette picks the color of a point that escaped at iteration i out of
// iterations. Implementations must be pure: the same arguments always give
// the same Color.
type Palette interface {
	Escape(i, iterations uint, base Color) Color
}

// Spectrum cycles the hue with the iteration count.
type Spectrum struct {
	// Step is the hue advance per iteration. Zero means 0.02.
	Step float64
	// Offset shifts the starting hue.
	Offset float64
}

func (s Spectrum) Escape(i, _ uint, _ Color) Color {
	step := s.Step
	if step == 0 {
		step = 0.02
	}
	return HSV(float64(i)*step+s.Offset, 1, 1)
}

// Gradient fades from black at the first iteration to base at the last.
type Gradient struct{}

func (Gradient) Escape(i, iterations uint, base Color) Color {
	t := ratio(i, iterations)
	r, g, b, _ := base.Channels()
	return FromRGBA(scale(r, t), scale(g, t), scale(b, t), 0xFF)
}

// Grayscale maps the escape iteration to a gray level.
type Grayscale struct{}

func (Grayscale) Escape(i, iterations uint, _ Color) Color {
	v := scale(0xFF, ratio(i, iterations))
	return FromRGBA(v, v, v, 0xFF)
}

func ratio(i, iterations uint) float64 {
	if iterations == 0 {
		return 0
	}
	t := float64(i) / float64(iterations)
	if t > 1 {
		return 1
	}
	return t
}

// Default is the palette used when none is chosen.
var Default Palette = Spectrum{}

var byName = map[string]Palette{
	"spectrum":  Spectrum{},
	"gradient":  Gradient{},
	"grayscale": Grayscale{},
}

// ByName returns the registered Palette called name.
func ByName(name string) (Palette, error) {
	p, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, want one of %v", ErrUnknownPalette, name, Names())
	}
	return p, nil
}

// Names lists the registered palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
