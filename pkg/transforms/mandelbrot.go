package transforms

// Mandelbrot is the quadratic map z -> z² + c, with C added to every step.
// The zero value is the classic Mandelbrot map.
type Mandelbrot struct {
	C complex128
}

func (m Mandelbrot) Next(z complex128, c complex128) complex128 {
	return Add(Add(Sqr(z), c), m.C)
}
