package transforms

// Sqr returns z², computed componentwise as (a²-b²) + 2abi.
func Sqr(z complex128) complex128 {
	a, b := real(z), imag(z)
	return complex(a*a-b*b, 2*a*b)
}

// Add returns z + w.
func Add(z, w complex128) complex128 {
	return complex(real(z)+real(w), imag(z)+imag(w))
}

// Abs2 is the squared magnitude of z. It avoids the square root in cmplx.Abs.
func Abs2(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
