package spectral

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"
)

// NextPowerOfTwo returns the smallest power of two >= n.
// Inputs <= 1 map to 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// BitReversalIndices returns the bit-reversal permutation for a power-of-two
// length n: position i holds i with its log2(n) low bits reversed.
func BitReversalIndices(n int) ([]int, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("bit reversal of length %d: %w", n, ErrNotPowerOfTwo)
	}

	width := bits.TrailingZeros(uint(n))
	rev := make([]int, n)
	if width == 0 {
		return rev, nil
	}

	for i := range n {
		rev[i] = int(bits.Reverse(uint(i)) >> (bits.UintSize - width))
	}

	return rev, nil
}

// Forward computes the radix-2 decimation-in-time FFT of x.
//
// The input is zero-padded to the next power of two; x itself is never
// modified. The result is in natural frequency order and has the padded
// length.
func Forward(x []complex128) ([]complex128, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	n := NextPowerOfTwo(len(x))
	rev, err := BitReversalIndices(n)
	if err != nil {
		return nil, err
	}

	// Gather into bit-reversed order; indices past len(x) are the zero padding.
	a := make([]complex128, n)
	for i, r := range rev {
		if r < len(x) {
			a[i] = x[r]
		}
	}

	butterflies(a)
	return a, nil
}

// butterflies runs the log2(n) combine stages in place on bit-reversed data.
func butterflies(a []complex128) {
	n := len(a)

	for m := 2; m <= n; m <<= 1 {
		half := m / 2
		theta := -2 * math.Pi / float64(m)

		for j := range half {
			// w = w_m^j = exp(-2*pi*i*j/m)
			w := cmplx.Rect(1, theta*float64(j))

			for k := 0; k < n; k += m {
				t := w * a[k+j+half]
				u := a[k+j]
				a[k+j] = u + t
				a[k+j+half] = u - t
			}
		}
	}
}

// Inverse computes the inverse FFT of a power-of-two length spectrum via
// conjugate, forward transform, conjugate and a 1/N scale.
func Inverse(spectrum []complex128) ([]complex128, error) {
	n := len(spectrum)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("inverse transform of length %d: %w", n, ErrNotPowerOfTwo)
	}

	conj := make([]complex128, n)
	for i, v := range spectrum {
		conj[i] = cmplx.Conj(v)
	}

	y, err := Forward(conj)
	if err != nil {
		return nil, err
	}

	scale := 1.0 / float64(n)
	for i, v := range y {
		y[i] = complex(real(v)*scale, -imag(v)*scale)
	}

	return y, nil
}

// FFT provides Fast Fourier Transform functionality
type FFT struct {
	// No state needed; every call works on its own copy
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute computes the full FFT of a real signal, padded to a power of two
func (f *FFT) Compute(x []float64) ([]complex128, error) {
	return Forward(toComplex(x))
}

// ComputeComplex computes the FFT of a complex signal, padded to a power of two
func (f *FFT) ComputeComplex(x []complex128) ([]complex128, error) {
	return Forward(x)
}

// ComputeInverse computes inverse FFT
func (f *FFT) ComputeInverse(x []complex128) ([]complex128, error) {
	return Inverse(x)
}

// ComputeInverseReal computes inverse FFT and returns real part only
func (f *FFT) ComputeInverseReal(x []complex128) ([]float64, error) {
	result, err := Inverse(x)
	if err != nil {
		return nil, err
	}

	realResult := make([]float64, len(result))
	for i, val := range result {
		realResult[i] = real(val)
	}

	return realResult, nil
}

func toComplex(x []float64) []complex128 {
	c := make([]complex128, len(x))
	for i, v := range x {
		c[i] = complex(v, 0)
	}
	return c
}
