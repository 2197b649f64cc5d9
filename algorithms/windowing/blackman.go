package windowing

import (
	"math"
)

// BlackmanWindow represents a symmetric three-term Blackman window function
type BlackmanWindow struct {
	coefficients
}

// NewBlackman creates a new Blackman window
func NewBlackman(size int) *BlackmanWindow {
	b := &BlackmanWindow{}
	b.generate(size)
	return b
}

// generate creates Blackman window coefficients
func (b *BlackmanWindow) generate(size int) {
	c, degenerate := newCoefficients(size)
	b.coefficients = c
	if degenerate {
		return
	}

	denominator := float64(size - 1)
	a0, a1, a2 := 0.42, 0.5, 0.08

	for i := range size {
		arg := 2 * math.Pi * float64(i) / denominator
		b.values[i] = a0 - a1*math.Cos(arg) + a2*math.Cos(2*arg)
	}
}

// GetType returns the window type
func (b *BlackmanWindow) GetType() string {
	return string(Blackman)
}
