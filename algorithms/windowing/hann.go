package windowing

import (
	"math"
)

// HannWindow represents a symmetric Hann window function
type HannWindow struct {
	coefficients
}

// NewHann creates a new Hann window
func NewHann(size int) *HannWindow {
	h := &HannWindow{}
	h.generate(size)
	return h
}

// generate fills w[n] = 0.5 - 0.5*cos(2*pi*n/(N-1))
func (h *HannWindow) generate(size int) {
	c, degenerate := newCoefficients(size)
	h.coefficients = c
	if degenerate {
		return
	}

	denominator := float64(size - 1)
	for i := range size {
		h.values[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/denominator)
	}
}

// GetType returns the window type
func (h *HannWindow) GetType() string {
	return string(Hann)
}
