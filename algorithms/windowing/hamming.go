package windowing

import (
	"math"
)

// HammingWindow represents a symmetric Hamming window function
type HammingWindow struct {
	coefficients
}

// NewHamming creates a new Hamming window
func NewHamming(size int) *HammingWindow {
	h := &HammingWindow{}
	h.generate(size)
	return h
}

func (h *HammingWindow) generate(size int) {
	c, degenerate := newCoefficients(size)
	h.coefficients = c
	if degenerate {
		return
	}

	const alpha = 0.54
	beta := 1.0 - alpha
	denominator := float64(size - 1)

	for i := range size {
		h.values[i] = alpha - beta*math.Cos(2*math.Pi*float64(i)/denominator)
	}
}

// GetType returns the window type
func (h *HammingWindow) GetType() string {
	return string(Hamming)
}
