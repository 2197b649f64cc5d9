package windowing

// RectangularWindow represents a rectangular (boxcar) window function
type RectangularWindow struct {
	coefficients
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *RectangularWindow {
	c, _ := newCoefficients(size)
	for i := range c.values {
		c.values[i] = 1.0
	}
	return &RectangularWindow{coefficients: c}
}

// GetType returns the window type
func (r *RectangularWindow) GetType() string {
	return string(Rectangular)
}
