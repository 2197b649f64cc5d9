package windowing

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Type identifies a window function
type Type string

const (
	Rectangular Type = "rectangular"
	Hann        Type = "hann"
	Hamming     Type = "hamming"
	Blackman    Type = "blackman"
)

// Types lists every supported window type
var Types = []Type{Rectangular, Hann, Hamming, Blackman}

// Window is a fixed-length weighting sequence
type Window interface {
	Apply(signal []float64) []float64
	ApplyInPlace(signal []float64) error
	GetCoefficients() []float64
	GetSize() int
	GetType() string
}

var folder = cases.Fold()

// ParseType maps a window name to its Type. Matching ignores case and
// surrounding whitespace; unrecognized names fall back to Rectangular.
func ParseType(name string) Type {
	key := Type(folder.String(strings.TrimSpace(name)))
	for _, t := range Types {
		if key == t {
			return t
		}
	}
	return Rectangular
}

// New creates the window of the given type and size
func New(t Type, size int) Window {
	switch t {
	case Hann:
		return NewHann(size)
	case Hamming:
		return NewHamming(size)
	case Blackman:
		return NewBlackman(size)
	default:
		return NewRectangular(size)
	}
}

// Generate returns fresh coefficients for the given type and size
func Generate(t Type, size int) []float64 {
	return New(t, size).GetCoefficients()
}

// Coefficients returns fresh coefficients for a window given by name
func Coefficients(name string, size int) []float64 {
	return Generate(ParseType(name), size)
}

// coefficients holds generated weights and implements the shared
// Window methods for every window type
type coefficients struct {
	size   int
	values []float64
}

// newCoefficients allocates size weights. Sizes <= 1 are filled with ones
// and reported as degenerate so generators skip the N-1 denominator.
func newCoefficients(size int) (coefficients, bool) {
	size = max(size, 0)
	c := coefficients{size: size, values: make([]float64, size)}
	if size <= 1 {
		for i := range c.values {
			c.values[i] = 1.0
		}
		return c, true
	}
	return c, false
}

// Apply applies the window to a signal (creates new array)
func (c *coefficients) Apply(signal []float64) []float64 {
	if len(signal) != c.size {
		return nil
	}

	windowed := make([]float64, c.size)
	for i := range c.size {
		windowed[i] = signal[i] * c.values[i]
	}

	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (c *coefficients) ApplyInPlace(signal []float64) error {
	if len(signal) != c.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), c.size)
	}

	for i := range c.size {
		signal[i] *= c.values[i]
	}

	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (c *coefficients) GetCoefficients() []float64 {
	coeffs := make([]float64, len(c.values))
	copy(coeffs, c.values)
	return coeffs
}

// GetSize returns the window size
func (c *coefficients) GetSize() int {
	return c.size
}
